package content

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Common errors.
var (
	ErrNoSections           = errors.New("content declares no sections")
	ErrDuplicateSection     = errors.New("duplicate section id")
	ErrUnknownSection       = errors.New("unknown section id")
	ErrUnknownInfluenceKind = errors.New("unknown influence kind")
)

// Default returns the embedded content set. It panics only if the embedded
// file is broken, which is a build defect.
func Default() *Site {
	site, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded content is invalid: %v", err))
	}
	return site
}

// DefaultYAML returns the raw embedded content, e.g. as a template for a
// user-authored file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// LoadFile reads and validates a content file.
func LoadFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

// Load reads and validates content from r.
func Load(r io.Reader) (*Site, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML content, normalizes it and validates it.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	site.normalize()
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// normalize fills defaults so rendering never has to special-case missing
// optional data. Detail records without a sections list become empty.
func (s *Site) normalize() {
	for i := range s.Sections {
		s.Sections[i].ID = SectionID(strings.TrimSpace(string(s.Sections[i].ID)))
		if s.Sections[i].Label == "" {
			s.Sections[i].Label = string(s.Sections[i].ID)
		}
	}
	for i := range s.Concepts {
		s.Concepts[i].Details = s.Concepts[i].Details.Normalized()
		if s.Concepts[i].Details.Title == "" {
			s.Concepts[i].Details.Title = s.Concepts[i].Title
		}
	}
	for i := range s.Works {
		if s.Works[i].Summary != nil {
			norm := s.Works[i].Summary.Normalized()
			s.Works[i].Summary = &norm
		}
	}
	for i := range s.Influences {
		s.Influences[i].Kind = InfluenceKind(strings.ToLower(strings.TrimSpace(string(s.Influences[i].Kind))))
	}
}

// Validate checks structural invariants. Free-form text is never inspected.
func (s *Site) Validate() error {
	if len(s.Sections) == 0 {
		return ErrNoSections
	}
	seen := make(map[SectionID]bool, len(s.Sections))
	for _, sec := range s.Sections {
		if !sec.ID.IsKnown() {
			return fmt.Errorf("%w: %q", ErrUnknownSection, sec.ID)
		}
		if seen[sec.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateSection, sec.ID)
		}
		seen[sec.ID] = true
	}
	for _, inf := range s.Influences {
		switch inf.Kind {
		case InfluenceReceived, InfluenceExerted:
		default:
			return fmt.Errorf("%w: %q (%s)", ErrUnknownInfluenceKind, inf.Kind, inf.Name)
		}
	}
	return nil
}

// Package datasource discovers where folio's content can come from and picks
// the one to load. Candidates are an explicit path, FOLIO_CONTENT, a
// folio.yaml in the working directory, the user's XDG data directory and the
// embedded default set.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vanderheijden86/folio/pkg/config"
)

// SourceType identifies where a content source was found.
type SourceType string

const (
	// SourceTypeFlag is a path given on the command line or in config.
	SourceTypeFlag SourceType = "flag"
	// SourceTypeEnv is the FOLIO_CONTENT path.
	SourceTypeEnv SourceType = "env"
	// SourceTypeLocal is ./folio.yaml.
	SourceTypeLocal SourceType = "local"
	// SourceTypeUser is content.yaml in the XDG data directory.
	SourceTypeUser SourceType = "user"
	// SourceTypeEmbedded is the content compiled into the binary.
	SourceTypeEmbedded SourceType = "embedded"
)

// Priority values for source types (higher = more authoritative).
const (
	PriorityFlag     = 100
	PriorityEnv      = 90
	PriorityLocal    = 70
	PriorityUser     = 50
	PriorityEmbedded = 0
)

// LocalFileName is the per-directory content file name.
const LocalFileName = "folio.yaml"

// EmbeddedPath is the pseudo-path reported for the embedded source.
const EmbeddedPath = "<embedded>"

// DataSource is a candidate content file.
type DataSource struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path"`
	Priority int        `json:"priority"`
	ModTime  time.Time  `json:"mod_time"`
	Size     int64      `json:"size"`
	// Valid and ValidationError are set by ValidateSource.
	Valid           bool   `json:"valid"`
	ValidationError string `json:"validation_error,omitempty"`
	SectionCount    int    `json:"section_count"`
	Title           string `json:"title,omitempty"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, sections=%d, %s)",
		s.Path, s.Type, s.Priority, s.SectionCount, status)
}

// IsEmbedded reports whether the source is the compiled-in content.
func (s DataSource) IsEmbedded() bool {
	return s.Type == SourceTypeEmbedded
}

// DiscoveryOptions configures source discovery.
type DiscoveryOptions struct {
	// ExplicitPath comes from --content or the config file.
	ExplicitPath string
	// WorkDir is searched for folio.yaml (cwd if empty).
	WorkDir string
	// DataDir overrides the XDG data directory (tests).
	DataDir string
	// ValidateAfterDiscovery parses each candidate.
	ValidateAfterDiscovery bool
	// IncludeInvalid keeps candidates that failed validation.
	IncludeInvalid bool
	// Logger receives discovery notes when set.
	Logger func(msg string)
}

// DiscoverSources lists every candidate, highest priority first. The
// embedded source is always present.
func DiscoverSources(opts DiscoveryOptions) ([]DataSource, error) {
	logf := func(format string, args ...any) {
		if opts.Logger != nil {
			opts.Logger(fmt.Sprintf(format, args...))
		}
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		workDir = wd
	}
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = config.DataDir()
	}

	var sources []DataSource
	add := func(typ SourceType, prio int, path string, required bool) {
		if path == "" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		for _, existing := range sources {
			if existing.Path == abs {
				return
			}
		}
		info, err := os.Stat(abs)
		if err != nil {
			if required {
				// Keep it so selection can report why the user's choice failed.
				sources = append(sources, DataSource{
					Type: typ, Path: abs, Priority: prio,
					ValidationError: err.Error(),
				})
			}
			logf("skip %s source %s: %v", typ, abs, err)
			return
		}
		if info.IsDir() {
			logf("skip %s source %s: is a directory", typ, abs)
			return
		}
		sources = append(sources, DataSource{
			Type:     typ,
			Path:     abs,
			Priority: prio,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
		logf("found %s source %s", typ, abs)
	}

	add(SourceTypeFlag, PriorityFlag, opts.ExplicitPath, true)
	add(SourceTypeEnv, PriorityEnv, os.Getenv("FOLIO_CONTENT"), true)
	add(SourceTypeLocal, PriorityLocal, filepath.Join(workDir, LocalFileName), false)
	if dataDir != "" {
		add(SourceTypeUser, PriorityUser, filepath.Join(dataDir, "content.yaml"), false)
	}
	sources = append(sources, DataSource{
		Type:     SourceTypeEmbedded,
		Path:     EmbeddedPath,
		Priority: PriorityEmbedded,
	})

	if opts.ValidateAfterDiscovery {
		for i := range sources {
			if err := ValidateSource(&sources[i]); err != nil {
				logf("validation failed for %s: %v", sources[i].Path, err)
			}
		}
		if !opts.IncludeInvalid {
			valid := sources[:0]
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority > sources[j].Priority
	})

	logf("discovered %d sources", len(sources))
	return sources, nil
}

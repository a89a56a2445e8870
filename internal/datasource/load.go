package datasource

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/debug"
	"github.com/vanderheijden86/folio/pkg/metrics"
)

// ErrNoValidSource is returned when no candidate parses. The embedded
// source always parses, so this only happens when it was filtered out.
var ErrNoValidSource = errors.New("no valid content source")

// ValidateSource parses the source and records the outcome on s.
func ValidateSource(s *DataSource) error {
	if s.ValidationError != "" && !s.IsEmbedded() && s.ModTime.IsZero() {
		// Discovery already failed to stat it.
		s.Valid = false
		return errors.New(s.ValidationError)
	}
	site, err := LoadFromSource(*s)
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}
	s.Valid = true
	s.ValidationError = ""
	s.SectionCount = len(site.Sections)
	s.Title = site.Title
	return nil
}

// SelectBestSource returns the highest-priority valid source.
//
// A user-directed source (flag or FOLIO_CONTENT) that is invalid is an
// error rather than a silent fallback: the user asked for that file.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	var best *DataSource
	for i := range sources {
		s := &sources[i]
		if !s.Valid {
			if s.Type == SourceTypeFlag || s.Type == SourceTypeEnv {
				return DataSource{}, fmt.Errorf("content source %s: %s", s.Path, s.ValidationError)
			}
			continue
		}
		if best == nil || s.Priority > best.Priority {
			best = s
		}
	}
	if best == nil {
		return DataSource{}, ErrNoValidSource
	}
	return *best, nil
}

// LoadFromSource loads the content set behind s.
func LoadFromSource(s DataSource) (*content.Site, error) {
	defer metrics.Timer(metrics.ContentLoad)()

	if s.IsEmbedded() {
		return content.Default(), nil
	}
	site, err := content.LoadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s source: %w", s.Type, err)
	}
	return site, nil
}

// Resolve discovers, validates and loads the best content source.
func Resolve(opts DiscoveryOptions) (*content.Site, DataSource, error) {
	opts.ValidateAfterDiscovery = true
	opts.IncludeInvalid = true
	if opts.Logger == nil && debug.Enabled() {
		opts.Logger = func(msg string) { debug.Log("datasource: %s", msg) }
	}

	sources, err := DiscoverSources(opts)
	if err != nil {
		return nil, DataSource{}, err
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		return nil, DataSource{}, err
	}
	site, err := LoadFromSource(best)
	if err != nil {
		return nil, DataSource{}, err
	}
	debug.Log("datasource: using %s", best)
	return site, best, nil
}

// Reload re-reads a source picked earlier, e.g. after the watcher fired.
func Reload(s DataSource) (*content.Site, error) {
	return LoadFromSource(s)
}

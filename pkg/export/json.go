package export

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/folio/internal/datasource"
	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/version"
)

// RobotEnvelope wraps every robot-mode payload.
type RobotEnvelope struct {
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
	Source      string    `json:"source,omitempty"`
	Data        any       `json:"data"`
}

// SectionInfo is the robot view of a navigable section.
type SectionInfo struct {
	Index       int               `json:"index"`
	ID          content.SectionID `json:"id"`
	Label       string            `json:"label"`
	NavLabel    string            `json:"nav_label"`
	DesktopNav  bool              `json:"desktop_nav"`
	DetailCount int               `json:"detail_count"`
}

// Sections summarizes the declared sections, with how many detail triggers
// each one carries.
func Sections(site *content.Site) []SectionInfo {
	out := make([]SectionInfo, 0, len(site.Sections))
	for i, sec := range site.Sections {
		info := SectionInfo{
			Index:      i + 1,
			ID:         sec.ID,
			Label:      sec.Label,
			NavLabel:   sec.ShortLabel(),
			DesktopNav: sec.InDesktopNav,
		}
		switch sec.ID {
		case content.SectionThought:
			info.DetailCount = len(site.Concepts)
		case content.SectionWorks:
			for _, w := range site.Works {
				if _, ok := w.Detail(); ok {
					info.DetailCount++
				}
			}
		}
		out = append(out, info)
	}
	return out
}

func envelope(source string, data any) RobotEnvelope {
	return RobotEnvelope{
		GeneratedAt: time.Now().UTC(),
		Version:     version.Version,
		Source:      source,
		Data:        data,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// WriteRobotContent writes the full content set.
func WriteRobotContent(w io.Writer, site *content.Site, source string) error {
	return writeJSON(w, envelope(source, site))
}

// WriteRobotSections writes the section list.
func WriteRobotSections(w io.Writer, site *content.Site, source string) error {
	return writeJSON(w, envelope(source, Sections(site)))
}

// WriteRobotSources writes the discovered content sources.
func WriteRobotSources(w io.Writer, sources []datasource.DataSource) error {
	return writeJSON(w, envelope("", sources))
}

// MarshalSite encodes the content set as indented JSON.
func MarshalSite(site *content.Site) ([]byte, error) {
	data, err := json.MarshalIndent(site, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding content: %w", err)
	}
	return data, nil
}

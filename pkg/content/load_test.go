package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultContent(t *testing.T) {
	site := Default()

	if got := len(site.Sections); got != len(KnownSections) {
		t.Fatalf("expected %d sections, got %d", len(KnownSections), got)
	}
	for i, id := range site.SectionIDs() {
		if id != KnownSections[i] {
			t.Errorf("section %d: expected %q, got %q", i, KnownSections[i], id)
		}
	}
	if len(site.Concepts) != 4 {
		t.Errorf("expected 4 concepts, got %d", len(site.Concepts))
	}
	if len(site.Quotes) != 4 {
		t.Errorf("expected 4 quotes, got %d", len(site.Quotes))
	}
	if len(site.InfluencesOf(InfluenceReceived)) != 3 {
		t.Errorf("expected 3 received influences")
	}
	if len(site.InfluencesOf(InfluenceExerted)) != 2 {
		t.Errorf("expected 2 exerted influences")
	}

	withSummary := 0
	for _, w := range site.Works {
		if _, ok := w.Detail(); ok {
			withSummary++
		}
	}
	if withSummary != 1 {
		t.Errorf("expected exactly one work with a summary, got %d", withSummary)
	}
}

func TestDefaultYAMLIsCopy(t *testing.T) {
	a := DefaultYAML()
	a[0] = 'X'
	if DefaultYAML()[0] == 'X' {
		t.Error("DefaultYAML should return a copy")
	}
}

func TestParse_MissingDetailSectionsNormalizesToEmpty(t *testing.T) {
	src := `
sections:
  - id: home
concepts:
  - title: "Bare"
    short_description: "no sections"
    details:
      intro: "only intro"
works:
  - title: "W"
    summary:
      title: "S"
      intro: "i"
`
	site, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	d, ok := site.Concepts[0].Detail()
	if !ok {
		t.Fatal("concept should always expose a detail record")
	}
	if d.Sections == nil || len(d.Sections) != 0 {
		t.Errorf("expected empty non-nil sections, got %#v", d.Sections)
	}
	if d.Title != "Bare" {
		t.Errorf("expected detail title to default to card title, got %q", d.Title)
	}
	if site.Works[0].Summary.Sections == nil {
		t.Error("work summary sections should be normalized")
	}
	if site.Sections[0].Label != "home" {
		t.Errorf("expected label fallback to id, got %q", site.Sections[0].Label)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no sections", "title: x\n", ErrNoSections},
		{"duplicate", "sections:\n  - id: home\n  - id: home\n", ErrDuplicateSection},
		{"unknown section", "sections:\n  - id: gallery\n", ErrUnknownSection},
		{"bad influence", "sections:\n  - id: home\ninfluences:\n  - name: x\n    kind: sideways\n", ErrUnknownInfluenceKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("sections: [unterminated"))
	if err == nil || !strings.Contains(err.Error(), "parsing content") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, DefaultYAML(), 0o644); err != nil {
		t.Fatal(err)
	}

	site, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if site.Title != Default().Title {
		t.Errorf("expected title %q, got %q", Default().Title, site.Title)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_Reader(t *testing.T) {
	site, err := Load(strings.NewReader("sections:\n  - id: works\n    label: Obras\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sec, ok := site.FindSection(SectionWorks); !ok || sec.Label != "Obras" {
		t.Errorf("unexpected section lookup: %+v %v", sec, ok)
	}
}

func TestNormalizedCopiesSections(t *testing.T) {
	orig := DetailRecord{Sections: []DetailSection{{Heading: "a"}}}
	n := orig.Normalized()
	n.Sections[0].Heading = "b"
	if orig.Sections[0].Heading != "a" {
		t.Error("Normalized should not alias the original slice")
	}
}

func TestSectionHelpers(t *testing.T) {
	s := Section{ID: SectionWorks, Label: "Obras Principales"}
	if s.ShortLabel() != "Obras Principales" {
		t.Errorf("ShortLabel fallback failed: %q", s.ShortLabel())
	}
	s.NavLabel = "Obras"
	if s.ShortLabel() != "Obras" {
		t.Errorf("ShortLabel = %q", s.ShortLabel())
	}
	if SectionID("gallery").IsKnown() {
		t.Error("gallery should not be a known section")
	}

	w := Work{IsFree: false}
	if w.LinkLabel() != "Ver" {
		t.Errorf("LinkLabel = %q", w.LinkLabel())
	}

	site := &Site{}
	if _, ok := site.LeadQuote(); ok {
		t.Error("empty site should have no lead quote")
	}
	if site.CardQuotes() != nil {
		t.Error("empty site should have no card quotes")
	}
}

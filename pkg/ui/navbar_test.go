package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/folio/pkg/content"
)

func TestRenderNavBar_WideShowsDesktopSubset(t *testing.T) {
	site := content.Default()
	out := renderNavBar(site, content.SectionWorks, false, 140, TestTheme())

	if strings.Contains(out, "\n") {
		t.Error("wide nav bar should be one row")
	}
	for _, sec := range site.Sections {
		has := strings.Contains(out, sec.ShortLabel())
		if sec.InDesktopNav && !has {
			t.Errorf("missing desktop item %q", sec.ShortLabel())
		}
	}
	if strings.Contains(out, "Menú") {
		t.Error("wide nav bar should not show the menu toggle")
	}
}

func TestRenderNavBar_NarrowMenu(t *testing.T) {
	site := content.Default()
	theme := TestTheme()

	closed := renderNavBar(site, content.SectionHome, false, 60, theme)
	if !strings.Contains(closed, "Menú") {
		t.Error("narrow nav bar should show the menu toggle")
	}
	if strings.Count(closed, "\n") != 0 {
		t.Error("collapsed menu should be one row")
	}

	open := renderNavBar(site, content.SectionThought, true, 60, theme)
	rows := strings.Split(open, "\n")
	if len(rows) != len(site.Sections)+1 {
		t.Fatalf("expanded menu rows = %d, want %d", len(rows), len(site.Sections)+1)
	}
	for i, sec := range site.Sections {
		if !strings.Contains(rows[i+1], sec.Label) {
			t.Errorf("row %d missing long label %q", i+1, sec.Label)
		}
	}
	if !strings.Contains(rows[3], "▸") {
		t.Error("active section should be marked in the menu")
	}
}

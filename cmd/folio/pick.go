package main

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/folio/pkg/content"
)

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// sectionOptions lists every section with its long label.
func sectionOptions(site *content.Site) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(site.Sections))
	for i, sec := range site.Sections {
		label := sec.Label
		if label == "" {
			label = string(sec.ID)
		}
		opts = append(opts, huh.NewOption(label, string(sec.ID)).Selected(i == 0))
	}
	return opts
}

// pickSection asks where to start reading. current preselects a section.
func pickSection(site *content.Site, current content.SectionID) (content.SectionID, error) {
	choice := string(current)
	if choice == "" && len(site.Sections) > 0 {
		choice = string(site.Sections[0].ID)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where do you want to start reading?").
				Options(sectionOptions(site)...).
				Value(&choice),
		),
	).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return "", err
	}
	return content.SectionID(choice), nil
}

package datasource

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/folio/pkg/content"
)

// CountChange is a collection whose length differs between two content sets.
type CountChange struct {
	Name   string `json:"name"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// SiteDiff summarizes what a reload changed.
type SiteDiff struct {
	AddedSections   []content.SectionID `json:"added_sections,omitempty"`
	RemovedSections []content.SectionID `json:"removed_sections,omitempty"`
	Reordered       bool                `json:"reordered,omitempty"`
	Counts          []CountChange       `json:"counts,omitempty"`
	TitleChanged    bool                `json:"title_changed,omitempty"`
}

// HasChanges reports whether anything structural changed. Prose edits are
// not tracked.
func (d SiteDiff) HasChanges() bool {
	return len(d.AddedSections) > 0 || len(d.RemovedSections) > 0 ||
		d.Reordered || len(d.Counts) > 0 || d.TitleChanged
}

// Summary returns a one-line description suitable for a status bar.
func (d SiteDiff) Summary() string {
	if !d.HasChanges() {
		return "content reloaded"
	}
	var parts []string
	if n := len(d.AddedSections); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d sections", n))
	}
	if n := len(d.RemovedSections); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d sections", n))
	}
	if d.Reordered {
		parts = append(parts, "sections reordered")
	}
	for _, c := range d.Counts {
		parts = append(parts, fmt.Sprintf("%s %d→%d", c.Name, c.Before, c.After))
	}
	if d.TitleChanged {
		parts = append(parts, "title changed")
	}
	return "content reloaded: " + strings.Join(parts, ", ")
}

// DiffSites compares two content sets.
func DiffSites(before, after *content.Site) SiteDiff {
	var d SiteDiff
	if before == nil || after == nil {
		return d
	}

	inBefore := make(map[content.SectionID]bool, len(before.Sections))
	for _, s := range before.Sections {
		inBefore[s.ID] = true
	}
	inAfter := make(map[content.SectionID]bool, len(after.Sections))
	for _, s := range after.Sections {
		inAfter[s.ID] = true
		if !inBefore[s.ID] {
			d.AddedSections = append(d.AddedSections, s.ID)
		}
	}
	for _, s := range before.Sections {
		if !inAfter[s.ID] {
			d.RemovedSections = append(d.RemovedSections, s.ID)
		}
	}
	d.Reordered = !sameOrder(before.SectionIDs(), after.SectionIDs(), inBefore, inAfter)

	count := func(name string, a, b int) {
		if a != b {
			d.Counts = append(d.Counts, CountChange{Name: name, Before: a, After: b})
		}
	}
	count("concepts", len(before.Concepts), len(after.Concepts))
	count("quotes", len(before.Quotes), len(after.Quotes))
	count("influences", len(before.Influences), len(after.Influences))
	count("works", len(before.Works), len(after.Works))
	count("videos", len(before.Videos), len(after.Videos))
	count("references", len(before.References), len(after.References))

	d.TitleChanged = before.Title != after.Title
	return d
}

// sameOrder compares the relative order of sections present in both sets.
func sameOrder(a, b []content.SectionID, inA, inB map[content.SectionID]bool) bool {
	var common []content.SectionID
	for _, id := range a {
		if inB[id] {
			common = append(common, id)
		}
	}
	i := 0
	for _, id := range b {
		if !inA[id] {
			continue
		}
		if common[i] != id {
			return false
		}
		i++
	}
	return true
}

// Package export renders a content set outside the terminal: Markdown, a
// standalone HTML page and JSON for robot mode.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/vanderheijden86/folio/pkg/content"
)

// GenerateMarkdown renders the whole page as one Markdown document. Section
// anchors use the section id so links match the reader's navigation.
func GenerateMarkdown(site *content.Site) (string, error) {
	if site == nil {
		return "", fmt.Errorf("nil content")
	}
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", site.Title)

	sb.WriteString("## Contenido\n\n")
	for _, sec := range site.Sections {
		fmt.Fprintf(&sb, "- [%s](#%s)\n", sec.Label, sec.ID)
	}
	sb.WriteString("\n---\n\n")

	for _, sec := range site.Sections {
		fmt.Fprintf(&sb, "<a id=\"%s\"></a>\n\n", sec.ID)
		writeSection(&sb, site, sec)
		sb.WriteString("---\n\n")
	}

	if site.Footer.Text != "" {
		fmt.Fprintf(&sb, "*%s*\n", site.Footer.Text)
		if site.Footer.Note != "" {
			fmt.Fprintf(&sb, "\n*%s*\n", site.Footer.Note)
		}
	}
	return sb.String(), nil
}

func writeSection(sb *strings.Builder, site *content.Site, sec content.Section) {
	switch sec.ID {
	case content.SectionHome:
		writeHero(sb, site)
	case content.SectionBiography:
		writeBiography(sb, site, sec)
	case content.SectionThought:
		writeThought(sb, site, sec)
	case content.SectionInfluences:
		writeInfluences(sb, site, sec)
	case content.SectionWorks:
		writeWorks(sb, site, sec)
	case content.SectionVideos:
		fmt.Fprintf(sb, "## %s\n\n", titleOr(site.VideosTitle, sec.Label))
		for _, v := range site.Videos {
			fmt.Fprintf(sb, "- [%s](%s) · %s\n", v.Title, v.URL, v.Channel)
		}
		sb.WriteString("\n")
	case content.SectionReferences:
		fmt.Fprintf(sb, "## %s\n\n", titleOr(site.ReferencesTitle, sec.Label))
		for _, r := range site.References {
			fmt.Fprintf(sb, "- [%s](%s): %s\n", r.Name, r.URL, r.Description)
		}
		sb.WriteString("\n")
	}
}

func writeHero(sb *strings.Builder, site *content.Site) {
	h := site.Hero
	if h.Tag != "" {
		fmt.Fprintf(sb, "*%s*\n\n", h.Tag)
	}
	fmt.Fprintf(sb, "## %s **%s**\n\n", h.Title, h.Highlight)
	if h.Description != "" {
		sb.WriteString(h.Description + "\n\n")
	}
	if h.Years != "" {
		fmt.Fprintf(sb, "**%s**\n\n", h.Years)
	}
	if q, ok := site.LeadQuote(); ok {
		writeQuote(sb, q)
	}
}

func writeBiography(sb *strings.Builder, site *content.Site, sec content.Section) {
	fmt.Fprintf(sb, "## %s\n\n", titleOr(site.BiographyTitle, sec.Label))
	if site.BiographySubtitle != "" {
		fmt.Fprintf(sb, "*%s*\n\n", site.BiographySubtitle)
	}
	if bio := strings.TrimSpace(site.Biography); bio != "" {
		sb.WriteString(demoteHeadings(bio) + "\n\n")
	}
	if len(site.Timeline) > 0 {
		sb.WriteString("| Año | Hito |\n|-----|------|\n")
		for _, e := range site.Timeline {
			year := e.Year
			if e.Highlight {
				year = "**" + year + "**"
			}
			fmt.Fprintf(sb, "| %s | %s |\n", year, escapeCell(e.Text))
		}
		sb.WriteString("\n")
	}
}

func writeThought(sb *strings.Builder, site *content.Site, sec content.Section) {
	fmt.Fprintf(sb, "## %s\n\n", titleOr(site.ThoughtTitle, sec.Label))
	if site.ThoughtIntro != "" {
		sb.WriteString(site.ThoughtIntro + "\n\n")
	}
	for _, c := range site.Concepts {
		fmt.Fprintf(sb, "### %s\n\n%s\n\n", c.Title, c.ShortDescription)
		writeDetail(sb, c.Details)
	}
	for _, q := range site.CardQuotes() {
		writeQuote(sb, q)
	}
}

func writeInfluences(sb *strings.Builder, site *content.Site, sec content.Section) {
	fmt.Fprintf(sb, "## %s\n\n", titleOr(site.InfluencesTitle, sec.Label))
	groups := []struct {
		heading string
		kind    content.InfluenceKind
	}{
		{"Recibidas", content.InfluenceReceived},
		{"Ejercidas", content.InfluenceExerted},
	}
	for _, g := range groups {
		infl := site.InfluencesOf(g.kind)
		if len(infl) == 0 {
			continue
		}
		fmt.Fprintf(sb, "### %s\n\n", g.heading)
		for _, inf := range infl {
			fmt.Fprintf(sb, "- **%s**: %s\n", inf.Name, inf.Description)
		}
		sb.WriteString("\n")
	}
}

func writeWorks(sb *strings.Builder, site *content.Site, sec content.Section) {
	fmt.Fprintf(sb, "## %s\n\n", titleOr(site.WorksTitle, sec.Label))
	for _, w := range site.Works {
		fmt.Fprintf(sb, "### %s (%s)\n\n%s\n\n", w.Title, w.Year, w.Description)
		if w.Link != "" {
			fmt.Fprintf(sb, "[%s](%s)\n\n", w.LinkLabel(), w.Link)
		}
		if rec, ok := w.Detail(); ok {
			writeDetail(sb, rec)
		}
	}
	if site.WorksCredit != "" {
		fmt.Fprintf(sb, "*%s*\n\n", site.WorksCredit)
	}
}

// writeDetail inlines a DetailRecord; on paper there is no overlay.
func writeDetail(sb *strings.Builder, rec content.DetailRecord) {
	rec = rec.Normalized()
	if rec.Intro != "" {
		fmt.Fprintf(sb, "> %s\n\n", rec.Intro)
	}
	for _, s := range rec.Sections {
		fmt.Fprintf(sb, "#### %s\n\n%s\n\n", s.Heading, s.Text)
	}
}

func writeQuote(sb *strings.Builder, q content.Quote) {
	fmt.Fprintf(sb, "> «%s»\n>\n> — %s\n\n", strings.ReplaceAll(q.Text, "\n", " "), q.Source)
}

// demoteHeadings pushes prose headings below the section heading level.
func demoteHeadings(md string) string {
	lines := strings.Split(md, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "#") {
			lines[i] = "##" + l
		}
	}
	return strings.Join(lines, "\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "|", "\\|")
}

func titleOr(title, fallback string) string {
	if title != "" {
		return title
	}
	return fallback
}

// SaveMarkdownToFile writes the generated markdown to a file.
func SaveMarkdownToFile(site *content.Site, filename string) error {
	md, err := GenerateMarkdown(site)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

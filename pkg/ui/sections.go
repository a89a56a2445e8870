package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/folio/pkg/content"
)

// Trigger labels shown on the page.
const (
	conceptTriggerLabel = "Leer explicación detallada →"
	summaryTriggerLabel = "Resumen"
	receivedHeading     = "← Recibidas"
	exertedHeading      = "Ejercidas →"
)

func renderSection(w *sectionWriter, site *content.Site, sec content.Section, theme Theme, md *MarkdownRenderer) {
	switch sec.ID {
	case content.SectionHome:
		renderHero(w, site, theme)
	case content.SectionBiography:
		renderBiography(w, site, sec, theme, md)
	case content.SectionThought:
		renderThought(w, site, sec, theme)
	case content.SectionInfluences:
		renderInfluences(w, site, sec, theme)
	case content.SectionWorks:
		renderWorks(w, site, sec, theme)
	case content.SectionVideos:
		renderVideos(w, site, sec, theme)
	case content.SectionReferences:
		renderReferences(w, site, sec, theme)
	}
}

func titleOr(title, fallback string) string {
	if title != "" {
		return title
	}
	return fallback
}

func renderHeading(w *sectionWriter, theme Theme, tag, title string) {
	w.blank()
	if tag != "" {
		w.block(theme.Tag.Render(strings.ToUpper(tag)))
	}
	w.block(theme.Heading.Width(w.width).Render(title))
	w.blank()
}

func renderQuote(w *sectionWriter, theme Theme, q content.Quote) {
	text := theme.Quote.Width(w.width - SpaceLG).Render("«" + strings.TrimSpace(q.Text) + "»")
	w.block(text)
	if q.Source != "" {
		w.block(theme.QuoteSource.Render("— " + q.Source))
	}
}

func renderHero(w *sectionWriter, site *content.Site, theme Theme) {
	h := site.Hero
	w.blank()
	if h.Tag != "" {
		w.block(theme.Tag.Render(h.Tag))
		w.blank()
	}
	headline := theme.Title.Render(h.Title)
	if h.Highlight != "" {
		headline += " " + theme.HeroAccent.Render(h.Highlight)
	}
	w.block(lipgloss.NewStyle().Width(w.width).Render(headline))
	w.blank()
	if h.Description != "" {
		w.block(theme.Base.Width(w.width).Render(h.Description))
		w.blank()
	}
	if h.Years != "" {
		w.block(theme.YearBadge.Render(h.Years))
		w.blank()
	}
	if h.CTA != "" {
		w.trigger(Trigger{
			Kind:   TriggerNavigate,
			Label:  h.CTA,
			Target: content.SectionBiography,
		}, theme.Trigger.Render(h.CTA+" ↓"))
	}

	// Lead quote between the hero and the biography.
	if q, ok := site.LeadQuote(); ok {
		w.blank()
		w.block(RenderStarDivider(w.width))
		w.blank()
		renderQuote(w, theme, q)
		w.blank()
		w.block(RenderStarDivider(w.width))
	}
}

func renderBiography(w *sectionWriter, site *content.Site, sec content.Section, theme Theme, md *MarkdownRenderer) {
	renderHeading(w, theme, "", titleOr(site.BiographyTitle, sec.Label))
	if site.BiographySubtitle != "" {
		w.block(theme.Subheading.Width(w.width).Render(site.BiographySubtitle))
	}
	if site.BiographyCaption != "" {
		w.block(theme.MutedText.Render("⌖ " + site.BiographyCaption))
	}
	w.blank()

	if bio := strings.TrimSpace(site.Biography); bio != "" {
		w.block(md.Render(bio, w.width))
		w.blank()
	}

	if len(site.Timeline) == 0 {
		return
	}
	w.block(theme.Subheading.Render("Cronología"))
	w.blank()
	const yearCol = 6
	textWidth := w.width - yearCol - SpaceSM
	for _, e := range site.Timeline {
		year := theme.MutedText.Render(padRight(e.Year, yearCol))
		if e.Highlight {
			year = theme.Tag.Render(padRight(e.Year, yearCol))
		}
		text := theme.Base.Width(textWidth).Render(e.Text)
		w.block(lipgloss.JoinHorizontal(lipgloss.Top, year, "│ ", text))
	}
}

func renderThought(w *sectionWriter, site *content.Site, sec content.Section, theme Theme) {
	renderHeading(w, theme, "", titleOr(site.ThoughtTitle, sec.Label))
	if site.ThoughtIntro != "" {
		w.block(theme.MutedText.Width(w.width).Render(site.ThoughtIntro))
		w.blank()
	}

	cardWidth := w.width - SpaceXS
	for _, c := range site.Concepts {
		body := theme.CardTitle.Render(c.Title) + "\n" + theme.Base.Render(c.ShortDescription)
		w.block(theme.Card.Width(cardWidth - 2).Render(body))
		rec, _ := c.Detail()
		w.trigger(Trigger{
			Kind:   TriggerDetail,
			Label:  c.Title,
			Detail: rec,
		}, "  "+theme.Trigger.Render(conceptTriggerLabel))
		w.blank()
	}

	for _, q := range site.CardQuotes() {
		renderQuote(w, theme, q)
		w.blank()
	}
}

func renderInfluences(w *sectionWriter, site *content.Site, sec content.Section, theme Theme) {
	renderHeading(w, theme, "", titleOr(site.InfluencesTitle, sec.Label))

	column := func(heading string, infl []content.Influence, width int) string {
		var sb strings.Builder
		sb.WriteString(theme.Subheading.Render(heading))
		for _, inf := range infl {
			sb.WriteString("\n\n")
			sb.WriteString(theme.CardTitle.Render(inf.Name))
			sb.WriteString("\n")
			sb.WriteString(theme.Base.Width(width).Render(inf.Description))
		}
		return sb.String()
	}

	received := site.InfluencesOf(content.InfluenceReceived)
	exerted := site.InfluencesOf(content.InfluenceExerted)

	if w.width >= TwoColumnWidth {
		colWidth := (w.width - SpaceLG) / 2
		left := lipgloss.NewStyle().Width(colWidth).Render(column(receivedHeading, received, colWidth))
		right := lipgloss.NewStyle().Width(colWidth).Render(column(exertedHeading, exerted, colWidth))
		w.block(lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", SpaceLG), right))
		return
	}
	w.block(column(receivedHeading, received, w.width))
	w.blank()
	w.block(column(exertedHeading, exerted, w.width))
}

func renderWorks(w *sectionWriter, site *content.Site, sec content.Section, theme Theme) {
	renderHeading(w, theme, site.WorksTag, titleOr(site.WorksTitle, sec.Label))

	cardWidth := w.width - SpaceXS
	for _, work := range site.Works {
		head := theme.YearBadge.Render(work.Year) + " " + theme.CardTitle.Render(work.Title)
		body := head + "\n" + theme.Base.Render(work.Description)
		w.block(theme.Card.Width(cardWidth - 2).Render(body))

		if rec, ok := work.Detail(); ok {
			w.trigger(Trigger{
				Kind:   TriggerDetail,
				Label:  work.Title,
				Detail: rec,
			}, "  "+theme.Trigger.Render("▤ "+summaryTriggerLabel))
		}
		if work.Link != "" {
			w.trigger(Trigger{
				Kind:  TriggerLink,
				Label: work.LinkLabel(),
				URL:   work.Link,
			}, "  "+theme.Link.Render("↗ "+work.LinkLabel()))
		}
		w.blank()
	}

	if site.WorksCredit != "" {
		w.block(theme.MutedText.Width(w.width).Render(site.WorksCredit))
	}
}

func renderVideos(w *sectionWriter, site *content.Site, sec content.Section, theme Theme) {
	renderHeading(w, theme, "", titleOr(site.VideosTitle, sec.Label))
	for _, v := range site.Videos {
		label := truncate("▶ "+v.Title, w.width-SpaceXS)
		w.trigger(Trigger{
			Kind:  TriggerLink,
			Label: v.Title,
			URL:   v.URL,
		}, theme.Link.Render(label))
		if v.Channel != "" {
			w.block(theme.MutedText.Render("  " + v.Channel))
		}
		w.blank()
	}
}

func renderReferences(w *sectionWriter, site *content.Site, sec content.Section, theme Theme) {
	renderHeading(w, theme, "", titleOr(site.ReferencesTitle, sec.Label))
	for _, r := range site.References {
		w.trigger(Trigger{
			Kind:  TriggerLink,
			Label: r.Name,
			URL:   r.URL,
		}, theme.Link.Render(truncate("↗ "+r.Name, w.width-SpaceXS)))
		if r.Description != "" {
			w.block(theme.MutedText.Width(w.width - SpaceSM).PaddingLeft(SpaceSM).Render(r.Description))
		}
		w.blank()
	}
}

func renderFooter(w *sectionWriter, site *content.Site, theme Theme) {
	if site.Footer.Text == "" && site.Footer.Note == "" {
		return
	}
	w.block(RenderDivider(w.width))
	if site.Footer.Text != "" {
		w.block(theme.MutedText.Width(w.width).Align(lipgloss.Center).Render(site.Footer.Text))
	}
	if site.Footer.Note != "" {
		w.block(theme.MutedText.Italic(true).Width(w.width).Align(lipgloss.Center).Render(site.Footer.Note))
	}
	w.blank()
}

// sectionLabel is "n. Label" for menus.
func sectionLabel(i int, sec content.Section) string {
	return fmt.Sprintf("%d. %s", i+1, sec.Label)
}

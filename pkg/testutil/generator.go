// Package testutil builds deterministic content fixtures for tests.
// The same seed always yields the same Site.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vanderheijden86/folio/pkg/content"
)

// GeneratorConfig controls fixture size.
type GeneratorConfig struct {
	Seed       int64 // Random seed (0 = 42)
	Sections   []content.SectionID
	Paragraphs int // Biography paragraphs
	Timeline   int
	Concepts   int
	Quotes     int
	Influences int
	Works      int
	Videos     int
	References int
	// SummaryEvery gives every n-th work a summary (0 = none).
	SummaryEvery int
}

// DefaultConfig returns a config close to the shipped content.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:         42,
		Sections:     content.KnownSections,
		Paragraphs:   3,
		Timeline:     6,
		Concepts:     4,
		Quotes:       4,
		Influences:   6,
		Works:        5,
		Videos:       3,
		References:   3,
		SummaryEvery: 2,
	}
}

// Generator creates content fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if len(cfg.Sections) == 0 {
		cfg.Sections = content.KnownSections
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

var words = strings.Fields(`capital trabajo valor clase historia sociedad
producción mercancía dialéctica materialismo revolución filosofía economía
política crítica plusvalía alienación conciencia Estado proletariado
burguesía ideología Londres Tréveris manuscrito`)

func (g *Generator) sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[g.rng.Intn(len(words))]
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func (g *Generator) paragraph() string {
	n := 2 + g.rng.Intn(4)
	out := make([]string, n)
	for i := range out {
		out[i] = g.sentence(6 + g.rng.Intn(10))
	}
	return strings.Join(out, " ")
}

func (g *Generator) detail(title string) content.DetailRecord {
	rec := content.DetailRecord{Title: title, Intro: g.paragraph()}
	for i := 0; i < 1+g.rng.Intn(3); i++ {
		rec.Sections = append(rec.Sections, content.DetailSection{
			Heading: fmt.Sprintf("Parte %d", i+1),
			Text:    g.paragraph(),
		})
	}
	return rec
}

// Site generates a valid content set.
func (g *Generator) Site() *content.Site {
	cfg := g.cfg
	site := &content.Site{
		Title: "FIXTURE",
		Logo:  "F",
		Hero: content.Hero{
			Tag:         "Filósofo",
			Title:       "Una vida",
			Highlight:   "de prueba",
			Description: g.paragraph(),
			CTA:         "Comenzar Lectura",
			Years:       "1818 – 1883",
		},
		BiographyTitle:    "Biografía",
		BiographySubtitle: "Una vida de prueba",
		ThoughtTitle:      "Pensamiento",
		ThoughtIntro:      g.sentence(12),
		InfluencesTitle:   "Influencias",
		WorksTitle:        "Obras",
		WorksCredit:       "Archivo de prueba",
		VideosTitle:       "Videos",
		ReferencesTitle:   "Referencias",
		Footer:            content.Footer{Text: "Sitio educativo.", Note: "Fixture"},
	}

	for i, id := range cfg.Sections {
		site.Sections = append(site.Sections, content.Section{
			ID:           id,
			Label:        strings.ToUpper(string(id[:1])) + string(id[1:]),
			InDesktopNav: i > 0,
		})
	}

	paras := make([]string, cfg.Paragraphs)
	for i := range paras {
		paras[i] = g.paragraph()
	}
	site.Biography = strings.Join(paras, "\n\n")

	for i := 0; i < cfg.Timeline; i++ {
		site.Timeline = append(site.Timeline, content.TimelineEntry{
			Year:      fmt.Sprintf("%d", 1818+i*7),
			Text:      g.sentence(8),
			Highlight: i%3 == 0,
		})
	}
	for i := 0; i < cfg.Concepts; i++ {
		title := fmt.Sprintf("Concepto %d", i+1)
		site.Concepts = append(site.Concepts, content.KeyConcept{
			Title:            title,
			ShortDescription: g.sentence(10),
			Details:          g.detail(title),
		})
	}
	for i := 0; i < cfg.Quotes; i++ {
		site.Quotes = append(site.Quotes, content.Quote{Text: g.sentence(12), Source: fmt.Sprintf("Obra %d", i+1)})
	}
	for i := 0; i < cfg.Influences; i++ {
		kind := content.InfluenceReceived
		if i%2 == 1 {
			kind = content.InfluenceExerted
		}
		site.Influences = append(site.Influences, content.Influence{
			Name:        fmt.Sprintf("Autor %d", i+1),
			Description: g.sentence(9),
			Kind:        kind,
		})
	}
	for i := 0; i < cfg.Works; i++ {
		w := content.Work{
			Title:       fmt.Sprintf("Obra %d", i+1),
			Year:        fmt.Sprintf("%d", 1840+i*3),
			Description: g.sentence(14),
			Link:        fmt.Sprintf("https://example.org/obra-%d", i+1),
			IsFree:      i%2 == 0,
		}
		if cfg.SummaryEvery > 0 && i%cfg.SummaryEvery == 0 {
			rec := g.detail(w.Title)
			w.Summary = &rec
		}
		site.Works = append(site.Works, w)
	}
	for i := 0; i < cfg.Videos; i++ {
		site.Videos = append(site.Videos, content.Video{
			Title:   fmt.Sprintf("Video %d", i+1),
			URL:     fmt.Sprintf("https://example.org/video-%d", i+1),
			Channel: "Canal",
		})
	}
	for i := 0; i < cfg.References; i++ {
		site.References = append(site.References, content.Reference{
			Name:        fmt.Sprintf("Fuente %d", i+1),
			URL:         fmt.Sprintf("https://example.org/ref-%d", i+1),
			Description: g.sentence(7),
		})
	}
	return site
}

// DetailCount is how many detail triggers the site carries.
func DetailCount(site *content.Site) int {
	n := len(site.Concepts)
	for _, w := range site.Works {
		if _, ok := w.Detail(); ok {
			n++
		}
	}
	return n
}

// QuickSite generates a default-sized site with the given seed.
func QuickSite(seed int64) *content.Site {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return New(cfg).Site()
}

// Minimal returns a site with only the given sections and no cards.
func Minimal(ids ...content.SectionID) *content.Site {
	return New(GeneratorConfig{Seed: 1, Sections: ids}).Site()
}

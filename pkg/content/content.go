// Package content defines the static data model rendered by folio.
//
// Everything here is hand-authored and read-only once loaded: sections,
// biography prose, key concepts, quotes, influences, works, videos and
// references. The view layer never mutates a Site.
package content

// SectionID identifies one of the fixed top-level regions of the page.
type SectionID string

const (
	SectionHome       SectionID = "home"
	SectionBiography  SectionID = "biography"
	SectionThought    SectionID = "thought"
	SectionInfluences SectionID = "influences"
	SectionWorks      SectionID = "works"
	SectionVideos     SectionID = "videos"
	SectionReferences SectionID = "references"
)

// KnownSections lists every section id in declared order.
var KnownSections = []SectionID{
	SectionHome,
	SectionBiography,
	SectionThought,
	SectionInfluences,
	SectionWorks,
	SectionVideos,
	SectionReferences,
}

// IsKnown reports whether id belongs to the closed set of sections.
func (id SectionID) IsKnown() bool {
	for _, k := range KnownSections {
		if k == id {
			return true
		}
	}
	return false
}

// Section is a navigable region plus the labels used by the navigation bar.
type Section struct {
	ID           SectionID `yaml:"id" json:"id"`
	Label        string    `yaml:"label" json:"label"`                             // Long label (menu)
	NavLabel     string    `yaml:"nav_label,omitempty" json:"nav_label,omitempty"` // Short label (wide nav bar)
	InDesktopNav bool      `yaml:"desktop_nav,omitempty" json:"desktop_nav"`
}

// ShortLabel returns the wide navigation label, falling back to Label.
func (s Section) ShortLabel() string {
	if s.NavLabel != "" {
		return s.NavLabel
	}
	return s.Label
}

// DetailSection is one heading/text block inside a DetailRecord.
type DetailSection struct {
	Heading string `yaml:"heading" json:"heading"`
	Text    string `yaml:"text" json:"text"`
}

// DetailRecord is the payload shown in the detail overlay. Concepts and
// work summaries share this shape.
type DetailRecord struct {
	Title    string          `yaml:"title" json:"title"`
	Intro    string          `yaml:"intro" json:"intro"`
	Sections []DetailSection `yaml:"sections" json:"sections"`
}

// Normalized returns a copy whose Sections is never nil.
func (d DetailRecord) Normalized() DetailRecord {
	out := d
	if d.Sections == nil {
		out.Sections = []DetailSection{}
		return out
	}
	out.Sections = append([]DetailSection(nil), d.Sections...)
	return out
}

// Detailer is implemented by content cards that may open the detail overlay.
type Detailer interface {
	Detail() (DetailRecord, bool)
}

// KeyConcept is a card in the thought section with a full explanation.
type KeyConcept struct {
	Title            string       `yaml:"title" json:"title"`
	ShortDescription string       `yaml:"short_description" json:"short_description"`
	Details          DetailRecord `yaml:"details" json:"details"`
}

// Detail implements Detailer.
func (c KeyConcept) Detail() (DetailRecord, bool) {
	return c.Details, true
}

// Work is a bibliography entry. Summary is optional.
type Work struct {
	Title       string        `yaml:"title" json:"title"`
	Year        string        `yaml:"year" json:"year"`
	Description string        `yaml:"description" json:"description"`
	Link        string        `yaml:"link" json:"link"`
	IsFree      bool          `yaml:"is_free" json:"is_free"`
	Summary     *DetailRecord `yaml:"summary,omitempty" json:"summary,omitempty"`
}

// Detail implements Detailer.
func (w Work) Detail() (DetailRecord, bool) {
	if w.Summary == nil {
		return DetailRecord{}, false
	}
	return *w.Summary, true
}

// LinkLabel is the label of the external link action.
func (w Work) LinkLabel() string {
	if w.IsFree {
		return "Ebook"
	}
	return "Ver"
}

// Quote is a citation with its source.
type Quote struct {
	Text   string `yaml:"text" json:"text"`
	Source string `yaml:"source" json:"source"`
}

// InfluenceKind tells whether an influence was received or exerted.
type InfluenceKind string

const (
	InfluenceReceived InfluenceKind = "received"
	InfluenceExerted  InfluenceKind = "exerted"
)

// Influence is an intellectual influence card.
type Influence struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	Kind        InfluenceKind `yaml:"kind" json:"kind"`
}

// Video is an external audiovisual resource.
type Video struct {
	Title     string `yaml:"title" json:"title"`
	URL       string `yaml:"url" json:"url"`
	Channel   string `yaml:"channel" json:"channel"`
	Thumbnail string `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`
}

// Reference is an external source link.
type Reference struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description" json:"description"`
}

// TimelineEntry is one year on the biography timeline.
type TimelineEntry struct {
	Year      string `yaml:"year" json:"year"`
	Text      string `yaml:"text" json:"text"`
	Highlight bool   `yaml:"highlight,omitempty" json:"highlight,omitempty"`
}

// Hero is the opening block of the page.
type Hero struct {
	Tag         string `yaml:"tag" json:"tag"`
	Title       string `yaml:"title" json:"title"`
	Highlight   string `yaml:"highlight" json:"highlight"`
	Description string `yaml:"description" json:"description"`
	CTA         string `yaml:"cta" json:"cta"`
	Years       string `yaml:"years" json:"years"`
}

// Footer closes the page.
type Footer struct {
	Text string `yaml:"text" json:"text"`
	Note string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Site is the full content set supplied to the page shell at startup.
type Site struct {
	Title             string          `yaml:"title" json:"title"`
	Logo              string          `yaml:"logo" json:"logo"`
	Sections          []Section       `yaml:"sections" json:"sections"`
	Hero              Hero            `yaml:"hero" json:"hero"`
	BiographyTitle    string          `yaml:"biography_title" json:"biography_title"`
	BiographySubtitle string          `yaml:"biography_subtitle" json:"biography_subtitle"`
	BiographyCaption  string          `yaml:"biography_caption,omitempty" json:"biography_caption,omitempty"`
	Biography         string          `yaml:"biography" json:"biography"`
	Timeline          []TimelineEntry `yaml:"timeline" json:"timeline"`
	ThoughtTitle      string          `yaml:"thought_title" json:"thought_title"`
	ThoughtIntro      string          `yaml:"thought_intro" json:"thought_intro"`
	Concepts          []KeyConcept    `yaml:"concepts" json:"concepts"`
	Quotes            []Quote         `yaml:"quotes" json:"quotes"`
	InfluencesTitle   string          `yaml:"influences_title" json:"influences_title"`
	Influences        []Influence     `yaml:"influences" json:"influences"`
	WorksTitle        string          `yaml:"works_title" json:"works_title"`
	WorksTag          string          `yaml:"works_tag,omitempty" json:"works_tag,omitempty"`
	WorksCredit       string          `yaml:"works_credit,omitempty" json:"works_credit,omitempty"`
	Works             []Work          `yaml:"works" json:"works"`
	VideosTitle       string          `yaml:"videos_title" json:"videos_title"`
	Videos            []Video         `yaml:"videos" json:"videos"`
	ReferencesTitle   string          `yaml:"references_title" json:"references_title"`
	References        []Reference     `yaml:"references" json:"references"`
	Footer            Footer          `yaml:"footer" json:"footer"`
}

// SectionIDs returns the declared section order.
func (s *Site) SectionIDs() []SectionID {
	ids := make([]SectionID, 0, len(s.Sections))
	for _, sec := range s.Sections {
		ids = append(ids, sec.ID)
	}
	return ids
}

// FindSection returns the section descriptor for id.
func (s *Site) FindSection(id SectionID) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

// InfluencesOf returns the influences of the given kind, preserving order.
func (s *Site) InfluencesOf(kind InfluenceKind) []Influence {
	var out []Influence
	for _, inf := range s.Influences {
		if inf.Kind == kind {
			out = append(out, inf)
		}
	}
	return out
}

// LeadQuote returns the quote shown between the hero and the biography.
func (s *Site) LeadQuote() (Quote, bool) {
	if len(s.Quotes) == 0 {
		return Quote{}, false
	}
	return s.Quotes[0], true
}

// CardQuotes returns the quotes shown as cards in the thought section.
func (s *Site) CardQuotes() []Quote {
	if len(s.Quotes) <= 1 {
		return nil
	}
	return s.Quotes[1:]
}

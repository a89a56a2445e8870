package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/vanderheijden86/folio/pkg/content"
)

// Raw HTML must pass through: section anchors are emitted as <a id>.
var pageMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{margin:0;font-family:Georgia,serif;background:#fdfbf7;color:#1f1f1f;line-height:1.6}
nav{position:sticky;top:0;background:#7f1d1d;padding:.6rem 1rem;z-index:1}
nav a{color:#fde68a;margin-right:1rem;text-decoration:none;font-family:sans-serif;font-size:.9rem}
main{max-width:52rem;margin:0 auto;padding:1rem 1.5rem 4rem}
h1,h2,h3{color:#7f1d1d}
a[id]{scroll-margin-top:4rem}
blockquote{border-left:4px solid #d4a017;margin-left:0;padding-left:1rem;color:#444;font-style:italic}
table{border-collapse:collapse}td,th{border:1px solid #ddd;padding:.3rem .6rem}
</style>
</head>
<body>
<nav>{{range .Nav}}<a href="#{{.ID}}">{{.Label}}</a>{{end}}</nav>
<main>
{{.Body}}
</main>
</body>
</html>
`))

type pageData struct {
	Title string
	Nav   []content.Section
	Body  template.HTML
}

// GenerateHTML renders a standalone page: a sticky navigation bar over the
// Markdown rendition converted with goldmark.
func GenerateHTML(site *content.Site) ([]byte, error) {
	md, err := GenerateMarkdown(site)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := pageMarkdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var nav []content.Section
	for _, sec := range site.Sections {
		if sec.InDesktopNav {
			nav = append(nav, content.Section{ID: sec.ID, Label: sec.ShortLabel()})
		}
	}

	var out bytes.Buffer
	err = pageTemplate.Execute(&out, pageData{
		Title: site.Title,
		Nav:   nav,
		// The body is our own Markdown rendered by goldmark.
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return out.Bytes(), nil
}

// SaveHTMLToFile writes the standalone page to filename.
func SaveHTMLToFile(site *content.Site, filename string) error {
	page, err := GenerateHTML(site)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, page, 0o644); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	return nil
}

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/folio/pkg/content"
	"github.com/vanderheijden86/folio/pkg/debug"
)

// Bundle file names written by ExportAll.
const (
	BundleMarkdown = "site.md"
	BundleHTML     = "index.html"
	BundleJSON     = "site.json"
)

// BundleResult records one written file.
type BundleResult struct {
	Name  string
	Path  string
	Bytes int
}

// ExportAll renders the Markdown, HTML and JSON renditions concurrently and
// writes them into dir. The first failure cancels the rest.
func ExportAll(ctx context.Context, site *content.Site, dir string) ([]BundleResult, error) {
	if site == nil {
		return nil, fmt.Errorf("nil content")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	renderers := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{BundleMarkdown, func() ([]byte, error) {
			md, err := GenerateMarkdown(site)
			return []byte(md), err
		}},
		{BundleHTML, func() ([]byte, error) { return GenerateHTML(site) }},
		{BundleJSON, func() ([]byte, error) { return MarshalSite(site) }},
	}

	results := make([]BundleResult, len(renderers))
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range renderers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := r.render()
			if err != nil {
				return fmt.Errorf("%s: %w", r.name, err)
			}
			path := filepath.Join(dir, r.name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", r.name, err)
			}
			results[i] = BundleResult{Name: r.name, Path: path, Bytes: len(data)}
			debug.Log("export: wrote %s (%d bytes)", path, len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

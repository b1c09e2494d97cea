package llms

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/content"
)

// TextOptions override the page data in the text header.
type TextOptions struct {
	Description string
	Title       string
}

// Text renders one page for llms consumption. The processed markdown is
// preferred, a page without any text is an error.
func (e *Exporter) Text(page *content.Page, opts *TextOptions) (string, error) {
	loader, exist := e.byName[page.Collection]
	if !exist {
		return "", errExport.Label(page.URL).Messagef("unknown collection %q", page.Collection)
	}

	text, err := page.Text(content.TextProcessed)
	if err != nil {
		if text, err = page.Text(content.TextRaw); err != nil {
			return "", err
		}
	}

	title, description := page.Title, page.Description
	if opts != nil {
		if opts.Title != "" {
			title = opts.Title
		}
		if opts.Description != "" {
			description = opts.Description
		}
	}
	if title == "" {
		title = "Untitled"
	}

	col := loader.Collection()
	return fmt.Sprintf("# %s: %s\nURL: %s\nSource: %s\n\n%s\n\n%s",
		pageCategory(col, page), title, page.URL, e.sourceURL(col, page), description, StripComponents(text)), nil
}

func pageCategory(col *config.Collection, page *content.Page) string {
	if col.CategoryLabel != "" {
		return col.CategoryLabel
	}
	category := page.Category()
	if category == "" {
		return col.Label
	}
	if label, ok := col.Categories[category]; ok {
		return label
	}
	return category
}

// sourceURL points to the raw file on github if a repository is configured.
func (e *Exporter) sourceURL(col *config.Collection, page *content.Page) string {
	contentRoot := path.Clean(filepath.ToSlash(col.Dir))
	if e.settings.GitHubRepo != "" {
		return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s",
			e.settings.GitHubRepo, e.settings.GitHubBranch, contentRoot, page.Path)
	}
	return path.Join(contentRoot, page.Path)
}

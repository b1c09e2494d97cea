package llms

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fieldnation/devportal/content"
)

const otherCategory = "other"

type category struct {
	key   string
	label string
	pages []*content.Page
}

// categories groups the pages of a collection by their first slug. Configured
// categories come first, unknown ones follow alphabetically. Pages are sorted
// by their display name.
func (e *Exporter) categories(loader *content.Loader) []*category {
	col := loader.Collection()
	names := e.nameMaps[loader.Name()]

	grouped := make(map[string]*category)
	for _, page := range loader.Pages() {
		key := page.Category()
		if key == "" {
			key = otherCategory
		}
		c, exist := grouped[key]
		if !exist {
			label := key
			if l, ok := col.Categories[key]; ok {
				label = l
			}
			c = &category{key: key, label: label}
			grouped[key] = c
		}
		c.pages = append(c.pages, page)
	}

	var result []*category
	for _, key := range col.CategoryOrder {
		if c, exist := grouped[key]; exist {
			result = append(result, c)
			delete(grouped, key)
		}
	}

	rest := make([]string, 0, len(grouped))
	for key := range grouped {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		result = append(result, grouped[key])
	}

	collator := collate.New(language.English)
	for _, c := range result {
		sort.SliceStable(c.pages, func(i, j int) bool {
			if cmp := collator.CompareString(pageName(names, c.pages[i]), pageName(names, c.pages[j])); cmp != 0 {
				return cmp < 0
			}
			return c.pages[i].URL < c.pages[j].URL
		})
	}
	return result
}

// pageName prefers the page tree name.
func pageName(names map[string]string, page *content.Page) string {
	if name := names[page.URL]; name != "" {
		return name
	}
	return page.Title
}

// Outline lists all pages per collection and category.
func (e *Exporter) Outline() string {
	lines := []string{fmt.Sprintf("# %s Documentation Outline", e.conf.Title), ""}

	for _, loader := range e.loaders {
		lines = append(lines, "## "+loader.Collection().Label, "")
		names := e.nameMaps[loader.Name()]
		for _, c := range e.categories(loader) {
			lines = append(lines, "### "+c.label)
			for _, page := range c.pages {
				lines = append(lines, fmt.Sprintf("- %s — %s", pageName(names, page), page.URL))
			}
			lines = append(lines, "")
		}
	}

	return strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")
}

// Full concatenates the text of all pages behind a table of contents.
func (e *Exporter) Full() (string, error) {
	lines := []string{fmt.Sprintf("# %s — Full Text", e.conf.Title), "", "## Table of Contents"}

	grouped := make([][]*category, len(e.loaders))
	for i, loader := range e.loaders {
		grouped[i] = e.categories(loader)
		if len(grouped[i]) == 0 {
			continue
		}
		lines = append(lines, "", "### "+loader.Collection().Label)
		for _, c := range grouped[i] {
			lines = append(lines, fmt.Sprintf("- %s (%d)", c.label, len(c.pages)))
		}
	}
	lines = append(lines, "")

	for i, loader := range e.loaders {
		lines = append(lines, "## "+loader.Collection().Label, "")
		names := e.nameMaps[loader.Name()]
		for _, c := range grouped[i] {
			lines = append(lines, fmt.Sprintf("## %s (%d)", c.label, len(c.pages)), "")
			for _, page := range c.pages {
				name := pageName(names, page)
				text, err := e.Text(page, &TextOptions{Title: name})
				if err != nil {
					return "", err
				}
				lines = append(lines, "### "+name, "URL: "+page.URL, "", text, "", "---", "")
			}
		}
	}

	full := newlinesRegex.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimRight(full, " \t\r\n"), nil
}

package search

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/content"
)

// Builder indexes pages and their headings.
type Builder struct {
	conf *config.Search
	log  *logrus.Entry
}

func NewBuilder(conf *config.Search, log *logrus.Entry) *Builder {
	return &Builder{conf: conf, log: log}
}

// Build creates one page entry per page and one heading entry per table of
// contents item up to the configured depth. The first failing insert aborts.
func (b *Builder) Build(ctx context.Context, loaders ...*content.Loader) (*Index, error) {
	index := NewIndex()

	for _, loader := range loaders {
		col := loader.Collection()
		if !col.Searchable() {
			b.log.WithContext(ctx).Debugf("search: skipping collection %s", col.Name)
			continue
		}

		section := col.CategoryLabel
		if section == "" {
			section = col.Label
		}

		for _, page := range loader.Pages() {
			if err := index.Insert(&Entry{
				Content:     page.Description,
				Description: page.Description,
				ID:          page.URL,
				Section:     section,
				Title:       page.Title,
				Type:        TypePage,
				URL:         page.URL,
			}); err != nil {
				return nil, err
			}

			for _, item := range page.TOC {
				if item.Depth > b.conf.MaxHeadingDepth {
					continue
				}
				url := page.URL + "#" + strings.TrimPrefix(item.URL, "#")
				if err := index.Insert(&Entry{
					Content: item.Title,
					ID:      url,
					Section: section,
					Title:   item.Title,
					Type:    TypeHeading,
					URL:     url,
				}); err != nil {
					return nil, err
				}
			}
		}
	}

	b.log.WithContext(ctx).Infof("search index with %d pages and %d headings",
		index.Count(TypePage), index.Count(TypeHeading))
	return index, nil
}

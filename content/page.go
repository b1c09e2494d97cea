package content

import (
	"time"

	"github.com/fieldnation/devportal/content/icon"
	"github.com/fieldnation/devportal/errors"
)

// TextKind selects the markdown representation returned by Page.Text.
type TextKind string

const (
	// TextRaw is the file content including the frontmatter.
	TextRaw TextKind = "raw"
	// TextProcessed is the markdown body without frontmatter, mdx statements and comments.
	TextProcessed TextKind = "processed"
)

var ErrTextUnavailable = errors.Content.Kind("text_unavailable").Message("page text unavailable")

type TOCItem struct {
	Depth int    `json:"depth"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Page is a loaded content document. Pages are not modified after loading.
type Page struct {
	Collection   string
	Description  string
	Full         bool
	Icon         icon.Icon
	Index        bool
	LastModified time.Time
	// Path is the slash separated source path relative to the collection directory.
	Path  string
	Slugs []string
	Title string
	TOC   []TOCItem
	URL   string

	texts map[TextKind]string
}

// NewPage returns a copy of p with the given texts attached.
func NewPage(p Page, texts map[TextKind]string) *Page {
	page := p
	page.texts = make(map[TextKind]string, len(texts))
	for kind, text := range texts {
		page.texts[kind] = text
	}
	return &page
}

func (p *Page) Text(kind TextKind) (string, error) {
	text, exist := p.texts[kind]
	if !exist {
		return "", ErrTextUnavailable.Label(p.URL).Messagef("no %s text", kind)
	}
	return text, nil
}

// Category is the first slug segment.
func (p *Page) Category() string {
	if len(p.Slugs) == 0 {
		return ""
	}
	return p.Slugs[0]
}

func (p *Page) SlugKey() string {
	return slugKey(p.Slugs)
}

package search

type EntryType string

const (
	TypePage    EntryType = "page"
	TypeHeading EntryType = "heading"
)

// Entry is one searchable document, either a page or one of its headings.
type Entry struct {
	Content     string    `json:"content"`
	Description string    `json:"description"`
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	Title       string    `json:"title"`
	Type        EntryType `json:"type"`
	URL         string    `json:"url"`
}

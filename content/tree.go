package content

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type NodeType string

const (
	NodeFolder    NodeType = "folder"
	NodePage      NodeType = "page"
	NodeSeparator NodeType = "separator"
)

// Node is an element of the page tree. Folder nodes may
// reference their index page.
type Node struct {
	Children    []*Node  `json:"children,omitempty"`
	DefaultOpen bool     `json:"defaultOpen,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Index       *Node    `json:"index,omitempty"`
	Name        string   `json:"name"`
	Root        bool     `json:"root,omitempty"`
	Type        NodeType `json:"type"`
	URL         string   `json:"url,omitempty"`

	page *Page
}

func (n *Node) Page() *Page {
	return n.page
}

func newPageNode(p *Page) *Node {
	return &Node{
		Icon: p.Icon.Value,
		Name: p.Title,
		Type: NodePage,
		URL:  p.URL,
		page: p,
	}
}

// Walk calls fn for n and all descendants including folder index pages.
func (n *Node) Walk(fn func(node *Node)) {
	if n == nil {
		return
	}
	fn(n)
	if n.Index != nil {
		fn(n.Index)
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// parentOf returns the folder containing the page with the given url.
func (n *Node) parentOf(url string) *Node {
	for _, child := range n.Children {
		if child.Type == NodePage && child.URL == url {
			return n
		}
		if child.Type == NodeFolder {
			if child.Index != nil && child.Index.URL == url {
				return n
			}
			if parent := child.parentOf(url); parent != nil {
				return parent
			}
		}
	}
	return nil
}

func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

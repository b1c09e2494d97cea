package config

// Collection describes one directory of content documents
// which is exposed as a page tree under BaseURL.
type Collection struct {
	Name string `hcl:"name,label"`

	BaseURL string `hcl:"base_url,optional"`
	// CategoryLabel replaces the per page category in llms headers, e.g. "API References".
	CategoryLabel string            `hcl:"category_label,optional"`
	CategoryOrder []string          `hcl:"category_order,optional"`
	Categories    map[string]string `hcl:"categories,optional"`
	Dir           string            `hcl:"dir"`
	Label         string            `hcl:"label,optional"`
	LLMs          *bool             `hcl:"llms,optional"`
	// Optional collections may miss their directory.
	Optional bool  `hcl:"optional,optional"`
	Search   *bool `hcl:"search,optional"`
	// Versioned lists the first slug segments which carry a version segment.
	Versioned []string `hcl:"versioned,optional"`
}

// ExportLLMs reports whether the collection is part of the llms exports.
func (c *Collection) ExportLLMs() bool {
	return c.LLMs == nil || *c.LLMs
}

// Searchable reports whether the collection is part of the search index.
func (c *Collection) Searchable() bool {
	return c.Search == nil || *c.Search
}

type Collections []*Collection

func (c Collections) WithName(name string) (*Collection, bool) {
	for _, col := range c {
		if col.Name == name {
			return col, true
		}
	}
	return nil, false
}

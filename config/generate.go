package config

const (
	CollisionError  = "error"
	CollisionSuffix = "suffix"
)

var DefaultGenerate = Generate{
	Output:      "./content",
	OnCollision: CollisionError,
	Root:        "api-references",
	TagPrefixes: map[string]string{
		FamilyREST:    "work-orders.",
		FamilyWebhook: "webhooks.",
	},
}

type Generate struct {
	OnCollision string `hcl:"on_collision,optional"`
	Output      string `hcl:"output,optional"`
	Root        string `hcl:"root,optional"`
	// TagPrefixes maps an api family to the tag prefix stripped from category names.
	TagPrefixes map[string]string `hcl:"tag_prefixes,optional"`
}

var DefaultLLMs = LLMs{
	Concurrency: 8,
	Output:      "public/llms",
	Title:       "Field Nation Integrations",
}

type LLMs struct {
	Concurrency int    `hcl:"concurrency,optional"`
	Output      string `hcl:"output,optional"`
	Strict      bool   `hcl:"strict,optional"`
	Title       string `hcl:"title,optional"`
}

var DefaultSearch = Search{
	MaxHeadingDepth: 3,
	Output:          "public/search-index.json",
}

type Search struct {
	AlgoliaAPIKey   string `hcl:"algolia_api_key,optional"`
	AlgoliaAppID    string `hcl:"algolia_app_id,optional"`
	AlgoliaIndex    string `hcl:"algolia_index,optional"`
	MaxHeadingDepth int    `hcl:"max_heading_depth,optional"`
	Output          string `hcl:"output,optional"`
}

// Publish reports whether the index should be pushed to algolia too.
func (s *Search) Publish() bool {
	return s.AlgoliaAppID != "" && s.AlgoliaIndex != "" && s.AlgoliaAPIKey != ""
}

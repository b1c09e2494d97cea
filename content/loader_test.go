package content_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/content"
	"github.com/fieldnation/devportal/content/icon"
	"github.com/fieldnation/devportal/internal/test"
)

var docsFixture = test.Files{
	"index.mdx": `---
title: Welcome
description: Start here
icon: "🚀"
---

# Welcome
`,
	"getting-started/index.mdx": `---
title: Getting Started
icon: Rocket
index: true
---

import { Callout } from "fumadocs-ui/components/callout";

Intro text.

{/* hidden note */}

## Authentication

` + "```ts\nimport { x } from \"y\";\n{/* kept */}\n```\n",
	"getting-started/quickstart.mdx": `---
title: Quickstart
description: The first request
lastModified: 2024-03-01
---

## Create a token

### Scopes

#### Details
`,
	"getting-started/faq.md": `---
title: FAQ
---
Questions.
`,
	"getting-started/meta.json": `{"title": "Start", "pages": ["quickstart", "---Help---", "..."]}`,
	"rest-api/v2/overview.mdx": `---
title: REST API v2
---
`,
	"rest-api/v1/overview.mdx": `---
title: REST API v1
---
`,
	"_drafts/secret.mdx": `---
title: Draft
---
`,
	"notes.txt": "ignored",
}

func newDocsLoader(t *testing.T, files test.Files) *content.Loader {
	t.Helper()
	helper := test.New(t)
	dir := helper.WriteFiles(files)

	log, _ := test.NewLogger()
	col := &config.Collection{Name: "docs", BaseURL: "/docs", Dir: dir, Label: "Documentation"}
	loader, err := content.NewLoader(context.Background(), col, dir, icon.NewDefaultRegistry(), log.WithContext(context.Background()))
	helper.Must(err)
	return loader
}

func TestLoader_Page(t *testing.T) {
	loader := newDocsLoader(t, docsFixture)

	tests := []struct {
		name    string
		slugs   []string
		wantURL string
		wantOK  bool
	}{
		{"root index", nil, "/docs", true},
		{"folder index", []string{"getting-started"}, "/docs/getting-started", true},
		{"page", []string{"getting-started", "quickstart"}, "/docs/getting-started/quickstart", true},
		{"md page", []string{"getting-started", "faq"}, "/docs/getting-started/faq", true},
		{"miss", []string{"getting-started", "missing"}, "", false},
		{"underscore dir", []string{"_drafts", "secret"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(subT *testing.T) {
			p, ok := loader.Page(tt.slugs)
			if ok != tt.wantOK {
				subT.Fatalf("want found=%v, got %v", tt.wantOK, ok)
			}
			if ok && p.URL != tt.wantURL {
				subT.Errorf("want url %q, got %q", tt.wantURL, p.URL)
			}
		})
	}

	if _, ok := loader.PageByURL("/docs/getting-started/quickstart/"); !ok {
		t.Error("expected lookup by url")
	}
	if _, ok := loader.PageByURL("/docsx/getting-started"); ok {
		t.Error("expected no page outside the base url")
	}
	if got := len(loader.Params()); got != 6 {
		t.Errorf("want 6 params, got %d", got)
	}
}

func TestLoader_PageData(t *testing.T) {
	loader := newDocsLoader(t, docsFixture)

	p, _ := loader.Page([]string{"getting-started", "quickstart"})
	if !p.LastModified.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected last modified: %v", p.LastModified)
	}
	if p.Path != "getting-started/quickstart.mdx" || p.Category() != "getting-started" {
		t.Errorf("unexpected path or category: %q %q", p.Path, p.Category())
	}

	wantTOC := []content.TOCItem{
		{Depth: 2, Title: "Create a token", URL: "#create-a-token"},
		{Depth: 3, Title: "Scopes", URL: "#scopes"},
		{Depth: 4, Title: "Details", URL: "#details"},
	}
	if diff := cmp.Diff(wantTOC, p.TOC); diff != "" {
		t.Error(diff)
	}

	index, _ := loader.Page([]string{"getting-started"})
	if !index.Index || index.Icon.Value != "lucide:rocket" {
		t.Errorf("unexpected index page data: %#v", index)
	}

	processed, err := index.Text(content.TextProcessed)
	if err != nil {
		t.Fatal(err)
	}
	want := "Intro text.\n\n\n\n## Authentication\n\n```ts\nimport { x } from \"y\";\n{/* kept */}\n```\n"
	if diff := cmp.Diff(want, processed); diff != "" {
		t.Error(diff)
	}

	raw, err := index.Text(content.TextRaw)
	if err != nil || raw != docsFixture["getting-started/index.mdx"] {
		t.Errorf("expected the raw file content, got %q (%v)", raw, err)
	}
}

func TestLoader_Tree(t *testing.T) {
	loader := newDocsLoader(t, docsFixture)
	tree := loader.Tree()

	if tree.Name != "Documentation" || tree.Index == nil || tree.Index.Name != "Welcome" {
		t.Fatalf("unexpected root: %#v", tree)
	}

	var names []string
	for _, child := range tree.Children {
		names = append(names, child.Name)
	}
	if diff := cmp.Diff([]string{"Start", "Rest Api"}, names); diff != "" {
		t.Error(diff)
	}

	start := tree.Children[0]
	var startChildren []string
	for _, child := range start.Children {
		startChildren = append(startChildren, string(child.Type)+":"+child.Name)
	}
	want := []string{"page:Quickstart", "separator:Help", "page:FAQ"}
	if diff := cmp.Diff(want, startChildren); diff != "" {
		t.Error(diff)
	}
	if start.Icon != "lucide:rocket" || start.URL != "/docs/getting-started" {
		t.Errorf("expected folder data from the index page: %#v", start)
	}

	siblings := loader.Siblings([]string{"getting-started", "quickstart"})
	if len(siblings) != 1 || siblings[0].Name != "FAQ" {
		t.Errorf("unexpected siblings: %#v", siblings)
	}
	if loader.Siblings([]string{"nope"}) != nil {
		t.Error("expected no siblings for a missing page")
	}

	nameMap := loader.NameMap()
	if nameMap["/docs/getting-started/faq"] != "FAQ" || nameMap["/docs"] != "Welcome" || nameMap["/docs/getting-started"] != "Start" {
		t.Errorf("unexpected name map: %#v", nameMap)
	}
}

func TestLoader_Errors(t *testing.T) {
	log, _ := test.NewLogger()
	entry := log.WithContext(context.Background())

	tests := []struct {
		name    string
		files   test.Files
		wantErr string
	}{
		{"invalid frontmatter", test.Files{"a.mdx": "---\ntitle: [broken\n---\n"}, "a.mdx: content error: invalid frontmatter"},
		{"missing title", test.Files{"a.mdx": "# no frontmatter\n"}, "a.mdx: content error: missing title in frontmatter"},
		{"invalid meta", test.Files{"meta.json": "{", "a.mdx": "---\ntitle: A\n---\n"}, "meta.json: content error: invalid meta file"},
		{"duplicate url", test.Files{"a.mdx": "---\ntitle: A\n---\n", "a/index.mdx": "---\ntitle: A2\n---\n"}, "duplicate page url /docs/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(subT *testing.T) {
			dir := test.New(subT).WriteFiles(tt.files)
			col := &config.Collection{Name: "docs", BaseURL: "/docs", Dir: dir}
			_, err := content.NewLoader(context.Background(), col, dir, nil, entry)
			if err == nil {
				subT.Fatal("expected an error")
			}
			if got := err.Error(); !strings.Contains(got, tt.wantErr) {
				subT.Errorf("want error containing %q, got %q", tt.wantErr, got)
			}
		})
	}
}

func TestLoader_OptionalCollection(t *testing.T) {
	log, hook := test.NewLogger()
	dir := filepath.Join(t.TempDir(), "blog")

	col := &config.Collection{Name: "blog", BaseURL: "/blog", Dir: dir, Optional: true}
	loader, err := content.NewLoader(context.Background(), col, dir, nil, log.WithContext(context.Background()))
	if err != nil {
		t.Fatal(err)
	}
	if len(loader.Pages()) != 0 || loader.Tree() == nil {
		t.Error("expected an empty collection")
	}
	if len(hook.AllEntries()) == 0 {
		t.Error("expected a warning")
	}

	col.Optional = false
	if _, err = content.NewLoader(context.Background(), col, dir, nil, log.WithContext(context.Background())); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

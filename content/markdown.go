package content

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var mdxCommentRegex = regexp.MustCompile(`(?s)\{/\*.*?\*/\}`)

// processMarkdown removes mdx import/export statements and {/* */} comments
// outside of fenced code blocks.
func processMarkdown(body string) string {
	var (
		out     strings.Builder
		chunk   []string
		fence   string
		inESM   bool
		flushFn = func() {
			if len(chunk) == 0 {
				return
			}
			out.WriteString(mdxCommentRegex.ReplaceAllString(strings.Join(chunk, ""), ""))
			chunk = chunk[:0]
		}
	)

	for _, line := range strings.SplitAfter(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			out.WriteString(line)
			if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "" {
				fence = ""
			}
			continue
		}

		if marker := fenceMarker(trimmed); marker != "" {
			flushFn()
			fence = marker
			out.WriteString(line)
			continue
		}

		if inESM {
			if trimmed == "" {
				inESM = false
			}
			continue
		}

		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ") {
			inESM = true
			continue
		}

		chunk = append(chunk, line)
	}
	flushFn()

	return strings.TrimLeft(out.String(), "\n")
}

// fenceMarker returns the opening fence of a code block line.
func fenceMarker(trimmed string) string {
	for _, c := range []string{"`", "~"} {
		n := 0
		for n < len(trimmed) && trimmed[n] == c[0] {
			n++
		}
		if n >= 3 {
			return trimmed[:n]
		}
	}
	return ""
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// tableOfContents lists all headings with their generated anchors.
func tableOfContents(source []byte) []TOCItem {
	ctx := parser.NewContext()
	doc := markdown.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	var toc []TOCItem
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		idVal, found := heading.AttributeString("id")
		if !found {
			return ast.WalkSkipChildren, nil
		}
		id, _ := idVal.([]byte)

		toc = append(toc, TOCItem{
			Depth: heading.Level,
			Title: headingText(heading, source),
			URL:   "#" + string(id),
		})
		return ast.WalkSkipChildren, nil
	})
	return toc
}

func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

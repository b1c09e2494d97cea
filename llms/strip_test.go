package llms

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestStripComponents(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "# Title\n\nText.", "# Title\n\nText."},
		{"warning callout", `<Callout type="warning">Be careful</Callout>`, "> [WARNING] Be careful"},
		{"error callout", `<Callout title="x" type="error">  <b>Broken</b> </Callout>`, "> [ERROR] Broken"},
		{"info callout", "<Callout type=\"info\">\nSee the docs.\n</Callout>", "> [INFO] See the docs."},
		{"unknown callout type", `<Callout type="success">Done</Callout>`, "> Done"},
		{"untyped callout", `<Callout>Note this</Callout>`, "> Note this"},
		{"empty callout", "before\n\n<Callout type=\"warning\">  </Callout>\n\nafter", "before\n\nafter"},
		{"tags keep code", "<Tabs>\n```tsx\n<Button />\n```\n</Tabs>", "```tsx\n<Button />\n```"},
		{"inline tags", `Use <Badge color="red">beta</Badge> features.`, "Use beta features."},
		{"newlines", "a\n\n\n\n<Br />\n\n\nb", "a\n\nb"},
		{"code newlines kept", "```\na\n\n\n\nb\n```", "```\na\n\n\n\nb\n```"},
		{
			"default tab",
			"<CodeBlockTabs defaultValue=\"go\">\n<CodeBlockTabsList>\n<CodeBlockTabsTrigger value=\"ts\">TS</CodeBlockTabsTrigger>\n</CodeBlockTabsList>\n" +
				"<CodeBlockTab value=\"ts\">\n```ts\nts()\n```\n</CodeBlockTab>\n<CodeBlockTab value=\"go\">\n```go\ngo()\n```\n</CodeBlockTab>\n</CodeBlockTabs>",
			"```go\ngo()\n```",
		},
		{
			"first tab",
			"<CodeBlockTabs>\n<CodeBlockTab value=\"ts\">\n```ts\nts()\n```\n</CodeBlockTab>\n<CodeBlockTab value=\"go\">\n```go\ngo()\n```\n</CodeBlockTab>\n</CodeBlockTabs>",
			"```ts\nts()\n```",
		},
		{
			"unmatched default tab",
			"<CodeBlockTabs defaultValue=\"py\"><CodeBlockTab value=\"sh\">\n```sh\nls\n```\n</CodeBlockTab></CodeBlockTabs>",
			"```sh\nls\n```",
		},
		{"tab without code", "<CodeBlockTabs><CodeBlockTab value=\"x\">text</CodeBlockTab></CodeBlockTabs>end", "end"},
		{"stray tab", "<CodeBlockTab value=\"x\">\n```js\nx\n```\n</CodeBlockTab>", "```js\nx\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(subT *testing.T) {
			if got := StripComponents(tt.in); got != tt.want {
				subT.Errorf("want:\n%q\ngot:\n%q", tt.want, got)
			}
		})
	}
}

func TestStripComponents_KeepsCodeBlocks(t *testing.T) {
	word := rapid.StringMatching(`[a-z]{1,8}`)
	code := rapid.StringMatching(`[a-zA-Z0-9 <>/="{}()\n]{0,40}`)

	rapid.Check(t, func(t *rapid.T) {
		var (
			doc    strings.Builder
			blocks []string
		)

		n := rapid.IntRange(1, 8).Draw(t, "fragments")
		for i := 0; i < n; i++ {
			block := "```" + word.Draw(t, "lang") + "\n" + code.Draw(t, "code") + "\n```"
			switch rapid.IntRange(0, 3).Draw(t, "kind") {
			case 0:
				doc.WriteString(word.Draw(t, "text") + "\n\n")
			case 1:
				doc.WriteString(block + "\n\n")
				blocks = append(blocks, block)
			case 2:
				doc.WriteString(`<Callout type="info">` + word.Draw(t, "text") + "\n" + block + "</Callout>\n\n")
				blocks = append(blocks, block)
			case 3:
				doc.WriteString(`<Steps><Step>` + word.Draw(t, "text") + "</Step></Steps>\n" + block + "\n")
				blocks = append(blocks, block)
			}
		}

		out := StripComponents(doc.String())
		got := codeBlockRegex.FindAllString(out, -1)
		if len(got) != len(blocks) {
			t.Fatalf("want %d code blocks, got %d in:\n%s", len(blocks), len(got), out)
		}
		for i, block := range blocks {
			if got[i] != block {
				t.Fatalf("code block %d: want %q, got %q", i, block, got[i])
			}
		}
		if strings.Contains(out, "__CODE_BLOCK_") {
			t.Fatalf("placeholder left in:\n%s", out)
		}
	})
}

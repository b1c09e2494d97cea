package llms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	codeBlockRegex    = regexp.MustCompile("(?s)```.*?```")
	placeholderRegex  = regexp.MustCompile(`__CODE_BLOCK_(\d+)__`)
	typedCalloutRegex = regexp.MustCompile(`(?is)<Callout[^>]*type="([^"]*)"[^>]*>(.*?)</Callout>`)
	calloutRegex      = regexp.MustCompile(`(?is)<Callout[^>]*>(.*?)</Callout>`)
	tabsRegex         = regexp.MustCompile(`(?is)<CodeBlockTabs(\s[^>]*)?>(.*?)</CodeBlockTabs>`)
	tabRegex          = regexp.MustCompile(`(?is)<CodeBlockTab(\s[^>]*)?>(.*?)</CodeBlockTab>`)
	tabsListRegex     = regexp.MustCompile(`(?is)<CodeBlockTabsList[^>]*>.*?</CodeBlockTabsList>`)
	tabsTriggerRegex  = regexp.MustCompile(`(?is)<CodeBlockTabsTrigger[^>]*>.*?</CodeBlockTabsTrigger>`)
	defaultValueRegex = regexp.MustCompile(`defaultValue="([^"]*)"`)
	valueRegex        = regexp.MustCompile(`(?:^|\s)value="([^"]*)"`)
	anyTagRegex       = regexp.MustCompile(`<[^>]+>`)
	componentTagRegex = regexp.MustCompile(`<[^_>][^>]*>`)
	newlinesRegex     = regexp.MustCompile(`\n{3,}`)
)

var calloutPrefixes = map[string]string{
	"warning": "[WARNING] ",
	"error":   "[ERROR] ",
	"info":    "[INFO] ",
}

// StripComponents turns mdx into plain markdown. Fenced code blocks are
// kept byte for byte, callouts become blockquotes and code block tabs are
// reduced to the code of their default tab.
func StripComponents(text string) string {
	var blocks []string
	text = codeBlockRegex.ReplaceAllStringFunc(text, func(block string) string {
		blocks = append(blocks, block)
		return placeholder(len(blocks) - 1)
	})

	text = typedCalloutRegex.ReplaceAllStringFunc(text, func(match string) string {
		m := typedCalloutRegex.FindStringSubmatch(match)
		return blockquote(calloutPrefixes[m[1]], m[2])
	})
	text = calloutRegex.ReplaceAllStringFunc(text, func(match string) string {
		return blockquote("", calloutRegex.FindStringSubmatch(match)[1])
	})

	text = tabsRegex.ReplaceAllStringFunc(text, func(match string) string {
		m := tabsRegex.FindStringSubmatch(match)
		return selectTab(m[1], m[2])
	})
	text = tabsListRegex.ReplaceAllString(text, "")
	text = tabsTriggerRegex.ReplaceAllString(text, "")
	text = tabRegex.ReplaceAllStringFunc(text, func(match string) string {
		return placeholderRegex.FindString(tabRegex.FindStringSubmatch(match)[2])
	})

	text = componentTagRegex.ReplaceAllString(text, "")
	text = newlinesRegex.ReplaceAllString(text, "\n\n")

	text = placeholderRegex.ReplaceAllStringFunc(text, func(p string) string {
		n, err := strconv.Atoi(placeholderRegex.FindStringSubmatch(p)[1])
		if err != nil || n >= len(blocks) {
			return p
		}
		return blocks[n]
	})

	return strings.TrimSpace(text)
}

func placeholder(n int) string {
	return fmt.Sprintf("__CODE_BLOCK_%d__", n)
}

func blockquote(prefix, content string) string {
	content = strings.TrimSpace(anyTagRegex.ReplaceAllString(content, ""))
	if content == "" {
		return ""
	}
	return "> " + prefix + content
}

// selectTab returns the code placeholder of the default tab, or of the
// first tab if no default is set or matches.
func selectTab(attrs, inner string) string {
	tabs := tabRegex.FindAllStringSubmatch(inner, -1)
	if len(tabs) == 0 {
		return ""
	}

	chosen := tabs[0]
	if m := defaultValueRegex.FindStringSubmatch(attrs); m != nil {
		for _, tab := range tabs {
			if v := valueRegex.FindStringSubmatch(tab[1]); v != nil && v[1] == m[1] {
				chosen = tab
				break
			}
		}
	}
	return placeholderRegex.FindString(chosen[2])
}

package content

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Frontmatter struct {
	Description  string    `yaml:"description"`
	Full         bool      `yaml:"full"`
	Icon         string    `yaml:"icon"`
	Index        bool      `yaml:"index"`
	LastModified Timestamp `yaml:"lastModified"`
	Title        string    `yaml:"title"`
}

// Timestamp accepts dates with or without a time part.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	value := strings.TrimSpace(node.Value)
	if value == "" {
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

var (
	byteOrderMark        = []byte("\xef\xbb\xbf")
	frontmatterDelimiter = []byte("---")
)

// splitFrontmatter returns the yaml frontmatter and the remaining body.
// A document without a leading delimiter has no frontmatter.
func splitFrontmatter(src []byte) (fm []byte, body []byte) {
	src = bytes.TrimPrefix(src, byteOrderMark)
	lines := bytes.SplitAfter(src, []byte("\n"))
	if len(lines) == 0 || !isDelimiter(lines[0]) {
		return nil, src
	}

	offset := len(lines[0])
	for _, line := range lines[1:] {
		if isDelimiter(line) {
			return src[len(lines[0]):offset], src[offset+len(line):]
		}
		offset += len(line)
	}
	return nil, src
}

func isDelimiter(line []byte) bool {
	return bytes.Equal(bytes.TrimSpace(line), frontmatterDelimiter)
}

func parseFrontmatter(src []byte) (*Frontmatter, []byte, error) {
	fm, body := splitFrontmatter(src)
	result := &Frontmatter{}
	if len(bytes.TrimSpace(fm)) == 0 {
		return result, body, nil
	}
	if err := yaml.Unmarshal(fm, result); err != nil {
		return nil, nil, err
	}
	return result, body, nil
}

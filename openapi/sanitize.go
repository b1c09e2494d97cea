package openapi

import (
	"fmt"
	"strings"
)

// sanitizedKeys are the string fields whose single newlines get collapsed.
var sanitizedKeys = map[string]struct{}{
	"description": {},
	"summary":     {},
}

// Sanitize walks a decoded yaml tree and collapses the single newlines of all
// description and summary strings at any depth. Mapping keys are converted to
// strings so that the result can be encoded as json. The input is not modified.
func Sanitize(node interface{}) interface{} {
	switch n := node.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(n))
		for k, v := range n {
			result[k] = sanitizeField(k, v)
		}
		return result
	case map[interface{}]interface{}:
		result := make(map[string]interface{}, len(n))
		for k, v := range n {
			key := fmt.Sprint(k)
			result[key] = sanitizeField(key, v)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(n))
		for i, v := range n {
			result[i] = Sanitize(v)
		}
		return result
	default:
		return node
	}
}

func sanitizeField(key string, value interface{}) interface{} {
	if s, ok := value.(string); ok {
		if _, exist := sanitizedKeys[key]; exist {
			return CollapseNewlines(s)
		}
		return s
	}
	return Sanitize(value)
}

// CollapseNewlines replaces every newline which is neither preceded nor
// followed by another newline with a space. Paragraph breaks are kept.
func CollapseNewlines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}

	b := []byte(s)
	for i, c := range b {
		if c != '\n' {
			continue
		}
		if i > 0 && s[i-1] == '\n' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '\n' {
			continue
		}
		b[i] = ' '
	}
	return string(b)
}

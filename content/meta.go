package content

import (
	"encoding/json"
	"os"
	"strings"
)

const metaFilename = "meta.json"

// Meta configures a folder of the page tree.
type Meta struct {
	DefaultOpen bool     `json:"defaultOpen"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Pages       []string `json:"pages"`
	Root        bool     `json:"root"`
	Title       string   `json:"title"`
}

func readMeta(filename string) (*Meta, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	meta := &Meta{}
	if err = json.Unmarshal(b, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

const restItems = "..."

// separatorLabel returns the label of a "---Label---" pages item.
func separatorLabel(item string) (string, bool) {
	if len(item) < 6 || !strings.HasPrefix(item, "---") || !strings.HasSuffix(item, "---") {
		return "", false
	}
	return strings.TrimSpace(item[3 : len(item)-3]), true
}

// Package icon resolves the icon identifiers of pages and folders.
// An identifier is either an emoji which is used as is or the name of a
// registered icon factory.
package icon

import (
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

type Kind uint8

const (
	None Kind = iota
	Emoji
	Named
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Emoji:
		return "emoji"
	case Named:
		return "named"
	case Unknown:
		return "unknown"
	default:
		return "none"
	}
}

// Icon is a renderable icon reference.
type Icon struct {
	Kind  Kind   `json:"kind"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

func (i Icon) Known() bool {
	return i.Kind == Emoji || i.Kind == Named
}

type Factory func() Icon

type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry returns a registry with the lucide icons used by the portal content.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range lucideNames {
		r.Register(name, Lucide(name))
	}
	return r
}

func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve never fails: an empty identifier results in None and
// an unregistered name in Unknown.
func (r *Registry) Resolve(id string) Icon {
	id = strings.TrimSpace(id)
	if id == "" {
		return Icon{Kind: None}
	}

	if IsEmoji(id) {
		return Icon{Kind: Emoji, Value: id}
	}

	r.mu.RLock()
	factory, exist := r.factories[id]
	r.mu.RUnlock()
	if !exist {
		return Icon{Kind: Unknown, Name: id}
	}
	return factory()
}

// IsEmoji reports whether s starts with a pictograph of the
// Misc Symbols and Pictographs to Supplemental Symbols blocks.
func IsEmoji(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r >= 0x1F300 && r <= 0x1F9FF
}

// Lucide returns a factory referencing the lucide icon with the given PascalCase name.
func Lucide(name string) Factory {
	value := "lucide:" + kebab(name)
	return func() Icon {
		return Icon{Kind: Named, Name: name, Value: value}
	}
}

func kebab(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) || (unicode.IsDigit(r) && i > 0 && !unicode.IsDigit(rune(name[i-1]))) {
			if i > 0 {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

var lucideNames = []string{
	"Activity", "AlertTriangle", "Book", "BookOpen", "Bot", "Boxes", "Braces",
	"Briefcase", "Building", "Calendar", "Check", "CircleHelp", "ClipboardList",
	"Cloud", "Code", "Cog", "Database", "FileCode", "FileJson", "FileText",
	"Folder", "GitBranch", "Globe", "Hammer", "Home", "Info", "Key", "KeyRound",
	"Layers", "LayoutDashboard", "Link", "List", "Lock", "Mail", "Map", "Network",
	"Newspaper", "Package", "Plug", "Puzzle", "RefreshCw", "Rocket", "Search",
	"Send", "Server", "Settings", "Shield", "ShieldCheck", "Sparkles", "Terminal",
	"Users", "Wrench", "Webhook", "Workflow", "Zap",
}

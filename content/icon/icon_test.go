package icon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_Resolve(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register("Logo", func() Icon {
		return Icon{Kind: Named, Name: "Logo", Value: "/img/logo.svg"}
	})

	tests := []struct {
		name string
		id   string
		want Icon
	}{
		{"empty", "", Icon{Kind: None}},
		{"blank", "  ", Icon{Kind: None}},
		{"emoji", "🚀", Icon{Kind: Emoji, Value: "🚀"}},
		{"emoji with text", "📦 Packages", Icon{Kind: Emoji, Value: "📦 Packages"}},
		{"lucide", "BookOpen", Icon{Kind: Named, Name: "BookOpen", Value: "lucide:book-open"}},
		{"lucide single word", "Settings", Icon{Kind: Named, Name: "Settings", Value: "lucide:settings"}},
		{"custom", "Logo", Icon{Kind: Named, Name: "Logo", Value: "/img/logo.svg"}},
		{"unknown", "NotAnIcon", Icon{Kind: Unknown, Name: "NotAnIcon"}},
		{"outside emoji range", "★", Icon{Kind: Unknown, Name: "★"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(subT *testing.T) {
			got := r.Resolve(tt.id)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				subT.Error(diff)
			}
		})
	}
}

func TestKebab(t *testing.T) {
	for in, want := range map[string]string{
		"Book":          "book",
		"AlertTriangle": "alert-triangle",
		"RefreshCw":     "refresh-cw",
		"Heading1":      "heading-1",
	} {
		if got := kebab(in); got != want {
			t.Errorf("kebab(%q) want %q, got %q", in, want, got)
		}
	}
}

func TestKind_Known(t *testing.T) {
	if (Icon{Kind: Unknown}).Known() || (Icon{Kind: None}).Known() {
		t.Error("expected unknown and none to be unresolved")
	}
	if !(Icon{Kind: Emoji}).Known() {
		t.Error("expected emoji to be resolved")
	}
}

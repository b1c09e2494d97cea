package utils_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fieldnation/devportal/utils"
)

func TestUtils_JoinURL(t *testing.T) {
	tests := []struct {
		elements []string
		want     string
	}{
		{[]string{"/", "/", "/"}, "/"},
		{[]string{}, "/"},
		{[]string{"docs", "getting-started"}, "/docs/getting-started"},
		{[]string{"/docs/", "/intro/"}, "/docs/intro"},
		{[]string{"/api-references", ""}, "/api-references"},
	}

	for _, tt := range tests {
		if p := utils.JoinURL(tt.elements...); p != tt.want {
			t.Errorf("JoinURL(%q): want %q, got %q", tt.elements, tt.want, p)
		}
	}
}

func TestUtils_SplitURL(t *testing.T) {
	got := utils.SplitURL("//docs/rest-api//v2/")
	if diff := cmp.Diff([]string{"docs", "rest-api", "v2"}, got); diff != "" {
		t.Error(diff)
	}
	if got = utils.SplitURL("/"); got != nil {
		t.Errorf("expected nil segments, got %q", got)
	}
}

func TestUtils_WithBasePath(t *testing.T) {
	if p := utils.WithBasePath("", "/docs"); p != "/docs" {
		t.Errorf("unexpected path %q", p)
	}
	if p := utils.WithBasePath("/portal/", "/docs"); p != "/portal/docs" {
		t.Errorf("unexpected path %q", p)
	}
}

package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pagesWithSlugs(slugs ...[]string) []*Page {
	var pages []*Page
	for _, s := range slugs {
		pages = append(pages, NewPage(Page{Slugs: s}, nil))
	}
	return pages
}

func TestDiscoverVersions(t *testing.T) {
	docs := pagesWithSlugs(
		[]string{"rest-api", "v1", "introduction"},
		[]string{"getting-started", "v9"},
		[]string{"webhooks", "v3", "events"},
		[]string{"rest-api"},
	)
	refs := pagesWithSlugs(
		[]string{"rest-api", "v2", "work-orders", "get"},
		[]string{"rest-api", "v10", "index"},
		[]string{"rest-api", "beta", "x"},
		[]string{"rest-api", "v2"},
	)

	got := DiscoverVersions(DefaultVersionedSections, docs, refs)
	want := Versions{
		"rest-api": {"v10", "v2", "v1"},
		"webhooks": {"v3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}

	if latest, ok := got.Latest("rest-api"); !ok || latest != "v10" {
		t.Errorf("want latest v10, got %q", latest)
	}
}

func TestDiscoverVersions_Empty(t *testing.T) {
	got := DiscoverVersions(DefaultVersionedSections)
	want := Versions{"rest-api": {}, "webhooks": {}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if _, ok := got.Latest("webhooks"); ok {
		t.Error("expected no latest version")
	}
}

func TestDiscoverVersions_Scenario(t *testing.T) {
	pages := pagesWithSlugs(
		[]string{"rest-api", "v2", "a"},
		[]string{"rest-api", "v1", "b"},
		[]string{"webhooks", "v3", "c"},
	)
	want := Versions{"rest-api": {"v2", "v1"}, "webhooks": {"v3"}}
	if diff := cmp.Diff(want, DiscoverVersions(DefaultVersionedSections, pages)); diff != "" {
		t.Error(diff)
	}
}

func TestSortVersions(t *testing.T) {
	list := []string{"v01", "v2", "v10", "v1", "v001"}
	SortVersions(list)

	want := []string{"v10", "v2", "v001", "v01", "v1"}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Error(diff)
	}
}

package content

import (
	"regexp"
	"sort"
	"strconv"
)

var versionRegex = regexp.MustCompile(`^v(\d+)$`)

// DefaultVersionedSections are always part of the discovered versions.
var DefaultVersionedSections = []string{"rest-api", "webhooks"}

// Versions maps a section, the first slug segment, to its versions sorted descending.
type Versions map[string][]string

// DiscoverVersions scans the second slug segment of all pages within the
// given sections for version names like v2.
func DiscoverVersions(sections []string, pages ...[]*Page) Versions {
	found := make(map[string]map[string]struct{}, len(sections))
	for _, section := range sections {
		found[section] = make(map[string]struct{})
	}

	for _, list := range pages {
		for _, p := range list {
			if len(p.Slugs) < 2 {
				continue
			}
			set, exist := found[p.Slugs[0]]
			if !exist || !versionRegex.MatchString(p.Slugs[1]) {
				continue
			}
			set[p.Slugs[1]] = struct{}{}
		}
	}

	result := make(Versions, len(found))
	for section, set := range found {
		list := make([]string, 0, len(set))
		for v := range set {
			list = append(list, v)
		}
		SortVersions(list)
		result[section] = list
	}
	return result
}

// SortVersions sorts version names numerically descending, v10 before v9.
func SortVersions(list []string) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := versionNumber(list[i]), versionNumber(list[j])
		if a != b {
			return a > b
		}
		return list[i] < list[j]
	})
}

func versionNumber(v string) int {
	m := versionRegex.FindStringSubmatch(v)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}

// Latest returns the highest version of a section.
func (v Versions) Latest(section string) (string, bool) {
	list := v[section]
	if len(list) == 0 {
		return "", false
	}
	return list[0], true
}

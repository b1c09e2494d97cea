package utils

import (
	"path"
	"strings"
)

// JoinURL joins url path elements and always returns an absolute path
// without a trailing slash, except for the root itself.
func JoinURL(elements ...string) string {
	p := path.Join(append([]string{"/"}, elements...)...)
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// SplitURL returns the non-empty segments of the given url path.
func SplitURL(urlPath string) []string {
	var segments []string
	for _, s := range strings.Split(urlPath, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// WithBasePath prefixes the url path with a static hosting base path.
func WithBasePath(basePath, urlPath string) string {
	if basePath == "" || basePath == "/" {
		return urlPath
	}
	return JoinURL(basePath, urlPath)
}

package generate

import (
	"regexp"
	"strings"

	"github.com/fieldnation/devportal/config"
)

var (
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	unsafeCharsRegex = regexp.MustCompile(`[^a-z0-9-]`)
	versionRegex     = regexp.MustCompile(`(?:^|[/_.-])(v\d+)(?:[/_.-]|$)`)
)

// Sanitize turns s into a file system safe path segment.
func Sanitize(s string) string {
	s = strings.ToLower(s)
	s = whitespaceRegex.ReplaceAllString(s, "-")
	return unsafeCharsRegex.ReplaceAllString(s, "")
}

// DetermineFamily derives the api family from the schema id and the operation path.
func DetermineFamily(schemaID, path string) string {
	if strings.Contains(schemaID, "rest") || strings.Contains(schemaID, "v2") || strings.Contains(path, "/rest/") {
		return config.FamilyREST
	}
	if strings.Contains(schemaID, "webhook") || strings.Contains(schemaID, "v3") || strings.Contains(path, "/webhook") {
		return config.FamilyWebhook
	}
	return config.FamilyREST
}

// FamilyRoot is the content folder of an api family.
func FamilyRoot(family string) string {
	if family == config.FamilyWebhook {
		return "webhooks"
	}
	return "rest-api"
}

// PrimaryTag returns the first tag or "api".
func PrimaryTag(tags []string) string {
	if len(tags) == 0 || tags[0] == "" {
		return "api"
	}
	return tags[0]
}

// CleanTag removes the family specific prefix of a tag.
func CleanTag(tag, family string, prefixes map[string]string) string {
	if prefix, ok := prefixes[family]; ok && prefix != "" && strings.HasPrefix(tag, prefix) {
		return strings.TrimPrefix(tag, prefix)
	}
	return tag
}

// TagSegment is the sanitized tag folder, "api" if nothing file system safe is left.
func TagSegment(tag string) string {
	if segment := Sanitize(tag); segment != "" {
		return segment
	}
	return "api"
}

// OperationID sanitizes a declared operation id. Without one, if it just
// repeats the path or if nothing of it survives the sanitizing, the id is
// derived from the last path segment and the method.
func OperationID(operationID, path, method string) string {
	if operationID != "" && operationID != path {
		if id := Sanitize(operationID); id != "" {
			return id
		}
	}

	segment := ""
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) > 0 {
		segment = Sanitize(parts[len(parts)-1])
	}
	if segment == "" {
		segment = "endpoint"
	}
	return segment + "-" + strings.ToLower(method)
}

// WebhookSegment is the file name of a webhook page.
func WebhookSegment(name, method string) string {
	if segment := Sanitize(name); segment != "" {
		return segment
	}
	return "webhook-" + strings.ToLower(method)
}

// ResolveVersion prefers the configured version, then a v<n> segment of
// the schema id, then the major number of the info version.
func ResolveVersion(configured, schemaID, infoVersion string) string {
	if configured != "" {
		return configured
	}
	if m := versionRegex.FindStringSubmatch(schemaID); m != nil {
		return m[1]
	}
	major := strings.TrimPrefix(strings.TrimSpace(infoVersion), "v")
	if idx := strings.IndexAny(major, ".-+"); idx > -1 {
		major = major[:idx]
	}
	if major != "" && strings.Trim(major, "0123456789") == "" {
		return "v" + major
	}
	return "v1"
}

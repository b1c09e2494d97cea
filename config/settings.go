package config

import "strings"

const (
	BuildIDFormatCommon = "common"
	BuildIDFormatUUID4  = "uuid4"
)

var DefaultSettings = Settings{
	BuildIDFormat: BuildIDFormatCommon,
	GitHubBranch:  "main",
	LogFormat:     "common",
	LogLevel:      "info",
	ServeAddr:     ":3030",
	SiteURL:       "https://developers.fieldnation.com",
}

type Settings struct {
	BasePath       string `hcl:"base_path,optional"`
	BuildIDFormat  string `hcl:"build_id_format,optional"`
	GitHubBranch   string `hcl:"github_branch,optional"`
	GitHubRepo     string `hcl:"github_repo,optional"`
	LogFormat      string `hcl:"log_format,optional"`
	LogLevel       string `hcl:"log_level,optional"`
	LogPretty      bool   `hcl:"log_pretty,optional"`
	MetricsFile    string `hcl:"metrics_file,optional"`
	ServeAddr      string `hcl:"serve_addr,optional"`
	SiteURL        string `hcl:"site_url,optional"`
	Traces         bool   `hcl:"traces,optional"`
	TracesEndpoint string `hcl:"traces_endpoint,optional"`
}

// siteEnvironment maps the plain deployment variables to their settings.
var siteEnvironment = []struct {
	names []string
	apply func(s *Settings, v string)
	value func(s *Settings) string
}{
	{[]string{"GITHUB_REPO"}, func(s *Settings, v string) { s.GitHubRepo = v }, func(s *Settings) string { return s.GitHubRepo }},
	{[]string{"GITHUB_BRANCH"}, func(s *Settings, v string) { s.GitHubBranch = v }, func(s *Settings) string { return s.GitHubBranch }},
	{[]string{"SITE_URL", "NEXT_PUBLIC_SITE_URL"}, func(s *Settings, v string) { s.SiteURL = v }, func(s *Settings) string { return s.SiteURL }},
	{[]string{"BASE_PATH", "NEXT_PUBLIC_BASE_PATH"}, func(s *Settings, v string) { s.BasePath = v }, func(s *Settings) string { return s.BasePath }},
}

// ApplyEnvironment fills settings which are still at their default value
// from the plain (unprefixed) deployment environment variables.
func (s *Settings) ApplyEnvironment(lookup func(string) (string, bool)) {
	for _, e := range siteEnvironment {
		current := e.value(s)
		if current != "" && current != e.value(&DefaultSettings) {
			continue
		}
		for _, name := range e.names {
			if v, ok := lookup(name); ok && v != "" {
				e.apply(s, v)
				break
			}
		}
	}
}

// BaseSiteURL returns the site url without a trailing slash.
func (s *Settings) BaseSiteURL() string {
	return strings.TrimSuffix(s.SiteURL, "/")
}

// Merge sets all empty fields of s to the values of defaults.
func (s *Settings) Merge(defaults Settings) {
	if s.BuildIDFormat == "" {
		s.BuildIDFormat = defaults.BuildIDFormat
	}
	if s.GitHubBranch == "" {
		s.GitHubBranch = defaults.GitHubBranch
	}
	if s.LogFormat == "" {
		s.LogFormat = defaults.LogFormat
	}
	if s.LogLevel == "" {
		s.LogLevel = defaults.LogLevel
	}
	if s.ServeAddr == "" {
		s.ServeAddr = defaults.ServeAddr
	}
	if s.SiteURL == "" {
		s.SiteURL = defaults.SiteURL
	}
}

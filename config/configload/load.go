package configload

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/env"
	"github.com/fieldnation/devportal/errors"
)

// DefaultsFilename names the embedded configuration in diagnostics.
const DefaultsFilename = "defaults.hcl"

//go:embed defaults.hcl
var defaultsHCL []byte

// LoadFile reads the configuration file and resolves relative paths against its directory.
func LoadFile(filePath, environment string) (*config.Portal, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	body, _, err := parseFile(absPath)
	if err != nil {
		return nil, err
	}

	portal, err := LoadConfig(body, environment)
	if err != nil {
		return nil, err
	}
	portal.Filename = filepath.Base(absPath)
	portal.WorkDir = filepath.Dir(absPath)
	return portal, nil
}

// LoadDefaults returns the built-in site layout relative to the current working directory.
func LoadDefaults(environment string) (*config.Portal, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	portal, err := LoadBytes(defaultsHCL, DefaultsFilename, environment)
	if err != nil {
		return nil, err
	}
	portal.WorkDir = wd
	return portal, nil
}

func LoadBytes(src []byte, filename, environment string) (*config.Portal, error) {
	body, diags := parseBytes(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	portal, err := LoadConfig(body, environment)
	if err != nil {
		return nil, err
	}
	portal.Filename = filename
	return portal, nil
}

func LoadConfig(body *hclsyntax.Body, environment string) (*config.Portal, error) {
	if err := preprocessEnvironmentBlocks(body, environment); err != nil {
		return nil, err
	}

	portal := &config.Portal{}
	if diags := gohcl.DecodeBody(body, newEvalContext(), portal); diags.HasErrors() {
		return nil, diags
	}

	applyDefaults(portal)

	if err := env.Decode(portal.Settings); err != nil {
		return nil, errors.Configuration.Label("environment").With(err)
	}
	portal.Settings.ApplyEnvironment(env.Lookup)

	if err := validate(portal); err != nil {
		return nil, err
	}

	return portal, nil
}

func applyDefaults(portal *config.Portal) {
	if portal.Settings == nil {
		portal.Settings = &config.Settings{}
	}
	portal.Settings.Merge(config.DefaultSettings)

	if portal.Generate == nil {
		portal.Generate = &config.Generate{}
	}
	if portal.Generate.Output == "" {
		portal.Generate.Output = config.DefaultGenerate.Output
	}
	if portal.Generate.Root == "" {
		portal.Generate.Root = config.DefaultGenerate.Root
	}
	if portal.Generate.OnCollision == "" {
		portal.Generate.OnCollision = config.DefaultGenerate.OnCollision
	}
	if portal.Generate.TagPrefixes == nil {
		portal.Generate.TagPrefixes = make(map[string]string)
		for family, prefix := range config.DefaultGenerate.TagPrefixes {
			portal.Generate.TagPrefixes[family] = prefix
		}
	}

	if portal.LLMs == nil {
		portal.LLMs = &config.LLMs{}
	}
	if portal.LLMs.Output == "" {
		portal.LLMs.Output = config.DefaultLLMs.Output
	}
	if portal.LLMs.Title == "" {
		portal.LLMs.Title = config.DefaultLLMs.Title
	}
	if portal.LLMs.Concurrency <= 0 {
		portal.LLMs.Concurrency = config.DefaultLLMs.Concurrency
	}

	if portal.Search == nil {
		portal.Search = &config.Search{}
	}
	if portal.Search.Output == "" {
		portal.Search.Output = config.DefaultSearch.Output
	}
	if portal.Search.MaxHeadingDepth <= 0 {
		portal.Search.MaxHeadingDepth = config.DefaultSearch.MaxHeadingDepth
	}

	for _, col := range portal.Collections {
		if col.BaseURL == "" {
			col.BaseURL = "/" + col.Name
		}
		if col.Label == "" {
			col.Label = col.Name
		}
	}
}

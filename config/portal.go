package config

import "path/filepath"

// DefaultFilename defines the default filename for a devportal config file.
const DefaultFilename = "devportal.hcl"

// Portal represents the <Portal> config object.
type Portal struct {
	Filename string
	// WorkDir is the directory all relative paths are resolved against.
	WorkDir string

	Collections Collections `hcl:"collection,block"`
	Generate    *Generate   `hcl:"generate,block"`
	LLMs        *LLMs       `hcl:"llms,block"`
	OpenAPI     OpenAPIs    `hcl:"openapi,block"`
	Search      *Search     `hcl:"search,block"`
	Settings    *Settings   `hcl:"settings,block"`
}

// GeneratedCollection returns the collection whose directory receives the
// generated OpenAPI reference pages.
func (p *Portal) GeneratedCollection() (*Collection, bool) {
	if p.Generate == nil {
		return nil, false
	}

	target := p.resolve(filepath.Join(p.Generate.Output, p.Generate.Root))
	for _, col := range p.Collections {
		if p.resolve(col.Dir) == target {
			return col, true
		}
	}
	return nil, false
}

func (p *Portal) resolve(dir string) string {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.WorkDir, dir)
	}
	return filepath.Clean(dir)
}

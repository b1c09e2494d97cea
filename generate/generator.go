package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/errors"
	"github.com/fieldnation/devportal/openapi"
)

// Generator writes one mdx page per OpenAPI operation and one index page per document.
type Generator struct {
	conf     *config.Generate
	log      *logrus.Entry
	output   string
	renderer *renderer
}

type Result struct {
	Plan *Plan
	// Unchanged counts the files which already had the generated content.
	Unchanged int
	Written   []string
}

func New(conf *config.Generate, workDir string, log *logrus.Entry) *Generator {
	output := conf.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(workDir, output)
	}
	return &Generator{
		conf:     conf,
		log:      log,
		output:   output,
		renderer: newRenderer(),
	}
}

func (g *Generator) Plan(set *openapi.Set) (*Plan, error) {
	return NewPlan(g.conf, set)
}

// Run overwrites the generated files. Files with unchanged content are not touched
// to keep their modification time.
func (g *Generator) Run(ctx context.Context, set *openapi.Set) (*Result, error) {
	plan, err := g.Plan(set)
	if err != nil {
		return nil, err
	}

	for _, collision := range plan.Collisions {
		g.log.WithContext(ctx).Warnf("path collision: %s", collision)
	}

	result := &Result{Plan: plan}

	for _, op := range plan.Operations {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		b, renderErr := g.renderer.operation(op)
		if renderErr != nil {
			return nil, errors.Generate.Label(op.File).With(renderErr)
		}
		if err = g.write(op.File, b, result); err != nil {
			return nil, err
		}
	}

	for _, index := range plan.Indexes {
		b, renderErr := g.renderer.index(index)
		if renderErr != nil {
			return nil, errors.Generate.Label(index.File).With(renderErr)
		}
		if err = g.write(index.File, b, result); err != nil {
			return nil, err
		}
	}

	g.log.WithContext(ctx).Infof("generated %d openapi pages, %d unchanged", len(result.Written), result.Unchanged)
	return result, nil
}

func (g *Generator) write(file string, content []byte, result *Result) error {
	filename := filepath.Join(g.output, filepath.FromSlash(file)+Extension)

	if existing, err := os.ReadFile(filename); err == nil && bytes.Equal(existing, content) {
		result.Unchanged++
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errors.Generate.Label(file).With(err)
	}
	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return errors.Generate.Label(file).With(err)
	}
	result.Written = append(result.Written, filename)
	return nil
}

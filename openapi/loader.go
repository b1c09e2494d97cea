package openapi

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/errors"
)

// Loader reads the configured OpenAPI documents.
type Loader struct {
	log     *logrus.Entry
	specs   config.OpenAPIs
	workDir string
}

func NewLoader(workDir string, specs config.OpenAPIs, log *logrus.Entry) *Loader {
	return &Loader{
		log:     log,
		specs:   specs,
		workDir: workDir,
	}
}

// Load parses all documents. Any unreadable or malformed document fails the
// whole load, validation problems are logged as warnings.
func (l *Loader) Load(ctx context.Context) (*Set, error) {
	set := NewSet()
	for _, spec := range l.specs {
		filename := spec.File
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(l.workDir, filename)
		}

		src, err := os.ReadFile(filename)
		if err != nil {
			return nil, errors.OpenAPI.Label(spec.Name).With(err)
		}

		doc, err := Parse(ctx, spec, src)
		if err != nil {
			return nil, err
		}

		for _, warning := range doc.Warnings {
			l.log.WithContext(ctx).
				WithField("schema_id", doc.SchemaID).
				Warnf("openapi validation: %v", warning)
		}

		set.add(doc)
		l.log.WithContext(ctx).Debugf("loaded openapi document %s with %d operations", doc.SchemaID, len(doc.Operations()))
	}
	return set, nil
}

// Parse decodes and sanitizes one yaml document.
func Parse(ctx context.Context, spec *config.OpenAPI, src []byte) (*Document, error) {
	schemaID := spec.ID()
	openapiErr := errors.OpenAPI.Label(schemaID)

	var tree interface{}
	if err := yaml.Unmarshal(src, &tree); err != nil {
		return nil, openapiErr.Message("malformed yaml").With(err)
	}

	root, ok := Sanitize(tree).(map[string]interface{})
	if !ok {
		return nil, openapiErr.Message("document root must be a mapping")
	}

	b, err := json.Marshal(root)
	if err != nil {
		return nil, openapiErr.Message("unsupported yaml value").With(err)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	t, err := loader.LoadFromData(b)
	if err != nil {
		return nil, openapiErr.Message("invalid document").With(err)
	}

	doc := &Document{
		Config:   spec,
		Raw:      root,
		SchemaID: schemaID,
		T:        t,
	}

	if verr := t.Validate(ctx); verr != nil {
		doc.Warnings = append(doc.Warnings, verr)
	}

	return doc, nil
}

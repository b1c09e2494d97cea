package runtime

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/content"
	"github.com/fieldnation/devportal/content/icon"
	"github.com/fieldnation/devportal/errors"
	"github.com/fieldnation/devportal/generate"
	"github.com/fieldnation/devportal/llms"
	"github.com/fieldnation/devportal/logging"
	"github.com/fieldnation/devportal/logging/hooks"
	"github.com/fieldnation/devportal/openapi"
	"github.com/fieldnation/devportal/search"
	"github.com/fieldnation/devportal/telemetry"
)

const (
	StageContent = "content"
	StageLLMs    = "llms"
	StageOpenAPI = "openapi"
	StageSearch  = "search"
)

// Pipeline wires the build stages of one run. Loaders are created once
// and shared by all stages.
type Pipeline struct {
	BuildID string
	Config  *config.Portal
	Icons   *icon.Registry
	Log     *logrus.Entry
	Metrics *telemetry.Metrics

	generator *generate.Generator
	specs     *openapi.Loader

	mu       sync.Mutex
	loaders  []*content.Loader
	set      *openapi.Set
	versions content.Versions
}

// NewPipeline validates the runtime settings and prepares the stages.
// Content and OpenAPI documents are loaded on first use, so generated pages
// written by an earlier stage are part of the content.
func NewPipeline(conf *config.Portal, log *logrus.Entry) (*Pipeline, error) {
	buildID, err := newBuildID(conf.Settings.BuildIDFormat)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		BuildID: buildID,
		Config:  conf,
		Icons:   icon.NewDefaultRegistry(),
		Log:     log.WithField("build_id", buildID),
		Metrics: telemetry.NewMetrics(buildID),
	}

	for _, hook := range log.Logger.Hooks[logrus.ErrorLevel] {
		if errHook, ok := hook.(*hooks.Error); ok && errHook.Counter == nil {
			errHook.Counter = p.Metrics.Errors
		}
	}

	p.specs = openapi.NewLoader(conf.WorkDir, conf.OpenAPI, p.Log)
	p.generator = generate.New(conf.Generate, conf.WorkDir, p.Log)
	return p, nil
}

func newBuildID(format string) (string, error) {
	switch format {
	case "", config.BuildIDFormatCommon:
		return xid.New().String(), nil
	case config.BuildIDFormatUUID4:
		return uuid.NewString(), nil
	default:
		return "", errors.Configuration.Messagef("unsupported build_id_format: %q", format)
	}
}

// Context decorates ctx with the build id for log entries.
func (p *Pipeline) Context(ctx context.Context) context.Context {
	return logging.WithBuildID(ctx, p.BuildID)
}

func (p *Pipeline) stage(ctx context.Context, name string) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := telemetry.NewSpanFromContext(logging.WithStage(p.Context(ctx), name), name,
		trace.WithAttributes(attribute.String("devportal.build_id", p.BuildID)))

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		p.Metrics.ObserveStage(name, start)
		p.Log.WithContext(ctx).WithField("duration_ms", logging.RoundMS(time.Since(start))).Debugf("stage %s finished", name)
	}
}

// OpenAPI loads the configured documents once.
func (p *Pipeline) OpenAPI(ctx context.Context) (*openapi.Set, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.set != nil {
		return p.set, nil
	}

	set, err := p.specs.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range set.Documents() {
		p.Metrics.OpenAPIOperations.WithLabelValues(doc.SchemaID).Set(float64(len(doc.Operations()) + len(doc.Webhooks())))
		if len(doc.Warnings) > 0 {
			p.Metrics.OpenAPIValidations.Inc()
		}
	}
	p.set = set
	return set, nil
}

// Plan computes the generator output paths without writing.
func (p *Pipeline) Plan(ctx context.Context) (*generate.Plan, error) {
	set, err := p.OpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	return p.generator.Plan(set)
}

// Generate writes the OpenAPI reference pages.
func (p *Pipeline) Generate(ctx context.Context) (result *generate.Result, err error) {
	ctx, done := p.stage(ctx, StageOpenAPI)
	defer func() { done(err) }()

	set, err := p.OpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	result, err = p.generator.Run(ctx, set)
	if err != nil {
		return nil, err
	}
	p.Metrics.GeneratedFiles.Add(float64(len(result.Written)))

	// generated pages are new content
	p.mu.Lock()
	p.loaders, p.versions = nil, nil
	p.mu.Unlock()
	return result, nil
}

// Content loads all collections once.
func (p *Pipeline) Content(ctx context.Context) (loaders []*content.Loader, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaders != nil {
		return p.loaders, nil
	}

	ctx, done := p.stage(ctx, StageContent)
	defer func() { done(err) }()

	for _, col := range p.Config.Collections {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		dir := col.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(p.Config.WorkDir, dir)
		}

		loader, loadErr := content.NewLoader(ctx, col, dir, p.Icons, p.Log)
		if loadErr != nil {
			return nil, loadErr
		}
		p.Metrics.Pages.WithLabelValues(col.Name).Set(float64(len(loader.Pages())))
		loaders = append(loaders, loader)
	}

	p.loaders = loaders
	p.versions = nil
	return loaders, nil
}

// Versions discovers the versions of the versioned sections of all collections.
func (p *Pipeline) Versions(ctx context.Context) (content.Versions, error) {
	loaders, err := p.Content(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.versions != nil {
		return p.versions, nil
	}

	sections := append([]string{}, content.DefaultVersionedSections...)
	seen := make(map[string]bool)
	for _, s := range sections {
		seen[s] = true
	}
	pages := make([][]*content.Page, 0, len(loaders))
	for _, loader := range loaders {
		for _, s := range loader.Collection().Versioned {
			if !seen[s] {
				seen[s] = true
				sections = append(sections, s)
			}
		}
		pages = append(pages, loader.Pages())
	}

	p.versions = content.DiscoverVersions(sections, pages...)
	return p.versions, nil
}

// Exporter returns the llms exporter over the loaded content.
func (p *Pipeline) Exporter(ctx context.Context) (*llms.Exporter, error) {
	loaders, err := p.Content(ctx)
	if err != nil {
		return nil, err
	}
	return llms.NewExporter(p.Config.LLMs, p.Config.Settings, p.Config.WorkDir, loaders, p.Log), nil
}

// LLMs writes the llms text exports.
func (p *Pipeline) LLMs(ctx context.Context) (result *llms.Result, err error) {
	exporter, err := p.Exporter(ctx)
	if err != nil {
		return nil, err
	}

	ctx, done := p.stage(ctx, StageLLMs)
	defer func() { done(err) }()

	result, err = exporter.Export(ctx)
	if result != nil {
		p.Metrics.LLMExports.WithLabelValues("written").Add(float64(result.Written))
		p.Metrics.LLMExports.WithLabelValues("failed").Add(float64(result.Failed))
		p.Metrics.ArtifactBytes.WithLabelValues(StageLLMs).Set(float64(result.Bytes))
		p.Log.WithContext(ctx).WithField("size", logging.HumanSize(result.Bytes)).
			Infof("exported %d llms files, %d failed", result.Written, result.Failed)
	}
	return result, err
}

// SearchIndex builds the search index without writing it.
func (p *Pipeline) SearchIndex(ctx context.Context) (*search.Index, error) {
	loaders, err := p.Content(ctx)
	if err != nil {
		return nil, err
	}
	index, err := search.NewBuilder(p.Config.Search, p.Log).Build(p.Context(ctx), loaders...)
	if err != nil {
		return nil, err
	}
	p.Metrics.SearchEntries.WithLabelValues(string(search.TypePage)).Set(float64(index.Count(search.TypePage)))
	p.Metrics.SearchEntries.WithLabelValues(string(search.TypeHeading)).Set(float64(index.Count(search.TypeHeading)))
	return index, nil
}

// Search writes the search index artifact and publishes it if configured.
func (p *Pipeline) Search(ctx context.Context) (index *search.Index, err error) {
	index, err = p.SearchIndex(ctx)
	if err != nil {
		return nil, err
	}

	ctx, done := p.stage(ctx, StageSearch)
	defer func() { done(err) }()

	buf := &bytes.Buffer{}
	if err = index.Save(buf); err != nil {
		return nil, errors.Search.With(err)
	}

	filename := p.Config.Search.Output
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(p.Config.WorkDir, filename)
	}
	if err = os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, errors.Search.Label(filename).With(err)
	}
	if err = os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return nil, errors.Search.Label(filename).With(err)
	}

	size := int64(buf.Len())
	p.Metrics.ArtifactBytes.WithLabelValues(StageSearch).Set(float64(size))
	p.Log.WithContext(ctx).WithField("size", logging.HumanSize(size)).Infof("search index written: %s", filename)

	if p.Config.Search.Publish() {
		if err = search.NewAlgoliaPublisher(p.Config.Search, p.Log).Publish(ctx, index); err != nil {
			return nil, err
		}
	}
	return index, nil
}

// Flush writes the metrics textfile if configured.
func (p *Pipeline) Flush() error {
	filename := p.Config.Settings.MetricsFile
	if filename == "" {
		return nil
	}
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(p.Config.WorkDir, filename)
	}
	if err := p.Metrics.WriteFile(filename); err != nil {
		return errors.Configuration.Label("metrics_file").With(err)
	}
	return nil
}

package llms

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/content"
	"github.com/fieldnation/devportal/errors"
	"github.com/fieldnation/devportal/utils"
)

const (
	OutlineFile  = "llms.txt"
	FullTextFile = "llms-full.txt"
	fileExt      = ".txt"
)

var errExport = errors.Export

// Exporter writes the llms text files of all exported collections.
type Exporter struct {
	conf     *config.LLMs
	settings *config.Settings
	log      *logrus.Entry
	output   string

	byName   map[string]*content.Loader
	loaders  []*content.Loader
	nameMaps map[string]map[string]string
}

// Result summarizes an export run.
type Result struct {
	Bytes   int64
	Failed  int
	Written int
}

func NewExporter(conf *config.LLMs, settings *config.Settings, workDir string, loaders []*content.Loader, log *logrus.Entry) *Exporter {
	output := conf.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(workDir, output)
	}

	e := &Exporter{
		conf:     conf,
		settings: settings,
		log:      log,
		output:   output,
		byName:   make(map[string]*content.Loader),
		nameMaps: make(map[string]map[string]string),
	}

	for _, loader := range loaders {
		if !loader.Collection().ExportLLMs() {
			continue
		}
		e.loaders = append(e.loaders, loader)
		e.byName[loader.Name()] = loader
		e.nameMaps[loader.Name()] = loader.NameMap()
	}
	return e
}

// Export writes the outline, the full text and one file per page. Page
// failures are logged and counted, they only fail the export in strict mode.
func (e *Exporter) Export(ctx context.Context) (*Result, error) {
	var (
		bytes, written, failed atomic.Int64
	)

	outline := e.Outline()
	if err := e.write(OutlineFile, outline); err != nil {
		return nil, err
	}
	bytes.Add(int64(len(outline)))
	written.Add(1)

	full, err := e.Full()
	if err != nil {
		e.log.WithContext(ctx).WithError(errExport.Label(FullTextFile).With(err)).Error()
		failed.Add(1)
	} else {
		if err = e.write(FullTextFile, full); err != nil {
			return nil, err
		}
		bytes.Add(int64(len(full)))
		written.Add(1)
	}

	concurrency := e.conf.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, loader := range e.loaders {
		names := e.nameMaps[loader.Name()]
		for _, page := range loader.Pages() {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				text, textErr := e.Text(page, &TextOptions{Title: pageName(names, page)})
				if textErr == nil {
					textErr = e.write(strings.TrimPrefix(page.URL, "/")+fileExt, text)
				}
				if textErr != nil {
					e.log.WithContext(gctx).WithError(errExport.Label(page.URL).With(textErr)).Error()
					failed.Add(1)
					return nil
				}

				bytes.Add(int64(len(text)))
				written.Add(1)
				return nil
			})
		}
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Bytes:   bytes.Load(),
		Failed:  int(failed.Load()),
		Written: int(written.Load()),
	}

	if result.Failed > 0 && e.conf.Strict {
		return result, errExport.Messagef("%d llms exports failed", result.Failed)
	}
	return result, nil
}

// Single serves the llms route: no slug or "llms" is the outline,
// "llms-full" the full text, anything else the page with this url.
// A trailing .txt is ignored.
func (e *Exporter) Single(slugs []string) (string, error) {
	if len(slugs) > 0 {
		last := len(slugs) - 1
		slugs = append(append([]string{}, slugs[:last]...), strings.TrimSuffix(slugs[last], fileExt))
	}

	switch {
	case len(slugs) == 0 || (len(slugs) == 1 && slugs[0] == "llms"):
		return e.Outline(), nil
	case len(slugs) == 1 && slugs[0] == "llms-full":
		return e.Full()
	}

	url := utils.JoinURL(slugs...)
	for _, loader := range e.loaders {
		if page, exist := loader.PageByURL(url); exist {
			return e.Text(page, &TextOptions{Title: pageName(e.nameMaps[loader.Name()], page)})
		}
	}
	return "", errors.NotFound.Label(url)
}

func (e *Exporter) write(name, text string) error {
	filename := filepath.Join(e.output, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return errExport.Label(name).With(err)
	}
	if err := os.WriteFile(filename, []byte(text), 0o644); err != nil {
		return errExport.Label(name).With(err)
	}
	return nil
}

// Output is the directory the files are written to.
func (e *Exporter) Output() string {
	return e.output
}

package runtime_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/configload"
	"github.com/fieldnation/devportal/config/runtime"
	"github.com/fieldnation/devportal/content"
	"github.com/fieldnation/devportal/internal/test"
)

const portalHCL = `
settings {
  metrics_file    = "metrics.prom"
  build_id_format = "uuid4"
}

collection "docs" {
  dir        = "content/docs"
  label      = "Documentation"
  categories = { "guides" = "Guides" }
  versioned  = ["guides"]
}

collection "api-references" {
  dir            = "content/api-references"
  category_label = "API References"
}

openapi "rest_v2" {
  file = "openapi/rest/v2/openapi.yaml"
}
`

func newPipeline(t *testing.T) (*runtime.Pipeline, string) {
	t.Helper()
	helper := test.New(t)

	spec, err := os.ReadFile(filepath.Join("..", "..", "openapi", "testdata", "rest.yaml"))
	helper.Must(err)

	workDir := helper.WriteFiles(test.Files{
		"openapi/rest/v2/openapi.yaml": string(spec),
		"content/docs/index.mdx":       "---\ntitle: Welcome\n---\n## Start\n",
		"content/docs/guides/v1/a.mdx": "---\ntitle: Guide v1\n---\nOld.\n",
		"content/docs/guides/v10/b.mdx": "---\ntitle: Guide v10\n---\nNew.\n",
	})

	conf, err := configload.LoadBytes([]byte(portalHCL), config.DefaultFilename, "")
	helper.Must(err)
	conf.WorkDir = workDir

	log, _ := test.NewLogger()
	pipeline, err := runtime.NewPipeline(conf, log.WithContext(context.Background()))
	helper.Must(err)
	return pipeline, workDir
}

func TestPipeline_Build(t *testing.T) {
	helper := test.New(t)
	pipeline, workDir := newPipeline(t)
	ctx := context.Background()

	if len(pipeline.BuildID) != 36 {
		t.Errorf("expected an uuid4 build id, got %q", pipeline.BuildID)
	}

	generated, err := pipeline.Generate(ctx)
	helper.Must(err)
	if len(generated.Written) != 4 {
		t.Errorf("want 4 generated files, got %d", len(generated.Written))
	}

	loaders, err := pipeline.Content(ctx)
	helper.Must(err)
	if len(loaders) != 2 || len(loaders[1].Pages()) != 4 {
		t.Fatalf("expected the generated pages to be loaded")
	}

	versions, err := pipeline.Versions(ctx)
	helper.Must(err)
	want := content.Versions{
		"guides":   {"v10", "v1"},
		"rest-api": {"v2"},
		"webhooks": {},
	}
	if diff := cmp.Diff(want, versions); diff != "" {
		t.Error(diff)
	}

	result, err := pipeline.LLMs(ctx)
	helper.Must(err)
	if result.Failed != 0 || result.Written != 9 {
		t.Errorf("unexpected llms result: %#v", result)
	}
	text := helper.ReadFile(filepath.Join(workDir, "public/llms/api-references/rest-api/v2/work-orders/listworkorders.txt"))
	if !strings.HasPrefix(text, "# API References: List work orders\n") || strings.Contains(text, "<APIPage") {
		t.Errorf("unexpected page text:\n%s", text)
	}

	index, err := pipeline.Search(ctx)
	helper.Must(err)
	if index.Len() == 0 {
		t.Error("expected search entries")
	}
	if _, err = os.Stat(filepath.Join(workDir, "public/search-index.json")); err != nil {
		t.Error(err)
	}

	if got := testutil.ToFloat64(pipeline.Metrics.GeneratedFiles); got != 4 {
		t.Errorf("want 4 generated files metric, got %v", got)
	}
	if got := testutil.ToFloat64(pipeline.Metrics.Pages.WithLabelValues("docs")); got != 3 {
		t.Errorf("want 3 docs pages metric, got %v", got)
	}

	helper.Must(pipeline.Flush())
	metrics := helper.ReadFile(filepath.Join(workDir, "metrics.prom"))
	if !strings.Contains(metrics, `devportal_generated_files_total{build_id="`+pipeline.BuildID+`"} 4`) {
		t.Errorf("unexpected metrics file:\n%s", metrics)
	}
}

func TestPipeline_GenerateIsIdempotent(t *testing.T) {
	helper := test.New(t)
	pipeline, _ := newPipeline(t)

	_, err := pipeline.Generate(context.Background())
	helper.Must(err)

	second, err := pipeline.Generate(context.Background())
	helper.Must(err)
	if len(second.Written) != 0 || second.Unchanged != 4 {
		t.Errorf("unexpected second run: %d written, %d unchanged", len(second.Written), second.Unchanged)
	}
}

func TestPipeline_MissingContent(t *testing.T) {
	pipeline, _ := newPipeline(t)

	// api-references is not generated yet
	if _, err := pipeline.Content(context.Background()); err == nil || !strings.Contains(err.Error(), "api-references: content error") {
		t.Errorf("expected a content error, got: %v", err)
	}
}

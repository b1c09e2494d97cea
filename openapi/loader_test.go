package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/internal/test"
	"github.com/fieldnation/devportal/openapi"
)

func TestLoader_Load(t *testing.T) {
	helper := test.New(t)
	log, _ := test.NewLogger()

	specs := config.OpenAPIs{
		{Name: "rest_v2", File: "testdata/rest.yaml"},
		{Name: "webhooks_v3", File: "testdata/webhooks.yaml", SchemaID: "./openapi/webhooks/v3/openapi.yaml", Title: "Webhooks v3"},
	}

	set, err := openapi.NewLoader(".", specs, log.WithContext(context.Background())).Load(context.Background())
	helper.Must(err)

	if diff := cmp.Diff([]string{"testdata/rest.yaml", "./openapi/webhooks/v3/openapi.yaml"}, set.IDs()); diff != "" {
		t.Error(diff)
	}

	rest, ok := set.Get("testdata/rest.yaml")
	if !ok {
		t.Fatal("expected rest document")
	}

	if got := rest.T.Info.Description; got != "The REST API lets you manage work orders.\n\nSecond paragraph. " {
		t.Errorf("unexpected sanitized info description: %q", got)
	}
	if rest.Title() != "Field Nation REST API" {
		t.Errorf("unexpected title: %q", rest.Title())
	}

	var ops []string
	for _, op := range rest.Operations() {
		ops = append(ops, op.Method+" "+op.Path)
	}
	want := []string{"GET /workorders", "POST /workorders", "GET /workorders/{id}"}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Error(diff)
	}

	list := rest.Operations()[0].Operation
	if list.Summary != "List work orders" || list.Description != "Returns all work orders." {
		t.Errorf("unexpected operation texts: %q %q", list.Summary, list.Description)
	}
	if d := list.Parameters[0].Value.Description; d != "Page number" {
		t.Errorf("unexpected parameter description: %q", d)
	}
	if list.Responses.Status(200) == nil {
		t.Error("expected the integer response key to be loaded")
	}

	hooks, _ := set.Get("./openapi/webhooks/v3/openapi.yaml")
	if hooks.Title() != "Webhooks v3" {
		t.Errorf("expected the configured title, got %q", hooks.Title())
	}

	wantHooks := []openapi.Webhook{
		{Method: "POST", Name: "workorder.assigned", OperationID: "workorderAssigned", Summary: "Work order assigned"},
		{Method: "POST", Name: "workorder.created", Summary: "Work order created", Tags: []string{"webhooks.Work Orders"}},
	}
	if diff := cmp.Diff(wantHooks, hooks.Webhooks()); diff != "" {
		t.Error(diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"malformed yaml", "openapi: [3.0\n", "x.yaml: openapi error: malformed yaml"},
		{"no mapping", "- a\n- b\n", "x.yaml: openapi error: document root must be a mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(subT *testing.T) {
			_, err := openapi.Parse(context.Background(), &config.OpenAPI{Name: "x", File: "x.yaml"}, []byte(tt.src))
			if err == nil {
				subT.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				subT.Errorf("want %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	log, _ := test.NewLogger()
	specs := config.OpenAPIs{{Name: "missing", File: "testdata/missing.yaml"}}
	_, err := openapi.NewLoader(".", specs, log.WithContext(context.Background())).Load(context.Background())
	if err == nil || !strings.HasPrefix(err.Error(), "missing: openapi error") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParse_ValidationWarning(t *testing.T) {
	src := "openapi: 3.0.3\ninfo:\n  version: 1.0.0\npaths: {}\n"
	doc, err := openapi.Parse(context.Background(), &config.OpenAPI{Name: "x", File: "x.yaml"}, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Warnings) == 0 {
		t.Error("expected a validation warning for the missing title")
	}
}

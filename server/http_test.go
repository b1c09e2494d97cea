package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"go.uber.org/goleak"

	"github.com/fieldnation/devportal/content"
	"github.com/fieldnation/devportal/errors"
	"github.com/fieldnation/devportal/internal/test"
	"github.com/fieldnation/devportal/search"
	"github.com/fieldnation/devportal/server"
)

type fakeLLMs map[string]string

func (f fakeLLMs) Single(slugs []string) (string, error) {
	key := strings.Join(slugs, "/")
	if text, ok := f[key]; ok {
		return text, nil
	}
	return "", errors.NotFound.Label(key)
}

func newSources(t *testing.T) *server.Sources {
	helper := test.New(t)

	index := search.NewIndex()
	for _, e := range []*search.Entry{
		{ID: "/docs/webhooks", Title: "Webhooks", Type: search.TypePage, URL: "/docs/webhooks", Content: "Receive events"},
		{ID: "/docs/oauth", Title: "OAuth", Type: search.TypePage, URL: "/docs/oauth", Content: "Authenticate with tokens"},
		{ID: "/docs/oauth#tokens", Title: "Tokens", Type: search.TypeHeading, URL: "/docs/oauth#tokens"},
	} {
		helper.Must(index.Insert(e))
	}

	return &server.Sources{
		Index: index,
		LLMs: fakeLLMs{
			"":                  "outline",
			"llms-full":         "full",
			"docs/oauth.txt":    "oauth page",
			"docs/nested/a.txt": "nested page",
		},
		Versions: content.Versions{"rest-api": {"v2", "v1"}},
	}
}

func TestRouter(t *testing.T) {
	router := server.NewRouter(newSources(t))

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{"outline", http.MethodGet, "/llms.txt", http.StatusOK, "text/plain; charset=utf-8", "outline"},
		{"full text", http.MethodGet, "/llms-full.txt", http.StatusOK, "text/plain; charset=utf-8", "full"},
		{"page", http.MethodGet, "/llms/docs/oauth.txt", http.StatusOK, "text/plain; charset=utf-8", "oauth page"},
		{"nested page", http.MethodGet, "/llms/docs/nested/a.txt", http.StatusOK, "text/plain; charset=utf-8", "nested page"},
		{"unknown page", http.MethodGet, "/llms/docs/missing.txt", http.StatusNotFound, "", "not found"},
		{"versions", http.MethodGet, "/api/versions", http.StatusOK, "application/json", `{"rest-api":["v2","v1"]}`},
		{"index", http.MethodGet, "/search-index.json", http.StatusOK, "application/json", `"version":1`},
		{"invalid limit", http.MethodGet, "/api/search?query=oauth&limit=x", http.StatusBadRequest, "", "invalid limit"},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, "", "/nope: not found"},
		{"wrong method", http.MethodPost, "/llms.txt", http.StatusMethodNotAllowed, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(subT *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				subT.Errorf("want status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantType != "" && rec.Header().Get("Content-Type") != tt.wantType {
				subT.Errorf("want content-type %q, got %q", tt.wantType, rec.Header().Get("Content-Type"))
			}
			if !strings.Contains(rec.Body.String(), tt.wantContain) {
				subT.Errorf("want body to contain %q, got %q", tt.wantContain, rec.Body.String())
			}
		})
	}
}

func TestRouter_Search(t *testing.T) {
	router := server.NewRouter(newSources(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?query=oauth&limit=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want status 200, got %d", rec.Code)
	}

	var results []struct {
		ID    string  `json:"id"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "/docs/oauth" || results[0].Score <= 0 {
		t.Errorf("unexpected results: %#v", results)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?query=", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("want empty result list, got %q", got)
	}
}

func TestRouter_NoSources(t *testing.T) {
	router := server.NewRouter(&server.Sources{})

	for _, path := range []string{"/llms.txt", "/api/search?query=x", "/search-index.json", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: want status 404, got %d", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/versions", nil))
	if diff := cmp.Diff("{}", strings.TrimSpace(rec.Body.String())); diff != "" {
		t.Error(diff)
	}
}

func TestHTTPServer_ListenAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	helper := test.New(t)
	log, hook := test.NewLogger()
	log.SetLevel(logrus.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	srv := server.New(ctx, log.WithContext(ctx), "127.0.0.1:0", newSources(t))
	helper.Must(srv.Listen())

	res, err := http.Get("http://" + srv.Addr() + "/llms.txt")
	helper.Must(err)
	body, err := io.ReadAll(res.Body)
	helper.Must(err)
	helper.Must(res.Body.Close())

	if string(body) != "outline" {
		t.Errorf("want outline, got %q", string(body))
	}
	if res.Header.Get("X-Request-Id") == "" {
		t.Error("expected a request id header")
	}

	http.DefaultClient.CloseIdleConnections()

	done := make(chan error)
	go func() {
		done <- srv.Wait()
	}()
	cancel()
	helper.Must(<-done)

	var served bool
	for _, entry := range hook.AllEntries() {
		if entry.Data["path"] == "/llms.txt" && entry.Data["status"] == http.StatusOK {
			served = true
		}
	}
	if !served {
		t.Error("expected an access log entry")
	}
}

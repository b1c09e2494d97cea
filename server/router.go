package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fieldnation/devportal/content"
	"github.com/fieldnation/devportal/errors"
	"github.com/fieldnation/devportal/search"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

// LLMSource resolves the llms routes.
type LLMSource interface {
	Single(slugs []string) (string, error)
}

// Sources are the build artifacts served by the preview.
type Sources struct {
	Index    *search.Index
	LLMs     LLMSource
	Metrics  http.Handler
	Versions content.Versions
}

// NewRouter registers the preview routes. Unset sources answer with 404.
func NewRouter(sources *Sources) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		writeError(rw, errors.NotFound.Label(req.URL.Path))
	})

	router.HandleFunc("/llms.txt", func(rw http.ResponseWriter, req *http.Request) {
		serveLLMs(rw, sources.LLMs, nil)
	}).Methods(http.MethodGet, http.MethodHead)

	router.HandleFunc("/llms-full.txt", func(rw http.ResponseWriter, req *http.Request) {
		serveLLMs(rw, sources.LLMs, []string{"llms-full"})
	}).Methods(http.MethodGet, http.MethodHead)

	router.HandleFunc("/llms/{path:.+}", func(rw http.ResponseWriter, req *http.Request) {
		slugs := strings.Split(strings.Trim(mux.Vars(req)["path"], "/"), "/")
		serveLLMs(rw, sources.LLMs, slugs)
	}).Methods(http.MethodGet, http.MethodHead)

	router.HandleFunc("/api/search", func(rw http.ResponseWriter, req *http.Request) {
		if sources.Index == nil {
			writeError(rw, errors.NotFound.Label(req.URL.Path))
			return
		}

		limit := DefaultSearchLimit
		if l := req.URL.Query().Get("limit"); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 1 {
				writeError(rw, errors.Search.WithStatus(http.StatusBadRequest).Messagef("invalid limit: %q", l))
				return
			}
			limit = min(n, MaxSearchLimit)
		}

		results := sources.Index.Search(req.URL.Query().Get("query"), limit)
		if results == nil {
			results = []search.Result{}
		}
		writeJSON(rw, results)
	}).Methods(http.MethodGet)

	router.HandleFunc("/search-index.json", func(rw http.ResponseWriter, req *http.Request) {
		if sources.Index == nil {
			writeError(rw, errors.NotFound.Label(req.URL.Path))
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		if err := sources.Index.Save(rw); err != nil {
			writeError(rw, errors.Search.With(err))
		}
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/versions", func(rw http.ResponseWriter, req *http.Request) {
		versions := sources.Versions
		if versions == nil {
			versions = content.Versions{}
		}
		writeJSON(rw, versions)
	}).Methods(http.MethodGet)

	if sources.Metrics != nil {
		router.Handle("/metrics", sources.Metrics).Methods(http.MethodGet)
	}

	return router
}

func serveLLMs(rw http.ResponseWriter, source LLMSource, slugs []string) {
	if source == nil {
		writeError(rw, errors.NotFound.Label("llms"))
		return
	}

	body, err := source.Single(slugs)
	if err != nil {
		writeError(rw, err)
		return
	}

	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = rw.Write([]byte(body))
}

func writeJSON(rw http.ResponseWriter, v interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(rw http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var gerr *errors.Error
	if errors.As(err, &gerr) && gerr.Status() > 0 {
		status = gerr.Status()
	}
	http.Error(rw, err.Error(), status)
}

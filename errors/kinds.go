package errors

import "net/http"

var (
	Configuration = &Error{synopsis: "configuration error", kinds: []string{"configuration"}, status: http.StatusInternalServerError}
	Content       = &Error{synopsis: "content error", kinds: []string{"content"}, status: http.StatusInternalServerError}
	Export        = &Error{synopsis: "export error", kinds: []string{"export"}, status: http.StatusInternalServerError}
	Generate      = &Error{synopsis: "generate error", kinds: []string{"generate"}, status: http.StatusInternalServerError}
	NotFound      = &Error{synopsis: "not found", kinds: []string{"not_found"}, status: http.StatusNotFound}
	OpenAPI       = &Error{synopsis: "openapi error", kinds: []string{"openapi"}, status: http.StatusInternalServerError}
	Search        = &Error{synopsis: "search index error", kinds: []string{"search"}, status: http.StatusInternalServerError}
)

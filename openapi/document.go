package openapi

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/fieldnation/devportal/config"
)

// Document is a loaded and sanitized OpenAPI document.
type Document struct {
	Config *config.OpenAPI
	// Raw is the sanitized generic yaml tree.
	Raw map[string]interface{}
	// SchemaID is the key used by generated pages to reference the document.
	SchemaID string
	T        *openapi3.T
	// Warnings lists validation problems which did not prevent the loading.
	Warnings []error
}

// Operation is one method of a path item.
type Operation struct {
	Method    string
	Operation *openapi3.Operation
	Path      string
}

// Operations returns all operations sorted by path and method.
func (d *Document) Operations() []Operation {
	if d.T == nil || d.T.Paths == nil {
		return nil
	}

	var ops []Operation
	for p, item := range d.T.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			ops = append(ops, Operation{
				Method:    strings.ToUpper(method),
				Operation: op,
				Path:      p,
			})
		}
	}

	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return methodRank(ops[i].Method) < methodRank(ops[j].Method)
	})
	return ops
}

var methodOrder = []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "TRACE", "CONNECT"}

func methodRank(method string) int {
	for i, m := range methodOrder {
		if m == method {
			return i
		}
	}
	return len(methodOrder)
}

// Title returns the configured title with a fallback to the info object.
func (d *Document) Title() string {
	if d.Config != nil && d.Config.Title != "" {
		return d.Config.Title
	}
	if d.T != nil && d.T.Info != nil {
		return d.T.Info.Title
	}
	return d.SchemaID
}

// Description returns the configured description with a fallback to the info object.
func (d *Document) Description() string {
	if d.Config != nil && d.Config.Description != "" {
		return d.Config.Description
	}
	if d.T != nil && d.T.Info != nil {
		return d.T.Info.Description
	}
	return ""
}

// Set holds the loaded documents keyed by schema id in configuration order.
type Set struct {
	docs  map[string]*Document
	order []string
}

func NewSet(docs ...*Document) *Set {
	s := &Set{docs: make(map[string]*Document)}
	for _, d := range docs {
		s.add(d)
	}
	return s
}

func (s *Set) add(d *Document) {
	if _, exist := s.docs[d.SchemaID]; !exist {
		s.order = append(s.order, d.SchemaID)
	}
	s.docs[d.SchemaID] = d
}

func (s *Set) Get(schemaID string) (*Document, bool) {
	d, exist := s.docs[schemaID]
	return d, exist
}

func (s *Set) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

func (s *Set) Documents() []*Document {
	docs := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.docs[id])
	}
	return docs
}

func (s *Set) Len() int {
	return len(s.order)
}

package generate

import (
	"fmt"
	"path"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/errors"
	"github.com/fieldnation/devportal/openapi"
)

// Operation is one page of the generated reference.
type Operation struct {
	Description string
	Family      string
	// File is the slash separated output path without extension.
	File        string
	Method      string
	OperationID string
	Path        string
	SchemaID    string
	Summary     string
	// Tag is the primary tag without family prefix.
	Tag     string
	Version string

	// Webhook operations carry the webhook name instead of a path.
	Webhook bool
	Name    string

	op *openapi3.Operation
}

// Title is the page title: summary, declared id or method and route.
func (o *Operation) Title() string {
	if o.Summary != "" {
		return o.Summary
	}
	if o.OperationID != "" {
		return o.OperationID
	}
	if o.Webhook {
		return o.Name
	}
	return o.Method + " " + o.Path
}

func (o *Operation) String() string {
	if o.Webhook {
		return fmt.Sprintf("webhook %s %s (%s)", o.Method, o.Name, o.SchemaID)
	}
	return fmt.Sprintf("%s %s (%s)", o.Method, o.Path, o.SchemaID)
}

// Index is the landing page of one document.
type Index struct {
	Description string
	File        string
	Operations  []*Operation
	SchemaID    string
	Title       string
}

// Plan holds the computed output paths of one generator run.
type Plan struct {
	Collisions []string
	Indexes    []*Index
	Operations []*Operation
}

type planner struct {
	conf  *config.Generate
	files map[string]string // file -> owner
	plan  *Plan
}

// NewPlan computes all output paths. Paths only depend on the documents, so
// two plans of the same set are equal. A path claimed twice is an error unless
// the suffix collision policy is configured.
func NewPlan(conf *config.Generate, set *openapi.Set) (*Plan, error) {
	p := &planner{
		conf:  conf,
		files: make(map[string]string),
		plan:  &Plan{},
	}

	for _, doc := range set.Documents() {
		index, err := p.document(doc)
		if err != nil {
			return nil, err
		}
		p.plan.Indexes = append(p.plan.Indexes, index)
	}

	return p.plan, nil
}

func (p *planner) document(doc *openapi.Document) (*Index, error) {
	infoVersion := ""
	if doc.T != nil && doc.T.Info != nil {
		infoVersion = doc.T.Info.Version
	}
	configured, pinned := "", ""
	if doc.Config != nil {
		configured, pinned = doc.Config.Version, doc.Config.Family
	}
	version := ResolveVersion(configured, doc.SchemaID, infoVersion)

	docFamily := pinned
	if docFamily == "" {
		docFamily = DetermineFamily(doc.SchemaID, "")
	}

	index := &Index{
		Description: doc.Description(),
		File:        path.Join(p.conf.Root, FamilyRoot(docFamily), version, "index"),
		SchemaID:    doc.SchemaID,
		Title:       doc.Title(),
	}

	// the index is claimed first so no page can take its place
	if other, exist := p.files[index.File]; exist {
		return nil, errors.Generate.Label(doc.SchemaID).
			Messagef("index page %s is already claimed by %s, configure a distinct version", index.File, other)
	}
	p.files[index.File] = "index page (" + doc.SchemaID + ")"

	for _, item := range doc.Operations() {
		family := pinned
		if family == "" {
			family = DetermineFamily(doc.SchemaID, item.Path)
		}

		tag := CleanTag(PrimaryTag(item.Operation.Tags), family, p.conf.TagPrefixes)
		op := &Operation{
			Description: item.Operation.Description,
			Family:      family,
			Method:      item.Method,
			OperationID: item.Operation.OperationID,
			Path:        item.Path,
			SchemaID:    doc.SchemaID,
			Summary:     item.Operation.Summary,
			Tag:         tag,
			Version:     version,
			op:          item.Operation,
		}
		op.File = path.Join(p.conf.Root, FamilyRoot(family), version, TagSegment(tag), OperationID(op.OperationID, op.Path, op.Method))

		if err := p.claim(op); err != nil {
			return nil, err
		}
		index.Operations = append(index.Operations, op)
	}

	for _, hook := range doc.Webhooks() {
		op := &Operation{
			Description: hook.Description,
			Family:      config.FamilyWebhook,
			Method:      hook.Method,
			Name:        hook.Name,
			OperationID: hook.OperationID,
			SchemaID:    doc.SchemaID,
			Summary:     hook.Summary,
			Tag:         CleanTag(PrimaryTag(hook.Tags), config.FamilyWebhook, p.conf.TagPrefixes),
			Version:     version,
			Webhook:     true,
		}
		op.File = path.Join(p.conf.Root, FamilyRoot(config.FamilyWebhook), version, WebhookSegment(hook.Name, hook.Method))

		if err := p.claim(op); err != nil {
			return nil, err
		}
		index.Operations = append(index.Operations, op)
	}

	return index, nil
}

func (p *planner) claim(op *Operation) error {
	other, exist := p.files[op.File]
	if !exist {
		p.files[op.File] = op.String()
		p.plan.Operations = append(p.plan.Operations, op)
		return nil
	}

	collision := fmt.Sprintf("%s and %s resolve to %s", other, op, op.File)
	if p.conf.OnCollision != config.CollisionSuffix {
		return errors.Generate.Label(op.SchemaID).Message("path collision: " + collision)
	}

	p.plan.Collisions = append(p.plan.Collisions, collision)
	base := op.File
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, taken := p.files[candidate]; !taken {
			op.File = candidate
			break
		}
	}
	p.files[op.File] = op.String()
	p.plan.Operations = append(p.plan.Operations, op)
	return nil
}

// Files returns all output files of the plan including the extension.
func (p *Plan) Files() []string {
	var files []string
	for _, op := range p.Operations {
		files = append(files, op.File+Extension)
	}
	for _, index := range p.Indexes {
		files = append(files, index.File+Extension)
	}
	return files
}

// Extension of the generated files.
const Extension = ".mdx"

package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/fieldnation/devportal/utils"
)

const generatedComment = "{/* This file was generated by devportal. Do not edit this file directly. Any changes should be made by running the generation command again. */}"

var htmlTagRegex = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^>]*)?/?>`)

type frontmatter struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description,omitempty"`
	Full        bool         `yaml:"full"`
	OpenAPI     *openapiMeta `yaml:"_openapi,omitempty"`
}

type openapiMeta struct {
	Method  string `yaml:"method,omitempty"`
	Route   string `yaml:"route,omitempty"`
	Webhook bool   `yaml:"webhook,omitempty"`
}

type apiOperation struct {
	Path   string `json:"path"`
	Method string `json:"method"`
}

type apiWebhook struct {
	Name   string `json:"name"`
	Method string `json:"method"`
}

type renderer struct {
	converter *md.Converter
}

func newRenderer() *renderer {
	return &renderer{converter: md.NewConverter("", true, nil)}
}

// markdown converts html descriptions, plain markdown is returned as is.
func (r *renderer) markdown(s string) string {
	s = strings.TrimSpace(s)
	if !htmlTagRegex.MatchString(s) {
		return s
	}
	converted, err := r.converter.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(converted)
}

func (r *renderer) operation(op *Operation) ([]byte, error) {
	description := r.markdown(op.Description)

	meta := &openapiMeta{Method: op.Method, Route: op.Path, Webhook: op.Webhook}
	if op.Webhook {
		meta.Route = op.Name
	}

	buf := &bytes.Buffer{}
	if err := writeFrontmatter(buf, frontmatter{
		Title:       op.Title(),
		Description: firstParagraph(description),
		Full:        true,
		OpenAPI:     meta,
	}); err != nil {
		return nil, err
	}

	buf.WriteString(generatedComment + "\n\n")
	if description != "" {
		buf.WriteString(description + "\n\n")
	}

	operations, webhooks := []apiOperation{}, []apiWebhook{}
	if op.Webhook {
		webhooks = append(webhooks, apiWebhook{Name: op.Name, Method: strings.ToLower(op.Method)})
	} else {
		operations = append(operations, apiOperation{Path: op.Path, Method: strings.ToLower(op.Method)})
	}

	document, _ := json.Marshal(op.SchemaID)
	opsJSON, _ := json.Marshal(operations)
	hooksJSON, _ := json.Marshal(webhooks)
	fmt.Fprintf(buf, "<APIPage document={%s} operations={%s} webhooks={%s} hasHead={false} />\n", document, opsJSON, hooksJSON)

	if op.op != nil {
		r.reference(buf, op.op)
	}

	return buf.Bytes(), nil
}

// reference renders parameters, request body and responses as markdown.
func (r *renderer) reference(buf *bytes.Buffer, op *openapi3.Operation) {
	if len(op.Parameters) > 0 {
		buf.WriteString("\n## Parameters\n\n")
		buf.WriteString("| Name | In | Type | Required | Description |\n| --- | --- | --- | --- | --- |\n")
		for _, ref := range op.Parameters {
			if ref == nil || ref.Value == nil {
				continue
			}
			p := ref.Value
			fmt.Fprintf(buf, "| `%s` | %s | %s | %s | %s |\n",
				p.Name, p.In, schemaType(p.Schema), yesNo(p.Required), cell(r.markdown(p.Description)))
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		body := op.RequestBody.Value
		buf.WriteString("\n## Request Body\n\n")
		if d := r.markdown(body.Description); d != "" {
			buf.WriteString(d + "\n\n")
		}
		for _, contentType := range sortedKeys(body.Content) {
			media := body.Content[contentType]
			fmt.Fprintf(buf, "Content type: `%s`", contentType)
			if body.Required {
				buf.WriteString(" (required)")
			}
			buf.WriteString("\n\n")
			r.properties(buf, media)
		}
	}

	if op.Responses != nil && op.Responses.Len() > 0 {
		buf.WriteString("\n## Responses\n\n")
		buf.WriteString("| Status | Description |\n| --- | --- |\n")
		responses := op.Responses.Map()
		for _, status := range sortedKeys(responses) {
			description := ""
			if ref := responses[status]; ref != nil && ref.Value != nil && ref.Value.Description != nil {
				description = r.markdown(*ref.Value.Description)
			}
			fmt.Fprintf(buf, "| `%s` | %s |\n", status, cell(description))
		}
	}
}

func (r *renderer) properties(buf *bytes.Buffer, media *openapi3.MediaType) {
	if media == nil || media.Schema == nil || media.Schema.Value == nil || len(media.Schema.Value.Properties) == 0 {
		return
	}
	schema := media.Schema.Value
	required := make(map[string]bool)
	for _, name := range schema.Required {
		required[name] = true
	}

	buf.WriteString("| Property | Type | Required | Description |\n| --- | --- | --- | --- |\n")
	for _, name := range sortedKeys(schema.Properties) {
		prop := schema.Properties[name]
		description := ""
		if prop != nil && prop.Value != nil {
			description = r.markdown(prop.Value.Description)
		}
		fmt.Fprintf(buf, "| `%s` | %s | %s | %s |\n", name, schemaType(prop), yesNo(required[name]), cell(description))
	}
	buf.WriteString("\n")
}

func (r *renderer) index(index *Index) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeFrontmatter(buf, frontmatter{
		Title:       index.Title,
		Description: index.Description,
	}); err != nil {
		return nil, err
	}

	buf.WriteString(generatedComment + "\n")

	var tags []string
	byTag := make(map[string][]*Operation)
	for _, op := range index.Operations {
		if _, exist := byTag[op.Tag]; !exist {
			tags = append(tags, op.Tag)
		}
		byTag[op.Tag] = append(byTag[op.Tag], op)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		fmt.Fprintf(buf, "\n## %s\n\n", tag)
		for _, op := range byTag[tag] {
			route := op.Path
			if op.Webhook {
				route = op.Name
			}
			fmt.Fprintf(buf, "- [%s](%s) `%s %s`\n", op.Title(), utils.JoinURL(op.File), op.Method, route)
		}
	}

	return buf.Bytes(), nil
}

func writeFrontmatter(buf *bytes.Buffer, fm frontmatter) error {
	b, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}
	buf.WriteString("---\n")
	buf.Write(b)
	buf.WriteString("---\n\n")
	return nil
}

func schemaType(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return ""
	}
	if ref.Ref != "" {
		return ref.Ref[strings.LastIndex(ref.Ref, "/")+1:]
	}
	if ref.Value == nil || ref.Value.Type == nil {
		return ""
	}
	types := ref.Value.Type.Slice()
	if ref.Value.Type.Is(openapi3.TypeArray) && ref.Value.Items != nil {
		return "array of " + schemaType(ref.Value.Items)
	}
	return strings.Join(types, " \\| ")
}

func firstParagraph(s string) string {
	if idx := strings.Index(s, "\n\n"); idx > -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// cell makes s usable within a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.Join(strings.Fields(s), " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

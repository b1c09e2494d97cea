package openapi

import (
	"sort"
	"strings"
)

// Webhook is an operation of the OpenAPI 3.1 webhooks object.
type Webhook struct {
	Description string
	Method      string
	Name        string
	OperationID string
	Summary     string
	Tags        []string
}

// Webhooks reads the webhooks object from the sanitized tree since
// the parsed document model covers OpenAPI 3.0 only.
func (d *Document) Webhooks() []Webhook {
	hooks, ok := d.Raw["webhooks"].(map[string]interface{})
	if !ok {
		return nil
	}

	var result []Webhook
	for name, item := range hooks {
		pathItem, isMap := item.(map[string]interface{})
		if !isMap {
			continue
		}
		for method, value := range pathItem {
			if methodRank(strings.ToUpper(method)) == len(methodOrder) {
				continue
			}
			op, isOp := value.(map[string]interface{})
			if !isOp {
				continue
			}
			result = append(result, Webhook{
				Description: stringField(op, "description"),
				Method:      strings.ToUpper(method),
				Name:        name,
				OperationID: stringField(op, "operationId"),
				Summary:     stringField(op, "summary"),
				Tags:        stringList(op["tags"]),
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return methodRank(result[i].Method) < methodRank(result[j].Method)
	})
	return result
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringList(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var result []string
	for _, item := range list {
		if s, isString := item.(string); isString {
			result = append(result, s)
		}
	}
	return result
}

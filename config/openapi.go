package config

const (
	FamilyREST    = "rest"
	FamilyWebhook = "webhook"
)

// OpenAPI references one versioned OpenAPI document.
type OpenAPI struct {
	Name string `hcl:"name,label"`

	Description string `hcl:"description,optional"`
	// Family pins the api family, otherwise derived from the schema id.
	Family string `hcl:"family,optional"`
	File   string `hcl:"file"`
	// SchemaID defaults to the configured file path.
	SchemaID string `hcl:"schema_id,optional"`
	Title    string `hcl:"title,optional"`
	Version  string `hcl:"version,optional"`
}

func (o *OpenAPI) ID() string {
	if o.SchemaID != "" {
		return o.SchemaID
	}
	return o.File
}

type OpenAPIs []*OpenAPI

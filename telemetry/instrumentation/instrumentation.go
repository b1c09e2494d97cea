package instrumentation

const (
	Name   = "github.com/fieldnation/devportal/telemetry"
	Prefix = "devportal_"

	ArtifactBytes      = Prefix + "artifact_bytes"
	Errors             = Prefix + "errors_total"
	GeneratedFiles     = Prefix + "generated_files_total"
	LLMExports         = Prefix + "llms_exports_total"
	OpenAPIOperations  = Prefix + "openapi_operations"
	OpenAPIValidations = Prefix + "openapi_validation_warnings_total"
	Pages              = Prefix + "pages"
	SearchEntries      = Prefix + "search_entries"
	StageDuration      = Prefix + "stage_duration_seconds"
)

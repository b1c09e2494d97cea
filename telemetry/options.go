package telemetry

type Options struct {
	ServiceName    string
	Traces         bool
	TracesEndpoint string
}

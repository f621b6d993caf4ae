package telemetry

// Options configures trace collection. The fields are populated from the `TH_TELEMETRY_*`
// environment variables and `TRACEPARENT`.
type Options struct {
	// TraceExporter is one of `none`, `console`, `otlpHttp`, `otlpGrpc` or `http`.
	TraceExporter string
	// TraceExporterHTTPEndpoint is the endpoint used by the `http` exporter.
	TraceExporterHTTPEndpoint string
	// TraceParent links the spans to a parent trace, in W3C traceparent format.
	TraceParent string

	TraceExporterInsecureEndpoint bool
}

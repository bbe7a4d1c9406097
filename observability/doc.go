// Package observability wires OpenTelemetry tracing into RescuEdge.
//
// When tracing is enabled the TracerComponent installs an OTLP/HTTP
// exporter as the global provider during startup and flushes it on
// shutdown. Corridor handlers open spans with StartSpan; inbound HTTP
// requests get a server span from GinMiddleware.
package observability

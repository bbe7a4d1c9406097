// Package server is the RescuEdge HTTP server: a gin engine mounted on a
// ServeMux, served over HTTP/1.1 and h2c, wrapped in the standard
// middleware chain (recovery, request ID, CORS, body limit, request log).
//
// Successful corridor responses use the {meta, payload} envelope built by
// RespondOK and RespondCreated; failures use the errors.AppError body
// written by RespondWithError.
//
// System endpoints (server/endpoint): /health, /liveness, /readiness,
// /info, /version, /metrics and /metrics/prometheus.
package server

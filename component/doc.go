// Package component defines the lifecycle contract shared by every
// RescuEdge infrastructure piece (HTTP server, database, redis, tracing).
//
// Components are registered with a Registry, started in registration order
// and stopped in reverse order. A component that fails to start causes the
// ones already started to be stopped again before the error is returned.
package component

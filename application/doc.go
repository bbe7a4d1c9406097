// Package application is the RescuEdge process: its configuration, the
// startup routine that assembles components and routes on a bootstrap.App,
// and Main, which starts that runtime and confirms startup on stdout.
package application

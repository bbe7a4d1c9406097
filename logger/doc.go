// Package logger provides structured logging for RescuEdge using zerolog.
//
// Fields are passed as plain maps so call sites stay free of zerolog types:
//
//	log := logger.WithComponent("hospital")
//	log.Info("Seeded demo hospitals", logger.Fields("count", 6))
//
// Output defaults to stderr. Standard output is reserved for the process
// startup confirmation line.
package logger

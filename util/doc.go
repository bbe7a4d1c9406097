// Package util holds small parsing and formatting helpers shared by the
// HTTP layer and the command-line tools.
package util

// Command rescuedge runs the RescuEdge corridor service.
package main

import (
	"context"
	"os"

	"github.com/rapidrescue/rescuedge/application"
	"github.com/rapidrescue/rescuedge/logger"
)

func main() {
	if err := application.Main(context.Background(), os.Args[1:], os.Stdout, application.Launch); err != nil {
		logger.Error("RescuEdge stopped with error", logger.ErrorFields("main", err))
		os.Exit(1)
	}
}

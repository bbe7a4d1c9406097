package application

import (
	"context"
	"fmt"
	"io"

	"github.com/rapidrescue/rescuedge/logger"
)

// StartedMessage is written to stdout once startup has succeeded.
const StartedMessage = "RescuEdge Application has started successfully!"

// Root identifies the application being launched.
type Root struct {
	// Name selects the configuration files and names the service.
	Name string
	// ConfigName is an explicit config file path. Empty searches the
	// standard locations for Name.
	ConfigName string
	// EnvFile is an explicit .env path. Empty uses the .env next to the
	// resolved config file.
	EnvFile string
}

// RescuEdge is the root of the RescuEdge service.
var RescuEdge = Root{Name: "rescuedge"}

// Runtime is a started application that runs until shutdown.
type Runtime interface {
	Wait(ctx context.Context) error
}

// Launcher starts the runtime for root with the process arguments.
type Launcher func(ctx context.Context, root Root, args []string) (Runtime, error)

// Main starts the runtime once with args, prints StartedMessage after a
// successful start and then hands control to the runtime until shutdown.
// A failed start is returned without printing anything.
func Main(ctx context.Context, args []string, stdout io.Writer, launch Launcher) error {
	rt, err := launch(ctx, RescuEdge, args)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(stdout, StartedMessage); err != nil {
		logger.Warn("Could not write startup confirmation", logger.ErrorFields("confirm", err))
	}
	return rt.Wait(ctx)
}

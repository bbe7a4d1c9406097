// Package bootstrap is the runtime container for RescuEdge processes.
//
// An App owns the typed configuration, the logger and a component
// registry. Start brings every registered component up, runs hooks and
// configure callbacks, prints the startup summary and returns once the
// process is ready. Wait then blocks until SIGINT, SIGTERM or context
// cancellation and shuts everything down within the graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(serverComponent)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    return registerRoutes(a)
//	})
//	if err := app.Start(ctx); err != nil {
//	    return err
//	}
//	return app.Wait(ctx)
//
// Short-lived tools use RunTask instead, which runs a finite task between
// startup and shutdown.
package bootstrap

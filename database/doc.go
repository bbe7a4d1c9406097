// Package database provides a GORM-backed database component with connection
// pooling, health checks, transactions and auto-migration.
//
// The driver is chosen by configuration: "postgres" for deployments and
// "sqlite" for local runs and tests.
//
//	cfg := database.Config{Enabled: true, Driver: "postgres", DSN: "host=localhost user=rescuedge dbname=rescuedge"}
//	comp := database.NewComponent(cfg, log).WithAutoMigrate(&hospital.Record{})
//	app.RegisterComponent(comp)
//
// When Enabled is false the application keeps its in-memory stores and the
// component is never registered.
package database

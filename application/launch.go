package application

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rapidrescue/rescuedge/auth"
	"github.com/rapidrescue/rescuedge/bootstrap"
	"github.com/rapidrescue/rescuedge/database"
	"github.com/rapidrescue/rescuedge/hospital"
	"github.com/rapidrescue/rescuedge/observability"
	"github.com/rapidrescue/rescuedge/redis"
	"github.com/rapidrescue/rescuedge/scene"
	"github.com/rapidrescue/rescuedge/server"
	"github.com/rapidrescue/rescuedge/server/endpoint"
	"github.com/rapidrescue/rescuedge/server/middleware"
	"github.com/rapidrescue/rescuedge/util"
)

// APIPrefix is where the corridor routes are mounted.
const APIPrefix = "/api/corridor"

// App is the RescuEdge runtime.
type App = bootstrap.App[*Config]

// Launch loads configuration, assembles the application and starts it.
// It returns once the HTTP listener is bound and routes are registered.
func Launch(ctx context.Context, root Root, args []string) (Runtime, error) {
	app, err := New(root, args)
	if err != nil {
		return nil, err
	}
	if err := app.Start(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// New loads configuration for root and wires every component and route
// without starting anything.
func New(root Root, args []string, opts ...bootstrap.Option) (*App, error) {
	cfg, err := Load(root, args)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := wire(app); err != nil {
		return nil, err
	}
	return app, nil
}

func wire(app *App) error {
	cfg := app.Cfg
	log := app.Logger

	if cfg.Tracing.Enabled {
		tracer := observability.NewComponent(cfg.Tracing, observability.ServiceInfo{
			Name:        cfg.Name,
			Version:     cfg.Version,
			Environment: cfg.Environment,
		})
		if err := app.RegisterComponent(tracer); err != nil {
			return err
		}
	}

	var db *database.Component
	if cfg.Database.Enabled {
		db = database.NewComponent(cfg.Database, log).WithAutoMigrate(&hospital.Record{})
		if err := app.RegisterComponent(db); err != nil {
			return err
		}
	}

	var cache *redis.Component
	if cfg.Redis.Enabled {
		cache = redis.NewComponent(cfg.Redis, log)
		if err := app.RegisterComponent(cache); err != nil {
			return err
		}
	}

	srv := server.New(cfg.Server, log)
	if cfg.Tracing.Enabled {
		srv.GinEngine().Use(observability.GinMiddleware())
	}
	srv.ApplyDefaults(endpoint.ServiceInfo{Name: cfg.Name, Environment: cfg.Environment}, app.Components.HealthAll)

	hospDeps, sceneDeps := []string{"memory"}, []string{"memory"}
	if db != nil {
		hospDeps = []string{"database"}
	}
	if cache != nil {
		sceneDeps = []string{"redis"}
	}

	// The server is registered last so the stores it mounts are started.
	mount := func(ctx context.Context, srv *server.Server) error {
		var (
			hospitals hospital.Store = hospital.NewMemoryStore()
			scenes    scene.Store    = scene.NewMemoryStore()
		)
		if db != nil {
			hospitals = hospital.NewGormStore(db.DB())
		}
		if cache != nil {
			scenes = scene.NewRedisStore(cache.Client(), cfg.Redis.SceneTTLDuration())
		}

		svc := hospital.NewService(hospitals, log)
		if cfg.SeedHospitals() {
			if _, err := svc.Seed(ctx); err != nil {
				return err
			}
		}

		var protect []gin.HandlerFunc
		if cfg.Auth.Enabled() {
			tokens, err := auth.NewService(cfg.Auth)
			if err != nil {
				return fmt.Errorf("auth: %w", err)
			}
			protect = append(protect, middleware.Auth(tokens))
		}

		api := srv.GinEngine().Group(APIPrefix, middleware.RateLimit(cfg.Server.RateLimit))
		hospital.NewHandler(svc).RegisterRoutes(api, protect...)
		scene.NewHandler(scenes, log).RegisterRoutes(api)
		return nil
	}
	if err := app.RegisterComponent(server.NewComponent(srv).BeforeServe(mount)); err != nil {
		return err
	}

	app.OnConfigure(func(ctx context.Context, app *App) error {
		app.Summary.TrackBusinessComponent("HospitalRegistry", "service", hospDeps...)
		app.Summary.TrackBusinessComponent("SceneTracker", "handler", sceneDeps...)
		trackAlerting(app)
		return nil
	})
	return nil
}

// trackAlerting reports whether emergency SMS can be sent. Alerting is
// optional for the service, so missing credentials are only logged.
func trackAlerting(app *App) {
	twilio := app.Cfg.Twilio
	details := "not configured"
	if twilio.Configured() {
		details = fmt.Sprintf("account=%s from=%s", util.MaskSecret(twilio.AccountSID, 6), twilio.FromNumber)
	}
	app.Summary.TrackInfrastructure("Twilio SMS", "alerting", details, 0)

	fields := map[string]interface{}{"configured": twilio.Configured()}
	if twilio.AccountSID != "" {
		fields["account"] = util.MaskSecret(twilio.AccountSID, 6)
	}
	app.Logger.Info("Emergency alerting", fields)
}

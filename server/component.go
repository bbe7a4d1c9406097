package server

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rapidrescue/rescuedge/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*Component)(nil)
	_ component.Describable   = (*Component)(nil)
	_ component.RouteProvider = (*Component)(nil)
)

// systemPaths are listed after API routes in the startup summary.
var systemPaths = map[string]bool{
	"/health":             true,
	"/liveness":           true,
	"/readiness":          true,
	"/info":               true,
	"/version":            true,
	"/metrics":            true,
	"/metrics/prometheus": true,
}

// MountFunc registers routes on the server before it accepts connections.
type MountFunc func(ctx context.Context, s *Server) error

// Component adapts a Server to the component lifecycle.
type Component struct {
	server *Server
	mounts []MountFunc
}

// NewComponent returns a lifecycle component for s.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Server returns the wrapped server.
func (sc *Component) Server() *Server { return sc.server }

func (sc *Component) Name() string { return componentName }

// BeforeServe adds fn to the mounts run by Start ahead of the listener.
// Components registered earlier are already started when fn runs, and no
// request is served until every mount has returned.
func (sc *Component) BeforeServe(fn MountFunc) *Component {
	sc.mounts = append(sc.mounts, fn)
	return sc
}

func (sc *Component) Start(ctx context.Context) error {
	for _, mount := range sc.mounts {
		if err := mount(ctx, sc.server); err != nil {
			return fmt.Errorf("mount routes: %w", err)
		}
	}
	sc.mounts = nil
	return sc.server.Start(ctx)
}

func (sc *Component) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

func (sc *Component) Health(ctx context.Context) component.Health {
	if !sc.server.running() {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "not listening"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

func (sc *Component) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: sc.server.Addr(),
		Port:    sc.server.config.Port,
	}
}

// Routes lists gin routes for the startup summary: API routes first by
// path, then system routes.
func (sc *Component) Routes() []component.Route {
	ginRoutes := sc.server.engine.Routes()
	sort.SliceStable(ginRoutes, func(i, j int) bool {
		iSys, jSys := systemPaths[ginRoutes[i].Path], systemPaths[ginRoutes[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return methodOrder(ginRoutes[i].Method) < methodOrder(ginRoutes[j].Method)
	})

	routes := make([]component.Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
		})
	}
	return routes
}

// formatHandlerName shortens gin's handler names:
//
//	github.com/rapidrescue/rescuedge/hospital.(*Handler).Nearest-fm -> Handler.Nearest
//	github.com/rapidrescue/rescuedge/server/endpoint.Health.func1   -> health
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	if strings.Contains(name, ".func") {
		parts := strings.Split(name, ".")
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				return strings.ToLower(parts[i])
			}
		}
	}

	if pkg, rest, ok := strings.Cut(name, "."); ok && rest != "" && strings.ToLower(pkg) == pkg {
		return rest
	}
	return name
}

func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	case "PUT":
		return 2
	case "PATCH":
		return 3
	case "DELETE":
		return 4
	default:
		return 5
	}
}

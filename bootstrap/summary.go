package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rapidrescue/rescuedge/component"
)

// InfrastructureInfo describes one infrastructure component in the summary.
type InfrastructureInfo struct {
	Name    string
	Type    string
	Details string
	Port    int
}

// BusinessComponentInfo represents a business-layer piece (service, store, handler).
type BusinessComponentInfo struct {
	Name         string
	Type         string
	Dependencies []string
}

// RouteInfo represents a registered HTTP route.
type RouteInfo struct {
	Method  string
	Path    string
	Handler string
}

// Summary collects what the process started with and renders it once
// startup completes.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	infrastructure  []InfrastructureInfo
	business        []BusinessComponentInfo
}

// NewSummary creates a new startup summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackInfrastructure adds an infrastructure entry that is not a registered component.
func (s *Summary) TrackInfrastructure(name, componentType, details string, port int) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{
		Name: name, Type: componentType, Details: details, Port: port,
	})
}

// TrackBusinessComponent records a business-layer component.
func (s *Summary) TrackBusinessComponent(name, componentType string, dependencies ...string) {
	s.business = append(s.business, BusinessComponentInfo{
		Name: name, Type: componentType, Dependencies: dependencies,
	})
}

// collect merges tracked entries with what registered components report
// through component.Describable and component.RouteProvider.
func (s *Summary) collect(registry *component.Registry) ([]InfrastructureInfo, []RouteInfo) {
	infra := append([]InfrastructureInfo(nil), s.infrastructure...)
	var routes []RouteInfo
	if registry == nil {
		return infra, routes
	}
	for _, c := range registry.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			name := desc.Name
			if name == "" {
				name = c.Name()
			}
			infra = append(infra, InfrastructureInfo{Name: name, Type: desc.Type, Details: desc.Details, Port: desc.Port})
		}
		if rp, ok := c.(component.RouteProvider); ok {
			for _, r := range rp.Routes() {
				routes = append(routes, RouteInfo{Method: r.Method, Path: r.Path, Handler: r.Handler})
			}
		}
	}
	return infra, routes
}

// Render writes the summary to w, including live health from the registry.
func (s *Summary) Render(w io.Writer, registry *component.Registry) {
	infra, routes := s.collect(registry)

	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if len(infra) > 0 {
		fmt.Fprintf(w, "\n🏗️  Infrastructure\n")
		for i, inf := range infra {
			details := inf.Details
			if inf.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, inf.Port)
			}
			fmt.Fprintf(w, "   %s %s [%s]: %s\n", treePrefix(i, len(infra)), inf.Name, inf.Type, details)
		}
	}

	if len(s.business) > 0 {
		fmt.Fprintf(w, "\n💼 Business Layer\n")
		for i, b := range s.business {
			fmt.Fprintf(w, "   %s %s [%s]", treePrefix(i, len(s.business)), b.Name, b.Type)
			if len(b.Dependencies) > 0 {
				fmt.Fprintf(w, " → %s", strings.Join(b.Dependencies, ", "))
			}
			fmt.Fprintln(w)
		}
	}

	if len(routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes (%d)\n", len(routes))
		for i, r := range routes {
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", treePrefix(i, len(routes)), r.Method, r.Path, r.Handler)
		}
	}

	if registry != nil {
		health := registry.HealthAll(context.Background())
		if len(health) > 0 {
			fmt.Fprintf(w, "\n🏥 Health Check\n")
			for i, h := range health {
				msg := ""
				if h.Message != "" {
					msg = " (" + h.Message + ")"
				}
				fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(health)), healthStatusIcon(h.Status), h.Name, h.Status, msg)
			}
		}
	}
	fmt.Fprintln(w)
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}

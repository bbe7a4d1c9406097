package observability

import (
	"context"
	"fmt"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/rapidrescue/rescuedge/component"
)

var (
	_ component.Component   = (*TracerComponent)(nil)
	_ component.Describable = (*TracerComponent)(nil)
)

// TracerComponent owns the tracer provider's lifecycle.
type TracerComponent struct {
	cfg Config
	svc ServiceInfo

	mu sync.RWMutex
	tp *sdktrace.TracerProvider
}

// NewComponent creates a tracing component.
func NewComponent(cfg Config, svc ServiceInfo) *TracerComponent {
	cfg.ApplyDefaults()
	return &TracerComponent{cfg: cfg, svc: svc}
}

func (t *TracerComponent) Name() string { return "tracing" }

func (t *TracerComponent) Start(ctx context.Context) error {
	tp, err := InitTracer(ctx, t.cfg, t.svc)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.tp = tp
	t.mu.Unlock()
	return nil
}

// Stop flushes pending spans and shuts the provider down.
func (t *TracerComponent) Stop(ctx context.Context) error {
	t.mu.Lock()
	tp := t.tp
	t.tp = nil
	t.mu.Unlock()
	if tp == nil {
		return nil
	}
	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer shutdown: %w", err)
	}
	return nil
}

func (t *TracerComponent) Health(ctx context.Context) component.Health {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.tp == nil {
		return component.Health{Name: t.Name(), Status: component.StatusUnhealthy, Message: "tracer not started"}
	}
	return component.Health{Name: t.Name(), Status: component.StatusHealthy}
}

func (t *TracerComponent) Describe() component.Description {
	return component.Description{
		Name:    "Tracing",
		Type:    "otlp",
		Details: fmt.Sprintf("%s sample=%.2f", t.cfg.Endpoint, t.cfg.SampleRate),
	}
}

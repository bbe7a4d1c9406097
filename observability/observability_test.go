package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/rapidrescue/rescuedge/component"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := (&Config{SampleRate: 1.5}).Validate(); err == nil {
		t.Error("expected sample rate above 1 to fail")
	}
	if err := (&Config{SampleRate: 0.25}).Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("rate %v: expected %s, got %s", tc.rate, tc.want, got)
		}
	}
}

func TestStartSpanAttributesAndErrors(t *testing.T) {
	rec := installRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanInitCorridor)
	SetSpanAttribute(ctx, AttrAccidentID, "ACC-1")
	SetSpanAttribute(ctx, AttrResultSize, 3)
	SetSpanError(ctx, errors.New("redis down"))
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != SpanInitCorridor {
		t.Errorf("unexpected span name %q", s.Name())
	}
	attrs := map[string]string{}
	for _, kv := range s.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[AttrAccidentID] != "ACC-1" || attrs[AttrResultSize] != "3" {
		t.Errorf("unexpected attributes %v", attrs)
	}
	if len(s.Events()) != 1 {
		t.Errorf("expected recorded error event, got %d events", len(s.Events()))
	}
}

func TestSetSpanAttributeWithoutSpan(t *testing.T) {
	// Must not panic on a context without a recording span.
	SetSpanAttribute(context.Background(), AttrHospitalID, "HOSP-KEM")
	SetSpanError(context.Background(), errors.New("ignored"))
}

func TestGinMiddleware(t *testing.T) {
	rec := installRecorder(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/corridor/hospitals/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/corridor/hospitals/HOSP-KEM", http.NoBody))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "GET /api/corridor/hospitals/:id" {
		t.Errorf("expected route template in span name, got %q", spans[0].Name())
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("expected error status for 500, got %v", spans[1].Status().Code)
	}
}

func TestTracerComponentLifecycle(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	c := NewComponent(Config{Endpoint: "127.0.0.1:4318", Insecure: true}, ServiceInfo{Name: "rescuedge", Version: "test"})
	if c.Health(context.Background()).Status != component.StatusUnhealthy {
		t.Error("expected unhealthy before start")
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if c.Health(context.Background()).Status != component.StatusHealthy {
		t.Error("expected healthy after start")
	}
	if c.Describe().Type != "otlp" {
		t.Errorf("unexpected description %+v", c.Describe())
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop should be a no-op, got %v", err)
	}
}

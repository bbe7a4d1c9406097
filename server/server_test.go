package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rapidrescue/rescuedge/component"
	apperrors "github.com/rapidrescue/rescuedge/errors"
	"github.com/rapidrescue/rescuedge/logger"
	"github.com/rapidrescue/rescuedge/server/endpoint"
	"github.com/rapidrescue/rescuedge/server/middleware"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := Config{Host: "127.0.0.1", Port: -1}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	s := New(cfg, logger.Nop())
	s.ApplyDefaults(endpoint.ServiceInfo{Name: "rescuedge", Environment: "test"}, nil)
	return s
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Port != 3000 || cfg.MaxBodySize != "1MB" || cfg.Host != "0.0.0.0" {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"port too large", Config{Port: 70000}},
		{"negative timeout", Config{Port: 3000, ReadTimeout: -1}},
		{"negative rate limit", Config{Port: 3000, RateLimit: middleware.RateLimitConfig{RequestsPerMinute: -5}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvelopeAndErrors(t *testing.T) {
	s := newTestServer(t)
	s.GinEngine().GET("/api/corridor/ok", func(c *gin.Context) {
		RespondOK(c, gin.H{"total": 6})
	})
	s.GinEngine().GET("/api/corridor/missing", func(c *gin.Context) {
		RespondWithError(c, apperrors.NotFound("Hospital", "HOSP-X"))
	})
	s.GinEngine().GET("/api/corridor/broken", func(c *gin.Context) {
		RespondWithError(c, errors.New("disk on fire"))
	})

	h := s.Handler()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/corridor/ok", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, "abc")
	h.ServeHTTP(rr, req)

	var env struct {
		Meta    Meta           `json:"meta"`
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if env.Meta.RequestID != "REQ-abc" || env.Meta.Env != "test" || env.Meta.Version != "1.0" {
		t.Errorf("unexpected meta %+v", env.Meta)
	}
	if env.Meta.Timestamp == "" {
		t.Error("expected timestamp")
	}
	if env.Payload["total"] != float64(6) {
		t.Errorf("unexpected payload %v", env.Payload)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/corridor/missing", http.NoBody))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/corridor/broken", http.NoBody))
	var errBody apperrors.ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &errBody)
	if rr.Code != http.StatusInternalServerError || errBody.Error.Code != apperrors.ErrCodeInternal {
		t.Errorf("expected generic 500, got %d %+v", rr.Code, errBody)
	}
}

func TestComponentLifecycle(t *testing.T) {
	s := newTestServer(t)
	sc := NewComponent(s)

	if sc.Health(context.Background()).Status != component.StatusUnhealthy {
		t.Error("expected unhealthy before start")
	}
	if err := sc.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = sc.Stop(context.Background()) })

	if sc.Health(context.Background()).Status != component.StatusHealthy {
		t.Error("expected healthy after start")
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/health", s.Addr()))
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.HeaderRequestID) == "" {
		t.Error("expected request id header from middleware chain")
	}
}

func TestComponentMountsBeforeServing(t *testing.T) {
	s := newTestServer(t)
	var listeningDuringMount bool
	sc := NewComponent(s).BeforeServe(func(_ context.Context, s *Server) error {
		listeningDuringMount = s.running()
		s.GinEngine().GET("/api/corridor/hospitals", func(c *gin.Context) { RespondOK(c, "mounted") })
		return nil
	})

	if err := sc.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = sc.Stop(context.Background()) })

	if listeningDuringMount {
		t.Error("server was listening while routes were mounted")
	}
	resp, err := http.Get(fmt.Sprintf("http://%s/api/corridor/hospitals", s.Addr()))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 from mounted route, got %d", resp.StatusCode)
	}
}

func TestComponentMountFailureSkipsListen(t *testing.T) {
	s := newTestServer(t)
	boom := errors.New("store unavailable")
	sc := NewComponent(s).BeforeServe(func(context.Context, *Server) error { return boom })

	if err := sc.Start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Start = %v, want %v", err, boom)
	}
	if s.running() {
		_ = sc.Stop(context.Background())
		t.Error("server should not listen after a failed mount")
	}
}

func TestComponentStartBindFailure(t *testing.T) {
	first := newTestServer(t)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() { _ = first.Stop(context.Background()) })

	cfg := Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	second := New(cfg, logger.Nop())
	second.httpServer.Addr = first.Addr()
	if err := second.Start(context.Background()); err == nil {
		_ = second.Stop(context.Background())
		t.Fatal("expected bind error on an occupied port")
	}
}

func TestRoutesOrdering(t *testing.T) {
	s := newTestServer(t)
	s.GinEngine().POST("/api/corridor/init", func(c *gin.Context) {})
	s.GinEngine().GET("/api/corridor/hospitals", func(c *gin.Context) {})

	routes := NewComponent(s).Routes()
	if len(routes) < 3 {
		t.Fatalf("expected routes, got %v", routes)
	}
	if routes[0].Path != "/api/corridor/hospitals" || routes[1].Path != "/api/corridor/init" {
		t.Errorf("expected API routes first, got %v", routes[:2])
	}
	if !systemPaths[routes[len(routes)-1].Path] {
		t.Errorf("expected system route last, got %v", routes[len(routes)-1])
	}
}

func TestFormatHandlerName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"github.com/rapidrescue/rescuedge/hospital.(*Handler).Nearest-fm", "Handler.Nearest"},
		{"github.com/rapidrescue/rescuedge/server/endpoint.Health.func1", "health"},
		{"main.main", "main"},
	}
	for _, tc := range tests {
		if got := formatHandlerName(tc.in); got != tc.want {
			t.Errorf("formatHandlerName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

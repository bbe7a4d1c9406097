package scene

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	apperrors "github.com/rapidrescue/rescuedge/errors"
	"github.com/rapidrescue/rescuedge/geo"
	"github.com/rapidrescue/rescuedge/logger"
	"github.com/rapidrescue/rescuedge/redis"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, logger.Nop())
	h.now = func() time.Time { return fixedNow }
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/corridor"))
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/corridor/init", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"ok", `{"payload":{"accidentId":"ACC-1","location":{"lat":18.52,"lng":73.85}}}`, 200, ""},
		{"missing accidentId", `{"payload":{"location":{"lat":18.52,"lng":73.85}}}`, 400, "Missing accidentId or location"},
		{"blank accidentId", `{"payload":{"accidentId":"  ","location":{"lat":1,"lng":2}}}`, 400, "Missing accidentId or location"},
		{"missing location", `{"payload":{"accidentId":"ACC-1"}}`, 400, "Missing accidentId or location"},
		{"missing payload", `{"accidentId":"ACC-1"}`, 400, "Missing accidentId or location"},
		{"not json", `accident`, 400, "Missing accidentId or location"},
		{"location out of range", `{"payload":{"accidentId":"ACC-2","location":{"lat":123,"lng":73.85}}}`, 400, "location.lat: must be a latitude between -90 and 90"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewMemoryStore()
			rr := post(newRouter(store), tc.body)
			if rr.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tc.wantCode, rr.Body.String())
			}

			if tc.wantMsg != "" {
				var errResp apperrors.ErrorResponse
				_ = json.Unmarshal(rr.Body.Bytes(), &errResp)
				if errResp.Error.Message != tc.wantMsg {
					t.Errorf("message = %q, want %q", errResp.Error.Message, tc.wantMsg)
				}
				return
			}

			var env struct {
				Payload initResponse `json:"payload"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if env.Payload.AccidentID != "ACC-1" || env.Payload.Status != "CORRIDOR_INITIALIZED" {
				t.Errorf("unexpected payload %+v", env.Payload)
			}

			s, err := store.Get(context.Background(), "ACC-1")
			if err != nil {
				t.Fatalf("scene not stored: %v", err)
			}
			if s.Location != (geo.Point{Lat: 18.52, Lng: 73.85}) || !s.InitializedAt.Equal(fixedNow) {
				t.Errorf("unexpected scene %+v", s)
			}
		})
	}
}

func TestGetScene(t *testing.T) {
	store := NewMemoryStore()
	r := newRouter(store)
	post(r, `{"payload":{"accidentId":"ACC-9","location":{"lat":19.076,"lng":72.8777}}}`)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/corridor/scenes/ACC-9", http.NoBody))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"accidentId":"ACC-9"`) {
		t.Errorf("unexpected response %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/corridor/scenes/ACC-404", http.NoBody))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestRedisStore(t *testing.T) {
	mini := miniredis.RunT(t)
	client, err := redis.New(redis.Config{Enabled: true, Addr: mini.Addr()}, logger.Nop())
	if err != nil {
		t.Fatalf("redis.New failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	if _, err := store.Get(ctx, "ACC-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}

	rr := post(newRouter(store), `{"payload":{"accidentId":"ACC-1","location":{"lat":18.5,"lng":73.8}}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("init status = %d", rr.Code)
	}

	if !mini.Exists("rescuedge:scene:ACC-1") {
		t.Fatal("scene not written under the rescuedge:scene prefix")
	}
	if ttl := mini.TTL("rescuedge:scene:ACC-1"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	s, err := store.Get(ctx, "ACC-1")
	if err != nil || s.Location.Lat != 18.5 {
		t.Errorf("Get = %+v, %v", s, err)
	}

	mini.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, "ACC-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired scene still present: %v", err)
	}
}

func TestInit_StoreFailure(t *testing.T) {
	mini := miniredis.RunT(t)
	client, _ := redis.New(redis.Config{Enabled: true, Addr: mini.Addr(), MaxRetries: 1, DialTimeout: "100ms"}, logger.Nop())
	t.Cleanup(func() { _ = client.Close() })
	mini.Close()

	rr := post(newRouter(NewRedisStore(client, 0)), `{"payload":{"accidentId":"ACC-1","location":{"lat":1,"lng":2}}}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}

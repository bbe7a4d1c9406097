package alert

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	apperrors "github.com/rapidrescue/rescuedge/errors"
	"github.com/rapidrescue/rescuedge/geo"
	"github.com/rapidrescue/rescuedge/logger"
	"github.com/rapidrescue/rescuedge/metrics"
)

var mumbai = geo.Point{Lat: 19.0760, Lng: 72.8777}

func testConfig(baseURL string) Config {
	return Config{
		AccountSID:  "AC123",
		AuthToken:   "secret",
		FromNumber:  "+15005550006",
		BaseURL:     baseURL,
		MaxAttempts: 2,
	}
}

func TestMessage(t *testing.T) {
	want := "🚨 EMERGENCY ALERT!\n\nLocation: https://www.google.com/maps?q=19.076,72.8777\n\nImmediate assistance required."
	if got := Message(mumbai); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestNewTwilioSenderMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"all missing", Config{}, []string{"account_sid", "auth_token", "phone_number"}},
		{"token missing", Config{AccountSID: "AC1", FromNumber: "+15005550006"}, []string{"auth_token"}},
		{"blank number", Config{AccountSID: "AC1", AuthToken: "t", FromNumber: "  "}, []string{"phone_number"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTwilioSender(tt.cfg, logger.Nop())
			appErr, ok := apperrors.AsAppError(err)
			if !ok || appErr.Code != apperrors.ErrCodeConfiguration {
				t.Fatalf("expected configuration error, got %v", err)
			}
			fields, _ := appErr.Details["fields"].([]string)
			if len(fields) != len(tt.want) {
				t.Fatalf("fields = %v, want %v", fields, tt.want)
			}
			for i := range fields {
				if fields[i] != tt.want[i] {
					t.Errorf("fields = %v, want %v", fields, tt.want)
				}
			}
		})
	}
}

func TestTwilioSenderSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/2010-04-01/Accounts/AC123/Messages.json" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if u, p, ok := r.BasicAuth(); !ok || u != "AC123" || p != "secret" {
			t.Errorf("basic auth = %q/%q", u, p)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("To") != "+918767726477" || r.PostForm.Get("From") != "+15005550006" {
			t.Errorf("form = %v", r.PostForm)
		}
		if r.PostForm.Get("Body") != Message(mumbai) {
			t.Errorf("Body = %q", r.PostForm.Get("Body"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM42","status":"queued","from":"+15005550006","to":"+918767726477"}`))
	}))
	defer srv.Close()

	sender, err := NewTwilioSender(testConfig(srv.URL), logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	receipt, err := sender.Send(context.Background(), "+918767726477", Message(mumbai))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	want := Receipt{SID: "SM42", Status: "queued", From: "+15005550006", To: "+918767726477"}
	if *receipt != want {
		t.Errorf("receipt = %+v, want %+v", *receipt, want)
	}
}

func TestTwilioSenderErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantCalls int32
		retryable bool
	}{
		{"rejected number", http.StatusBadRequest, `{"code":21211,"message":"Invalid 'To' Phone Number"}`, 1, false},
		{"bad credentials", http.StatusUnauthorized, `{"code":20003,"message":"Authenticate"}`, 1, false},
		{"gateway down", http.StatusServiceUnavailable, `{}`, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			sender, err := NewTwilioSender(testConfig(srv.URL), logger.Nop())
			if err != nil {
				t.Fatal(err)
			}
			_, err = sender.Send(context.Background(), "+918767726477", "hi")
			appErr, ok := apperrors.AsAppError(err)
			if !ok || appErr.Code != apperrors.ErrCodeExternalService {
				t.Fatalf("expected external service error, got %v", err)
			}
			if appErr.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", appErr.Retryable, tt.retryable)
			}
			if appErr.Details["status"] != tt.status {
				t.Errorf("status detail = %v", appErr.Details["status"])
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}

type fakeSender struct {
	to, body string
	err      error
}

func (f *fakeSender) Send(_ context.Context, to, body string) (*Receipt, error) {
	f.to, f.body = to, body
	if f.err != nil {
		return nil, f.err
	}
	return &Receipt{SID: "SM1", Status: "queued", To: to}, nil
}

func TestAlerterSendEmergency(t *testing.T) {
	sent := metrics.AlertsSent.WithLabelValues("sent")
	failed := metrics.AlertsSent.WithLabelValues("failed")

	t.Run("sends formatted message", func(t *testing.T) {
		before := testutil.ToFloat64(sent)
		f := &fakeSender{}
		receipt, err := NewAlerter(f, logger.Nop()).SendEmergency(context.Background(), "+918767726477", mumbai)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.SID != "SM1" || f.body != Message(mumbai) || f.to != "+918767726477" {
			t.Errorf("receipt=%+v sender=%+v", receipt, f)
		}
		if testutil.ToFloat64(sent)-before != 1 {
			t.Error("sent counter not incremented")
		}
	})

	t.Run("validates before sending", func(t *testing.T) {
		f := &fakeSender{}
		_, err := NewAlerter(f, logger.Nop()).SendEmergency(context.Background(), "8767726477", geo.Point{Lat: 91, Lng: 0})
		appErr, ok := apperrors.AsAppError(err)
		if !ok || appErr.Code != apperrors.ErrCodeInvalidInput {
			t.Fatalf("expected validation error, got %v", err)
		}
		if f.to != "" {
			t.Error("sender called for invalid input")
		}
	})

	t.Run("counts failures", func(t *testing.T) {
		before := testutil.ToFloat64(failed)
		f := &fakeSender{err: errors.New("boom")}
		if _, err := NewAlerter(f, logger.Nop()).SendEmergency(context.Background(), "+918767726477", mumbai); err == nil {
			t.Fatal("expected error")
		}
		if testutil.ToFloat64(failed)-before != 1 {
			t.Error("failed counter not incremented")
		}
	})
}

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/rapidrescue/rescuedge/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--config=testdata/config.yml"}, args...))
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setCredentials(t *testing.T, baseURL string) {
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15005550006")
	t.Setenv("TWILIO_BASE_URL", baseURL)
}

func TestFlags(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	for name, want := range map[string]string{"to": "", "lat": "19.076", "lng": "72.8777", "config": "", "env-file": ""} {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("missing flag --%s", name)
		}
		if f.DefValue != want {
			t.Errorf("--%s default = %q, want %q", name, f.DefValue, want)
		}
	}
}

func TestSendsAlert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(r.PostForm.Get("Body"), "https://www.google.com/maps?q=18.52,73.85") {
			t.Errorf("Body = %q", r.PostForm.Get("Body"))
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM9","status":"queued","from":"+15005550006","to":"+918767726477"}`))
	}))
	defer srv.Close()
	setCredentials(t, srv.URL)

	out, err := execute(t, "--to=+918767726477", "--lat=18.52", "--lng=73.85")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{
		"✅ SMS sent successfully!",
		"Message SID: SM9",
		"Status: queued",
		"To: +918767726477",
		"Map Link: https://www.google.com/maps?q=18.52,73.85",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSendsAlertWithEnvFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ACENV" || pass != "from-dotenv" {
			t.Errorf("basic auth = %q/%q", user, pass)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM10","status":"queued","from":"+15005550006","to":"+918767726477"}`))
	}))
	defer srv.Close()

	// godotenv never overrides variables that are already set.
	for _, key := range []string{"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_PHONE_NUMBER", "TWILIO_BASE_URL"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	envFile := filepath.Join(t.TempDir(), "twilio.env")
	content := "TWILIO_ACCOUNT_SID=ACENV\nTWILIO_AUTH_TOKEN=from-dotenv\nTWILIO_PHONE_NUMBER=+15005550006\nTWILIO_BASE_URL=" + srv.URL + "\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--to=+918767726477", "--env-file="+envFile)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Message SID: SM10") {
		t.Errorf("output missing SID:\n%s", out)
	}
}

func TestRejectsInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing recipient", nil},
		{"local number", []string{"--to=8767726477"}},
		{"latitude out of range", []string{"--to=+918767726477", "--lat=95"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if out != "" {
				t.Errorf("unexpected output %q", out)
			}
		})
	}
}

func TestMissingCredentials(t *testing.T) {
	setCredentials(t, "http://127.0.0.1:1")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	out, err := execute(t, "--to=+918767726477")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeConfiguration {
		t.Fatalf("err = %v, want configuration error", err)
	}
	if out != "" {
		t.Errorf("request attempted: %q", out)
	}
}

func TestGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number"}`))
	}))
	defer srv.Close()
	setCredentials(t, srv.URL)

	out, err := execute(t, "--to=+918767726477")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeExternalService {
		t.Fatalf("err = %v, want external service error", err)
	}
	if strings.Contains(out, "sent successfully") {
		t.Errorf("success reported: %s", out)
	}
}

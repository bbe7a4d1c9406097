package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew_RetryableDetection(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeTimeout, true},
		{ErrCodeServiceUnavailable, true},
		{ErrCodeExternalService, true},
		{ErrCodeNotFound, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg", http.StatusTeapot)
			if err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v for %s", tc.retryable, tc.code)
			}
			if err.HTTPStatus != http.StatusTeapot {
				t.Errorf("expected status to be kept, got %d", err.HTTPStatus)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("Hospital", "HOSP-KEM")
	if err.Code != ErrCodeNotFound || err.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err.Message != "Hospital not found" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["id"] != "HOSP-KEM" {
		t.Errorf("expected id detail, got %v", err.Details["id"])
	}

	if _, ok := NotFound("Hospital", "").Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestInternal_HidesCause(t *testing.T) {
	cause := fmt.Errorf("db connection lost")
	err := Internal(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	body := err.ToResponse()
	if strings.Contains(body.Error.Message, "db connection lost") {
		t.Error("cause must not leak into the client message")
	}
}

func TestErrorString(t *testing.T) {
	if got := Validation("bad").Error(); got != "INVALID_INPUT: bad" {
		t.Errorf("unexpected Error(): %q", got)
	}
	got := DatabaseError(fmt.Errorf("timeout")).Error()
	if !strings.Contains(got, "cause: timeout") {
		t.Errorf("expected cause in Error(), got %q", got)
	}
}

func TestMissingField(t *testing.T) {
	err := MissingField("Missing accidentId or location", "accidentId", "location")
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	fields, ok := err.Details["fields"].([]string)
	if !ok || len(fields) != 2 {
		t.Errorf("expected two fields in details, got %v", err.Details["fields"])
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Unauthorized(""))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find wrapped AppError")
	}
	if appErr.Message != "Authentication required." {
		t.Errorf("expected default message, got %q", appErr.Message)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error not to convert")
	}
}

func TestWithDetail(t *testing.T) {
	err := InvalidInput("bedsAvailable", "bedsAvailable (non-negative number) required").WithDetail("got", -1)
	if err.Details["field"] != "bedsAvailable" || err.Details["got"] != -1 {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

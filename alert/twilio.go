package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/rapidrescue/rescuedge/errors"
	"github.com/rapidrescue/rescuedge/httpclient"
	"github.com/rapidrescue/rescuedge/logger"
)

// Receipt is what the gateway reports for an accepted message.
type Receipt struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// Sender delivers an SMS body to a phone number.
type Sender interface {
	Send(ctx context.Context, to, body string) (*Receipt, error)
}

// TwilioSender sends SMS through the Twilio Messages API.
type TwilioSender struct {
	client *httpclient.Client
	cfg    Config
	log    *logger.Logger
}

var _ Sender = (*TwilioSender)(nil)

// NewTwilioSender validates cfg and builds a sender. Missing credentials
// fail here, before any request is made.
func NewTwilioSender(cfg Config, log *logger.Logger) (*TwilioSender, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = log.WithComponent("twilio")

	retry := httpclient.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxAttempts
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn("SMS send failed, retrying", map[string]interface{}{
			"attempt":             attempt,
			"backoff":             backoff.String(),
			logger.FieldError:     err.Error(),
			logger.FieldOperation: "twilio.send",
		})
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.TimeoutDuration(),
		Auth:    httpclient.BasicAuth(cfg.AccountSID, cfg.AuthToken),
		Headers: map[string]string{"Accept": "application/json"},
		Retry:   retry,
	})
	if err != nil {
		return nil, fmt.Errorf("twilio client: %w", err)
	}
	return &TwilioSender{client: client, cfg: cfg, log: log}, nil
}

// twilioError is the body Twilio returns for rejected requests.
type twilioError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
}

// Send posts the message and returns the gateway receipt.
func (s *TwilioSender) Send(ctx context.Context, to, body string) (*Receipt, error) {
	resp, err := s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/2010-04-01/Accounts/" + url.PathEscape(s.cfg.AccountSID) + "/Messages.json",
		Body: url.Values{
			"To":   {to},
			"From": {s.cfg.FromNumber},
			"Body": {body},
		},
	})
	if err != nil {
		return nil, s.wrapError(resp, err)
	}

	var receipt Receipt
	if err := json.Unmarshal(resp.Body, &receipt); err != nil {
		return nil, apperrors.ExternalServiceError("twilio", fmt.Errorf("decode receipt: %w", err))
	}
	return &receipt, nil
}

func (s *TwilioSender) wrapError(resp *httpclient.Response, err error) error {
	appErr := apperrors.ExternalServiceError("twilio", err)
	var httpErr *httpclient.Error
	if errors.As(err, &httpErr) {
		appErr.Retryable = httpErr.Retryable
		if httpErr.StatusCode > 0 {
			appErr.WithDetail("status", httpErr.StatusCode)
		}
	}
	if resp != nil {
		var te twilioError
		if json.Unmarshal(resp.Body, &te) == nil && te.Message != "" {
			appErr.WithDetail("twilio_code", te.Code)
			appErr.WithDetail("twilio_message", te.Message)
		}
	}
	return appErr
}

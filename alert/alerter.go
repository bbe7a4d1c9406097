package alert

import (
	"context"
	"time"

	"github.com/rapidrescue/rescuedge/geo"
	"github.com/rapidrescue/rescuedge/logger"
	"github.com/rapidrescue/rescuedge/metrics"
	"github.com/rapidrescue/rescuedge/observability"
	"github.com/rapidrescue/rescuedge/validation"
)

// Alerter validates, formats and sends emergency alerts.
type Alerter struct {
	sender Sender
	log    *logger.Logger
}

// NewAlerter creates an Alerter that delivers through sender.
func NewAlerter(sender Sender, log *logger.Logger) *Alerter {
	return &Alerter{sender: sender, log: log.WithComponent("alert")}
}

// SendEmergency texts the emergency message for location to the given
// phone number.
func (a *Alerter) SendEmergency(ctx context.Context, to string, location geo.Point) (*Receipt, error) {
	if appErr := validation.New().
		Phone("to", to).
		Coordinates("location", location.Lat, location.Lng).
		Validate(); appErr != nil {
		return nil, appErr
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanSendAlert)
	defer span.End()

	start := time.Now()
	receipt, err := a.sender.Send(ctx, to, Message(location))
	if err != nil {
		observability.SetSpanError(ctx, err)
		metrics.AlertsSent.WithLabelValues("failed").Inc()
		a.log.WithContext(ctx).Error("Failed to send SMS", logger.ErrorFields("alert.send", err))
		return nil, err
	}

	metrics.AlertsSent.WithLabelValues("sent").Inc()
	observability.SetSpanAttribute(ctx, "alert.sid", receipt.SID)
	a.log.WithContext(ctx).Info("SMS sent", map[string]interface{}{
		"sid":                receipt.SID,
		"status":             receipt.Status,
		"map_link":           geo.MapLink(location),
		logger.FieldDuration: time.Since(start).Milliseconds(),
	})
	return receipt, nil
}

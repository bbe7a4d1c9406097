package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rapidrescue/rescuedge/errors"
	"github.com/rapidrescue/rescuedge/logger"
	"github.com/rapidrescue/rescuedge/server/middleware"
	"github.com/rapidrescue/rescuedge/version"
)

const environmentKey = "rescuedge.environment"

// Meta describes the response itself.
type Meta struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
	Env       string `json:"env"`
	Version   string `json:"version"`
}

// Envelope is the success body of every corridor API response.
type Envelope struct {
	Meta    Meta `json:"meta"`
	Payload any  `json:"payload"`
}

// Environment stores the deployment environment for response metadata.
func Environment(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(environmentKey, env)
		c.Next()
	}
}

// NewMeta builds response metadata for the current request. The request ID
// is the one assigned by the RequestID middleware, prefixed with "REQ-".
func NewMeta(c *gin.Context) Meta {
	id := middleware.RequestIDFrom(c.Request.Context())
	if id == "" {
		id = c.GetHeader(middleware.HeaderRequestID)
	}
	return Meta{
		RequestID: "REQ-" + id,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Env:       c.GetString(environmentKey),
		Version:   version.APIVersion,
	}
}

// RespondOK sends 200 with payload in the standard envelope.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, Envelope{Meta: NewMeta(c), Payload: payload})
}

// RespondCreated sends 201 with payload in the standard envelope.
func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, Envelope{Meta: NewMeta(c), Payload: payload})
}

// RespondWithError writes err as an error body. AppErrors keep their status
// and code; anything else becomes a generic 500.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.GetGlobalLogger().WithContext(c.Request.Context()).Error("Request failed", map[string]interface{}{
			"path":            c.FullPath(),
			logger.FieldError: err.Error(),
		})
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

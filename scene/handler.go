package scene

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rapidrescue/rescuedge/errors"
	"github.com/rapidrescue/rescuedge/geo"
	"github.com/rapidrescue/rescuedge/logger"
	"github.com/rapidrescue/rescuedge/metrics"
	"github.com/rapidrescue/rescuedge/observability"
	"github.com/rapidrescue/rescuedge/server"
	"github.com/rapidrescue/rescuedge/validation"
)

// Handler serves corridor initialization and scene lookups.
type Handler struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
}

// NewHandler creates a Handler backed by store.
func NewHandler(store Store, log *logger.Logger) *Handler {
	return &Handler{store: store, log: log.WithComponent("scene"), now: time.Now}
}

// RegisterRoutes mounts the scene routes on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/init", h.Init)
	r.GET("/scenes/:accidentId", h.Get)
}

type initRequest struct {
	Payload *struct {
		AccidentID string     `json:"accidentId"`
		Location   *geo.Point `json:"location"`
	} `json:"payload"`
}

type initResponse struct {
	AccidentID string `json:"accidentId"`
	Status     string `json:"status"`
}

// Init handles POST /init, sent by the detection side when an SOS arrives.
func (h *Handler) Init(c *gin.Context) {
	ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanInitCorridor)
	defer span.End()

	var req initRequest
	err := json.NewDecoder(c.Request.Body).Decode(&req)
	if err != nil || req.Payload == nil || strings.TrimSpace(req.Payload.AccidentID) == "" || req.Payload.Location == nil {
		server.RespondWithError(c, apperrors.MissingField("Missing accidentId or location", "accidentId", "location"))
		return
	}
	p := req.Payload

	if appErr := validation.New().Coordinates("location", p.Location.Lat, p.Location.Lng).Validate(); appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}

	observability.SetSpanAttribute(ctx, observability.AttrAccidentID, p.AccidentID)
	s := &Scene{AccidentID: p.AccidentID, Location: *p.Location, InitializedAt: h.now().UTC()}
	if err := h.store.Save(ctx, s); err != nil {
		observability.SetSpanError(ctx, err)
		server.RespondWithError(c, apperrors.ServiceUnavailable("scene store").WithCause(err))
		return
	}

	metrics.CorridorsInitialized.Inc()
	h.log.WithContext(ctx).Info("Corridor initialized for "+p.AccidentID, map[string]interface{}{
		logger.FieldAccidentID: p.AccidentID,
		"map_link":             geo.MapLink(s.Location),
	})
	server.RespondOK(c, initResponse{AccidentID: p.AccidentID, Status: StatusCorridorInitialized})
}

// Get handles GET /scenes/:accidentId.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("accidentId")
	s, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		server.RespondWithError(c, apperrors.NotFound("Scene", id))
		return
	}
	if err != nil {
		server.RespondWithError(c, apperrors.ServiceUnavailable("scene store").WithCause(err))
		return
	}
	server.RespondOK(c, s)
}

package hospital

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rapidrescue/rescuedge/database"
	apperrors "github.com/rapidrescue/rescuedge/errors"
	"github.com/rapidrescue/rescuedge/geo"
	"github.com/rapidrescue/rescuedge/observability"
	"github.com/rapidrescue/rescuedge/server"
	"github.com/rapidrescue/rescuedge/util"
	"github.com/rapidrescue/rescuedge/validation"
)

// DefaultNearestLimit is used when the limit query parameter is absent or invalid.
const DefaultNearestLimit = 3

// Handler serves the hospital routes of the corridor API.
type Handler struct {
	svc *Service
}

// NewHandler creates a Handler for svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the hospital routes on r. The protect handlers run
// in front of every write route.
func (h *Handler) RegisterRoutes(r gin.IRouter, protect ...gin.HandlerFunc) {
	r.GET("/hospitals", h.List)
	r.GET("/hospitals/nearest", h.Nearest)
	r.GET("/hospitals/:id", h.Get)

	guarded := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clone(protect), handler)
	}
	r.POST("/hospitals", guarded(h.Register)...)
	r.PATCH("/hospitals/:id/beds", guarded(h.UpdateBeds)...)
	r.PATCH("/hospitals/:id/active", guarded(h.SetActive)...)
}

type listResponse struct {
	Hospitals []*Hospital `json:"hospitals"`
	Total     int         `json:"total"`
}

type nearestEntry struct {
	RankedHospital
	MapLink        string `json:"mapLink"`
	NavigationLink string `json:"navigationLink"`
}

type nearestResponse struct {
	Hospitals []nearestEntry `json:"hospitals"`
	Total     int            `json:"total"`
}

type detailResponse struct {
	*Hospital
	MapLink        string `json:"mapLink"`
	NavigationLink string `json:"navigationLink"`
}

func newDetailResponse(h *Hospital) detailResponse {
	return detailResponse{Hospital: h, MapLink: geo.MapLink(h.Location), NavigationLink: geo.NavigationLink(h.Location)}
}

// List handles GET /hospitals.
func (h *Handler) List(c *gin.Context) {
	all, err := h.svc.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, toAppError(err, ""))
		return
	}
	server.RespondOK(c, listResponse{Hospitals: all, Total: len(all)})
}

// Nearest handles GET /hospitals/nearest?lat=&lng=&limit=&specialty=&minBeds=.
func (h *Handler) Nearest(c *gin.Context) {
	point := geo.Point{
		Lat: util.ParseFloat(c.Query("lat")),
		Lng: util.ParseFloat(c.Query("lng")),
	}
	if point.IsNaN() {
		server.RespondWithError(c, apperrors.InvalidInput("lat", "lat and lng query parameters required (numbers)"))
		return
	}
	if appErr := validation.New().Coordinates("location", point.Lat, point.Lng).Validate(); appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}

	q := Query{
		Specialty: strings.ToUpper(strings.TrimSpace(c.Query("specialty"))),
		MinBeds:   util.ParseIntOr(c.Query("minBeds"), 1),
		Limit:     util.ParseIntOr(c.Query("limit"), DefaultNearestLimit),
	}

	ranked, err := h.svc.FindNearest(c.Request.Context(), point, q)
	if err != nil {
		server.RespondWithError(c, toAppError(err, ""))
		return
	}

	entries := make([]nearestEntry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, nearestEntry{
			RankedHospital: r,
			MapLink:        geo.MapLink(r.Location),
			NavigationLink: geo.NavigationLink(r.Location),
		})
	}
	server.RespondOK(c, nearestResponse{Hospitals: entries, Total: len(entries)})
}

// Get handles GET /hospitals/:id.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	hosp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, toAppError(err, id))
		return
	}
	server.RespondOK(c, newDetailResponse(hosp))
}

// Register handles POST /hospitals.
func (h *Handler) Register(c *gin.Context) {
	var req Hospital
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("body", "request body must be a hospital JSON object"))
		return
	}
	req.Specialties = upperAll(req.Specialties)

	if err := h.svc.Register(c.Request.Context(), &req); err != nil {
		server.RespondWithError(c, toAppError(err, req.HospitalID))
		return
	}
	server.RespondCreated(c, newDetailResponse(&req))
}

type bedsRequest struct {
	BedsAvailable any `json:"bedsAvailable"`
}

type bedsResponse struct {
	HospitalID    string `json:"hospitalId"`
	BedsAvailable int    `json:"bedsAvailable"`
}

// UpdateBeds handles PATCH /hospitals/:id/beds. The body is checked before
// the hospital is looked up.
func (h *Handler) UpdateBeds(c *gin.Context) {
	id := c.Param("id")

	beds, ok := parseBeds(c)
	if !ok {
		server.RespondWithError(c, apperrors.InvalidInput("bedsAvailable", "bedsAvailable (non-negative number) required"))
		return
	}

	ctx := c.Request.Context()
	observability.SetSpanAttribute(ctx, observability.AttrHospitalID, id)
	if err := h.svc.UpdateBeds(ctx, id, beds); err != nil {
		server.RespondWithError(c, toAppError(err, id))
		return
	}
	server.RespondOK(c, bedsResponse{HospitalID: id, BedsAvailable: beds})
}

// parseBeds accepts a non-negative whole JSON number. Strings such as
// "5" are rejected.
func parseBeds(c *gin.Context) (int, bool) {
	var req bedsRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		return 0, false
	}
	f, ok := req.BedsAvailable.(float64)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

type activeRequest struct {
	Active *bool `json:"active"`
}

type activeResponse struct {
	HospitalID string `json:"hospitalId"`
	Active     bool   `json:"active"`
}

// SetActive handles PATCH /hospitals/:id/active.
func (h *Handler) SetActive(c *gin.Context) {
	id := c.Param("id")

	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		server.RespondWithError(c, apperrors.InvalidInput("active", "active (boolean) required"))
		return
	}

	if err := h.svc.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		server.RespondWithError(c, toAppError(err, id))
		return
	}
	server.RespondOK(c, activeResponse{HospitalID: id, Active: *req.Active})
}

func toAppError(err error, id string) error {
	if errors.Is(err, ErrNotFound) {
		return apperrors.NotFound("Hospital", id)
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return database.FromDatabase(err, "Hospital", id)
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	return out
}

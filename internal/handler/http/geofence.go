package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hadirly/hadir-backend-go/internal/domain/geofence"
	"github.com/hadirly/hadir-backend-go/internal/handler/http/response"
)

type GeoFenceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type GeoFenceHandlerImpl struct {
	geoFenceService geofence.GeoFenceService
}

func NewGeoFenceHandler(geoFenceService geofence.GeoFenceService) GeoFenceHandler {
	return &GeoFenceHandlerImpl{geoFenceService: geoFenceService}
}

// Create implements GeoFenceHandler.
func (g *GeoFenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req geofence.CreateGeoFenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create geofence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := g.geoFenceService.CreateFence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Geofence created", resp)
}

// Update implements GeoFenceHandler.
func (g *GeoFenceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Geofence ID is required", nil)
		return
	}

	var req geofence.UpdateGeoFenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update geofence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	resp, err := g.geoFenceService.UpdateFence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Geofence updated", resp)
}

// List implements GeoFenceHandler.
func (g *GeoFenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := g.geoFenceService.ListFences(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Get implements GeoFenceHandler.
func (g *GeoFenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Geofence ID is required", nil)
		return
	}

	resp, err := g.geoFenceService.GetFence(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Deactivate implements GeoFenceHandler.
func (g *GeoFenceHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Geofence ID is required", nil)
		return
	}

	if err := g.geoFenceService.SetFenceActive(r.Context(), id, false); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Geofence deactivated", nil)
}

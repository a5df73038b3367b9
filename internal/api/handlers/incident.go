package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/incident"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/utils"
)

type IncidentHandler struct {
	service incident.Service
	logger  *logger.Logger
}

func NewIncidentHandler(service incident.Service, log *logger.Logger) *IncidentHandler {
	return &IncidentHandler{service: service, logger: log}
}

// List returns incidents across all targets, newest first
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)
	incidents, total, err := h.service.List(r.Context(), params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(incidents, params.Page, params.PageSize, total))
}

// ListByTarget returns the incident history of one target
func (h *IncidentHandler) ListByTarget(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)
	incidents, total, err := h.service.ListByTarget(r.Context(), chi.URLParam(r, "id"), params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(incidents, params.Page, params.PageSize, total))
}

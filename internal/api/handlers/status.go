package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/incident"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/utils"
)

// StatusHandler serves the unauthenticated public status view for targets
// that opted in with a slug
type StatusHandler struct {
	targets   target.Repository
	checks    check.Repository
	incidents incident.Service
	logger    *logger.Logger
}

func NewStatusHandler(targets target.Repository, checks check.Repository, incidents incident.Service, log *logger.Logger) *StatusHandler {
	return &StatusHandler{targets: targets, checks: checks, incidents: incidents, logger: log}
}

// recentWindow bounds how much history the public page exposes
const recentWindow = 50

// Get returns the public status of one target by slug
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.targets.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		utils.WriteError(w, errors.NotFound("status page"))
		return
	}

	recent, _, err := h.checks.ListByTarget(r.Context(), t.ID, recentWindow, 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	incidents, _, err := h.incidents.ListByTarget(r.Context(), t.ID, 10, 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"name":      t.Name,
		"status":    t.Status,
		"checks":    recent,
		"incidents": incidents,
	})
}

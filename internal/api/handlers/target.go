package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergioM098/Monitoring-proyect/internal/api/dto"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/check"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/target"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/utils"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/validator"
	"github.com/SergioM098/Monitoring-proyect/internal/services"
)

type TargetHandler struct {
	service   target.Service
	checks    check.Repository
	monitor   *services.MonitorService
	logger    *logger.Logger
	validator *validator.Validator
}

func NewTargetHandler(service target.Service, checks check.Repository, monitor *services.MonitorService, log *logger.Logger, val *validator.Validator) *TargetHandler {
	return &TargetHandler{service: service, checks: checks, monitor: monitor, logger: log, validator: val}
}

// Create registers a new target
func (h *TargetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("invalid request body"))
		return
	}
	if errs := h.validator.Validate(&req); len(errs) > 0 {
		utils.WriteError(w, errors.Validation("validation failed", errs))
		return
	}

	t := &target.Target{
		Name:                req.Name,
		URL:                 req.URL,
		CheckKind:           req.CheckKind,
		IntervalSec:         req.IntervalSec,
		DegradedThresholdMs: req.DegradedThresholdMs,
		Enabled:             true,
		Public:              req.Public,
	}
	if t.CheckKind == "" {
		t.CheckKind = target.KindHTTP
	}
	if t.IntervalSec == 0 {
		t.IntervalSec = 60
	}
	if t.DegradedThresholdMs == 0 {
		t.DegradedThresholdMs = 5000
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
	}

	if err := h.service.Create(r.Context(), t); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, toTargetDTO(t))
}

// List returns all targets
func (h *TargetHandler) List(w http.ResponseWriter, r *http.Request) {
	targets, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]dto.TargetDTO, len(targets))
	for i, t := range targets {
		dtos[i] = toTargetDTO(t)
	}
	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns a single target by ID
func (h *TargetHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, toTargetDTO(t))
}

// Update applies partial updates to a target
func (h *TargetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("invalid request body"))
		return
	}
	if errs := h.validator.Validate(&req); len(errs) > 0 {
		utils.WriteError(w, errors.Validation("validation failed", errs))
		return
	}

	t, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.Updates())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, toTargetDTO(t))
}

// Delete removes a target and its history
func (h *TargetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "target deleted", nil)
}

// Enable resumes polling for a target
func (h *TargetHandler) Enable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, true)
}

// Disable suspends polling for a target
func (h *TargetHandler) Disable(w http.ResponseWriter, r *http.Request) {
	h.setEnabled(w, r, false)
}

func (h *TargetHandler) setEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	id := chi.URLParam(r, "id")
	if err := h.service.SetEnabled(r.Context(), id, enabled); err != nil {
		writeServiceError(w, err)
		return
	}
	t, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, toTargetDTO(t))
}

// CheckNow runs an immediate check outside the schedule
func (h *TargetHandler) CheckNow(w http.ResponseWriter, r *http.Request) {
	result, err := h.monitor.CheckByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// ListChecks returns the check history for a target, newest first
func (h *TargetHandler) ListChecks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.service.GetByID(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	params := utils.ParsePaginationParams(r)
	results, total, err := h.checks.ListByTarget(r.Context(), id, params.PageSize, params.Offset)
	if err != nil {
		utils.WriteError(w, errors.Internal("failed to list check results", err))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(results, params.Page, params.PageSize, total))
}

func toTargetDTO(t *target.Target) dto.TargetDTO {
	return dto.TargetDTO{
		ID:                  t.ID,
		Name:                t.Name,
		URL:                 t.URL,
		CheckKind:           t.CheckKind,
		IntervalSec:         t.IntervalSec,
		DegradedThresholdMs: t.DegradedThresholdMs,
		Status:              t.Status,
		Enabled:             t.Enabled,
		Public:              t.Public,
		Slug:                t.Slug,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

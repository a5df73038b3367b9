package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SergioM098/Monitoring-proyect/internal/api/dto"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/errors"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/utils"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/validator"
)

type NotificationHandler struct {
	service   notification.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewNotificationHandler(service notification.Service, log *logger.Logger, val *validator.Validator) *NotificationHandler {
	return &NotificationHandler{service: service, logger: log, validator: val}
}

// CreateRule registers a new notification rule
func (h *NotificationHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("invalid request body"))
		return
	}
	if errs := h.validator.Validate(&req); len(errs) > 0 {
		utils.WriteError(w, errors.Validation("validation failed", errs))
		return
	}

	rule := &notification.Rule{
		TargetID:    req.TargetID,
		Kind:        req.Kind,
		Destination: req.Destination,
		TriggerOn:   req.TriggerOn,
		Enabled:     true,
	}
	if rule.TriggerOn == "" {
		rule.TriggerOn = notification.TriggerBoth
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}

	if err := h.service.CreateRule(r.Context(), rule); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, toRuleDTO(rule))
}

// ListRules returns all notification rules
func (h *NotificationHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.ListRules(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]dto.RuleDTO, len(rules))
	for i, rule := range rules {
		dtos[i] = toRuleDTO(rule)
	}
	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// DeleteRule removes a notification rule
func (h *NotificationHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "notification rule deleted", nil)
}

// ListLogs returns the notification attempt history, newest first
func (h *NotificationHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)
	logs, total, err := h.service.ListLogs(r.Context(), params.PageSize, params.Offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]dto.LogEntryDTO, len(logs))
	for i, e := range logs {
		dtos[i] = dto.LogEntryDTO{
			ID:           e.ID,
			TargetID:     e.TargetID,
			Destination:  e.Destination,
			Message:      e.Message,
			Success:      e.Success,
			ErrorMessage: e.ErrorMessage,
			SentAt:       e.SentAt,
		}
	}
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, total))
}

func toRuleDTO(rule *notification.Rule) dto.RuleDTO {
	return dto.RuleDTO{
		ID:          rule.ID,
		TargetID:    rule.TargetID,
		Kind:        rule.Kind,
		Destination: rule.Destination,
		TriggerOn:   rule.TriggerOn,
		Enabled:     rule.Enabled,
		CreatedAt:   rule.CreatedAt,
	}
}

package handler

import (
	"encoding/json"
	"net/http"

	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/usecase"
	"clinic-saas-backend/pkg/response"
	"clinic-saas-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type RecurrenceHandler struct {
	recurrenceUsecase usecase.RecurrenceUsecase
	validator         *validator.CustomValidator
}

func NewRecurrenceHandler(recurrenceUsecase usecase.RecurrenceUsecase, validator *validator.CustomValidator) *RecurrenceHandler {
	return &RecurrenceHandler{
		recurrenceUsecase: recurrenceUsecase,
		validator:         validator,
	}
}

// CreateRecurrence stores the rule and materializes its appointments up to
// the configured horizon
func (h *RecurrenceHandler) CreateRecurrence(w http.ResponseWriter, r *http.Request) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateRecurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rule, materialized, err := h.recurrenceUsecase.CreateRecurrence(r.Context(), clinicID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		default:
			response.InternalServerError(w, "Failed to create recurrence")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Recurrence created successfully", map[string]interface{}{
		"recurrence":   rule,
		"materialized": materialized,
	})
}

func (h *RecurrenceHandler) GetRecurrence(w http.ResponseWriter, r *http.Request) {
	clinicID, _, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recurrenceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid recurrence ID", nil)
		return
	}

	rule, err := h.recurrenceUsecase.GetRecurrence(r.Context(), clinicID, recurrenceID)
	if err != nil {
		if err == usecase.ErrRecurrenceNotFound {
			response.NotFound(w, "Recurrence not found")
			return
		}
		response.InternalServerError(w, "Failed to get recurrence")
		return
	}

	response.Success(w, http.StatusOK, "Recurrence retrieved successfully", rule)
}

func (h *RecurrenceHandler) GetAllRecurrences(w http.ResponseWriter, r *http.Request) {
	clinicID, _, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	rules, err := h.recurrenceUsecase.GetAllRecurrences(r.Context(), clinicID)
	if err != nil {
		response.InternalServerError(w, "Failed to get recurrences")
		return
	}

	response.Success(w, http.StatusOK, "Recurrences retrieved successfully", rules)
}

// UpdateRecurrence mutates the rule; with apply_to_future set, future
// AGENDADO appointments are rebuilt from the updated rule
func (h *RecurrenceHandler) UpdateRecurrence(w http.ResponseWriter, r *http.Request) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recurrenceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid recurrence ID", nil)
		return
	}

	var req dto.UpdateRecurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rule, materialized, err := h.recurrenceUsecase.UpdateRecurrence(r.Context(), clinicID, userID, recurrenceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRecurrenceNotFound:
			response.NotFound(w, "Recurrence not found")
		case usecase.ErrRecurrenceInactive:
			response.Error(w, http.StatusConflict, "Recurrence is inactive", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		default:
			response.InternalServerError(w, "Failed to update recurrence")
		}
		return
	}

	response.Success(w, http.StatusOK, "Recurrence updated successfully", map[string]interface{}{
		"recurrence":   rule,
		"materialized": materialized,
	})
}

// AddException skips a single date of the series
func (h *RecurrenceHandler) AddException(w http.ResponseWriter, r *http.Request) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recurrenceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid recurrence ID", nil)
		return
	}

	var req dto.AddRecurrenceExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rule, err := h.recurrenceUsecase.AddException(r.Context(), clinicID, userID, recurrenceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRecurrenceNotFound:
			response.NotFound(w, "Recurrence not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to add exception")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exception added successfully", rule)
}

func (h *RecurrenceHandler) DeactivateRecurrence(w http.ResponseWriter, r *http.Request) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recurrenceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid recurrence ID", nil)
		return
	}

	if err := h.recurrenceUsecase.DeactivateRecurrence(r.Context(), clinicID, userID, recurrenceID); err != nil {
		if err == usecase.ErrRecurrenceNotFound {
			response.NotFound(w, "Recurrence not found")
			return
		}
		response.InternalServerError(w, "Failed to deactivate recurrence")
		return
	}

	response.Success(w, http.StatusOK, "Recurrence deactivated successfully", nil)
}

package handler

import (
	"encoding/json"
	"net/http"

	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/delivery/http/middleware"
	"clinic-saas-backend/internal/usecase"
	"clinic-saas-backend/pkg/response"
	"clinic-saas-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
	validator     *validator.CustomValidator
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase, validator *validator.CustomValidator) *ClinicHandler {
	return &ClinicHandler{
		clinicUsecase: clinicUsecase,
		validator:     validator,
	}
}

// GetAllClinics lists every tenant with usage stats. Superadmin only.
func (h *ClinicHandler) GetAllClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicUsecase.GetAllClinics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clinics")
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}

// GetClinic returns one clinic with stats. Superadmin only.
func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	clinic, err := h.clinicUsecase.GetClinic(r.Context(), clinicID)
	if err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to get clinic")
		return
	}

	response.Success(w, http.StatusOK, "Clinic retrieved successfully", clinic)
}

// UpdateClinic updates a tenant. Superadmin only; clinic admins use
// UpdateOwnClinic.
func (h *ClinicHandler) UpdateClinic(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	clinicID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	h.update(w, r, userID, clinicID)
}

// GetOwnClinic returns the caller's clinic with stats
func (h *ClinicHandler) GetOwnClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := middleware.GetClinicIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	clinic, err := h.clinicUsecase.GetClinic(r.Context(), clinicID)
	if err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to get clinic")
		return
	}

	response.Success(w, http.StatusOK, "Clinic retrieved successfully", clinic)
}

// UpdateOwnClinic updates the caller's clinic settings (name, phone,
// default message template, invoice due day)
func (h *ClinicHandler) UpdateOwnClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.update(w, r, userID, clinicID)
}

func (h *ClinicHandler) update(w http.ResponseWriter, r *http.Request, userID, clinicID uuid.UUID) {
	var req dto.UpdateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.UpdateClinic(r.Context(), userID, clinicID, &req)
	if err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to update clinic")
		return
	}

	response.Success(w, http.StatusOK, "Clinic updated successfully", clinic)
}

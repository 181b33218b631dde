package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/delivery/http/middleware"
	"clinic-saas-backend/internal/usecase"
	"clinic-saas-backend/pkg/response"
	"clinic-saas-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	invoiceUsecase usecase.InvoiceUsecase
	validator      *validator.CustomValidator
}

func NewInvoiceHandler(invoiceUsecase usecase.InvoiceUsecase, validator *validator.CustomValidator) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUsecase: invoiceUsecase,
		validator:      validator,
	}
}

// GeneratePeriod triggers idempotent generation of one clinic month
// @Summary Generate invoices for a period
// @Description Create or rebuild every invoice of the given month. Sent and paid invoices are skipped.
// @Tags Billing
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateInvoicesRequest true "Generate Invoices Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /billing/invoices/generate [post]
func (h *InvoiceHandler) GeneratePeriod(w http.ResponseWriter, r *http.Request) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.GenerateInvoicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.invoiceUsecase.GeneratePeriod(r.Context(), clinicID, userID, roleID, &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case usecase.ErrProfileRequired:
			response.Error(w, http.StatusForbidden, "Professional profile required", nil)
		case usecase.ErrCreditRace:
			response.Error(w, http.StatusConflict, "Session credit consumed concurrently, try again", nil)
		default:
			response.InternalServerError(w, "Failed to generate invoices")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoices generated successfully", result)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	clinicID, _, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	invoice, err := h.invoiceUsecase.GetInvoice(r.Context(), clinicID, invoiceID)
	if err != nil {
		if err == usecase.ErrInvoiceNotFound {
			response.NotFound(w, "Invoice not found")
			return
		}
		response.InternalServerError(w, "Failed to get invoice")
		return
	}

	response.Success(w, http.StatusOK, "Invoice retrieved successfully", invoice)
}

// GetInvoices lists invoices by month and year query parameters, optionally
// filtered by professional_profile_id
func (h *InvoiceHandler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	clinicID, _, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	query := r.URL.Query()
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.Error(w, http.StatusBadRequest, "Invalid month", nil)
		return
	}
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.Error(w, http.StatusBadRequest, "Invalid year", nil)
		return
	}

	var professionalProfileID *uuid.UUID
	if raw := query.Get("professional_profile_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid professional_profile_id", nil)
			return
		}
		professionalProfileID = &id
	}

	invoices, err := h.invoiceUsecase.GetInvoicesByPeriod(r.Context(), clinicID, month, year, professionalProfileID)
	if err != nil {
		response.InternalServerError(w, "Failed to get invoices")
		return
	}

	response.Success(w, http.StatusOK, "Invoices retrieved successfully", invoices)
}

func (h *InvoiceHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.invoiceUsecase.MarkSent, "Invoice marked as sent")
}

func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.invoiceUsecase.MarkPaid, "Invoice marked as paid")
}

func (h *InvoiceHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, clinicID, userID, id uuid.UUID) (*dto.InvoiceResponse, error), message string) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	invoice, err := op(r.Context(), clinicID, userID, invoiceID)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		case usecase.ErrInvalidInvoiceStatus:
			response.Error(w, http.StatusConflict, "Invalid invoice status transition", nil)
		default:
			response.InternalServerError(w, "Failed to update invoice status")
		}
		return
	}

	response.Success(w, http.StatusOK, message, invoice)
}

// AddItem appends a manual line to an unlocked invoice
func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	var req dto.AddInvoiceItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invoice, err := h.invoiceUsecase.AddManualItem(r.Context(), clinicID, userID, invoiceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		case usecase.ErrInvoiceLocked:
			response.Error(w, http.StatusConflict, "Invoice is sent or paid and cannot be modified", nil)
		default:
			response.InternalServerError(w, "Failed to add invoice item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice item added successfully", invoice)
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	clinicID, userID, ok := tenant(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	invoiceID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invoice ID", nil)
		return
	}

	if err := h.invoiceUsecase.DeleteInvoice(r.Context(), clinicID, userID, invoiceID); err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		case usecase.ErrInvoiceLocked:
			response.Error(w, http.StatusConflict, "Paid invoices cannot be deleted", nil)
		default:
			response.InternalServerError(w, "Failed to delete invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice deleted successfully", nil)
}

package converter

import (
	"clinic-saas-backend/internal/delivery/dto"
	"clinic-saas-backend/internal/domain/entity"
)

// InvoiceToResponse converts an Invoice entity to InvoiceResponse DTO.
// Items are included when the Items relation is loaded.
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	response := &dto.InvoiceResponse{
		ID:                    invoice.ID,
		PatientID:             invoice.PatientID,
		PatientName:           invoice.Patient.FullName,
		ProfessionalProfileID: invoice.ProfessionalProfileID,
		Month:                 invoice.Month,
		Year:                  invoice.Year,
		Status:                string(invoice.Status),
		TotalSessions:         invoice.TotalSessions,
		CreditsApplied:        invoice.CreditsApplied,
		ExtrasAdded:           invoice.ExtrasAdded,
		TotalAmount:           invoice.TotalAmount,
		MessageBody:           invoice.MessageBody,
		DueDate:               invoice.DueDate,
		SentAt:                invoice.SentAt,
		PaidAt:                invoice.PaidAt,
		CreatedAt:             invoice.CreatedAt,
		UpdatedAt:             invoice.UpdatedAt,
	}

	if len(invoice.Items) > 0 {
		response.Items = InvoiceItemsToResponses(invoice.Items)
	}

	return response
}

// InvoicesToResponses converts a slice of Invoice entities to slice of
// InvoiceResponse DTOs
func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *InvoiceToResponse(&invoices[i])
	}
	return responses
}

// InvoiceItemsToResponses converts a slice of InvoiceItem entities to slice
// of InvoiceItemResponse DTOs
func InvoiceItemsToResponses(items []entity.InvoiceItem) []dto.InvoiceItemResponse {
	responses := make([]dto.InvoiceItemResponse, len(items))
	for i, item := range items {
		responses[i] = dto.InvoiceItemResponse{
			ID:            item.ID,
			Type:          string(item.Type),
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Total:         item.Total,
			AppointmentID: item.AppointmentID,
		}
	}
	return responses
}

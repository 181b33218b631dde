package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateProfessionalRequest registers a professional user inside the
// caller's clinic
type CreateProfessionalRequest struct {
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=6"`
	FullName           string `json:"full_name" validate:"required,min=2"`
	RegistrationNumber string `json:"registration_number" validate:"omitempty,max=50"`
	Specialty          string `json:"specialty" validate:"omitempty,max=100"`
}

// Response DTOs

type ProfessionalResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	FullName           string    `json:"full_name,omitempty"`
	Email              string    `json:"email,omitempty"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	Specialty          string    `json:"specialty,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	Total         int                    `json:"total"`
}

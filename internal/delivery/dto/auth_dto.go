package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterClinicRequest creates a clinic tenant plus its first admin user
type RegisterClinicRequest struct {
	ClinicName     string `json:"clinic_name" validate:"required,min=2"`
	ClinicDocument string `json:"clinic_document" validate:"required,min=11,max=20"`
	ClinicPhone    string `json:"clinic_phone" validate:"omitempty,min=10,max=20"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FullName       string `json:"full_name" validate:"required,min=2"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID                  uuid.UUID             `json:"id"`
	Email               string                `json:"email"`
	FullName            string                `json:"full_name"`
	Role                string                `json:"role"`
	ClinicID            *uuid.UUID            `json:"clinic_id,omitempty"`
	ProfessionalProfile *ProfessionalResponse `json:"professional_profile,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

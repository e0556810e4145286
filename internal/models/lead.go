package models

import (
	"time"

	"github.com/google/uuid"
)

// LeadRequest mirrors the consultation form field names.
type LeadRequest struct {
	Name    string `json:"user_name"`
	Email   string `json:"user_email"`
	Phone   string `json:"user_phone"`
	Message string `json:"user_message"`
}

type Lead struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Duplicate bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type LeadResponse struct {
	Message   string    `json:"message"`
	LeadID    uuid.UUID `json:"lead_id"`
	Duplicate bool      `json:"duplicate,omitempty"`
}

package dto

import "time"

// CreatePartnerRequest body para POST /api/partners.
type CreatePartnerRequest struct {
	Name        string `json:"name"`
	PartnerType string `json:"partner_type"` // CUSTOMER | SUPPLIER
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// PartnerResponse representación de un tercero en la API.
type PartnerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PartnerType string    `json:"partner_type"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

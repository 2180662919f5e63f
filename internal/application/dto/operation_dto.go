package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOperationLineRequest línea en la creación de un documento.
type CreateOperationLineRequest struct {
	ProductID        string          `json:"product_id"`
	QuantityDemanded decimal.Decimal `json:"quantity_demanded"`
}

// CreateOperationRequest body para POST /api/operations. Crea en DRAFT.
type CreateOperationRequest struct {
	OperationType         string                       `json:"operation_type"`
	SourceLocationID      *string                      `json:"source_location_id,omitempty"`
	DestinationLocationID *string                      `json:"destination_location_id,omitempty"`
	PartnerID             *string                      `json:"partner_id,omitempty"`
	PartnerName           string                       `json:"partner_name,omitempty"`
	Lines                 []CreateOperationLineRequest `json:"lines"`
}

// ValidateOperationRequest body para POST /api/operations/:id/validate.
type ValidateOperationRequest struct {
	AllowPartial bool `json:"allow_partial"`
}

// TransitionRequest body para POST /api/operations/:id/status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// OperationLineResponse línea de documento en la API.
type OperationLineResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityDemanded decimal.Decimal `json:"quantity_demanded"`
	QuantityDone     decimal.Decimal `json:"quantity_done"`
}

// OperationResponse representación de un documento en la API.
type OperationResponse struct {
	ID                    int64                   `json:"id"`
	OperationType         string                  `json:"operation_type"`
	ReferenceNumber       string                  `json:"reference_number"`
	Status                string                  `json:"status"`
	SourceLocationID      *string                 `json:"source_location_id,omitempty"`
	DestinationLocationID *string                 `json:"destination_location_id,omitempty"`
	PartnerID             *string                 `json:"partner_id,omitempty"`
	PartnerName           string                  `json:"partner_name,omitempty"`
	CreatedBy             string                  `json:"created_by,omitempty"`
	CreatedAt             time.Time               `json:"created_at"`
	ValidatedAt           *time.Time              `json:"validated_at,omitempty"`
	Lines                 []OperationLineResponse `json:"lines,omitempty"`
}

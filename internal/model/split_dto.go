package model

import (
	"github.com/duosplit/receipt-split-service/internal/split"
)

// SplitRequest carries a compact receipt to turn into a split state.
type SplitRequest struct {
	Receipt string `json:"receipt" binding:"required"`
}

// PriceUpdateRequest edits the price of one item in a split state.
type PriceUpdateRequest struct {
	State split.State `json:"state" binding:"required"`
	Price string      `json:"price"`
}

// AttributionUpdateRequest reassigns one item in a split state.
type AttributionUpdateRequest struct {
	State       split.State `json:"state" binding:"required"`
	Attribution string      `json:"attribution" binding:"required"`
}

// WhoPaidRequest replaces the payer selection of a split state.
type WhoPaidRequest struct {
	State split.State `json:"state" binding:"required"`
	Payer string      `json:"payer" binding:"required"`
}

// SettlementRequest asks for the settlement of a split state.
type SettlementRequest struct {
	State split.State `json:"state" binding:"required"`
}

// StateResponse wraps an updated split state.
type StateResponse struct {
	State split.State `json:"state"`
}

// SettlementResponse reports the computed settlement alongside the
// receipt total.
type SettlementResponse struct {
	Debtor    split.Attribution `json:"debtor"`
	Amount    string            `json:"amount"`
	Formatted string            `json:"formatted"`
	Total     string            `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

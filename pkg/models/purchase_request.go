package models

import (
	"time"

	"stockroom/pkg/metadata"
)

type PurchaseRequest struct {
	ID             int                    `json:"id" db:"id"`
	CategoryID     int                    `json:"category_id" db:"category_id"`
	CategoryName   string                 `json:"category_name,omitempty" db:"category_name"`
	UnitsCount     int                    `json:"units_count" db:"units_count"`
	CompletedUnits int                    `json:"completed_units" db:"completed_units"`
	Status         metadata.RequestStatus `json:"status" db:"status"`
	Description    *string                `json:"description" db:"description"`
	Deadline       *time.Time             `json:"deadline" db:"deadline"`
	Requester      string                 `json:"requester" db:"requester"`
	Notes          *string                `json:"notes" db:"notes"`
	CreatedAt      time.Time              `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time             `json:"completed_at" db:"completed_at"`
}

// PurchaseCompletion is the outcome of fulfilling one unit of a request:
// the item that entered inventory and the request's refreshed counters.
type PurchaseCompletion struct {
	ItemAdded       Item            `json:"item_added"`
	PurchaseRequest PurchaseRequest `json:"purchase_request"`
}

package purchases

import (
	"time"

	"stockroom/pkg/models"
)

type PurchaseRequestInput struct {
	CategoryID  int        `json:"category_id" binding:"required,gte=1"`
	UnitsCount  int        `json:"units_count" binding:"required,gte=1"`
	Requester   string     `json:"requester" binding:"required"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Notes       *string    `json:"notes"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// CompleteRequest describes one received unit of an approved request: the
// item that physically arrived and should enter inventory.
type CompleteRequest struct {
	ItemName   string            `json:"item_name" binding:"required"`
	Quantity   int               `json:"quantity" binding:"required,gte=1"`
	Location   *string           `json:"location"`
	Properties models.Properties `json:"properties"`
	Notes      *string           `json:"notes"`
}

type PurchaseListQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

func (q *PurchaseListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
}

func (q PurchaseListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

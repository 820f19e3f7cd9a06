package items

import "stockroom/pkg/models"

type ItemRequest struct {
	Name        string            `json:"name" binding:"required"`
	CategoryID  int               `json:"category_id" binding:"required,gte=1"`
	Quantity    int               `json:"quantity" binding:"gte=0"`
	Location    *string           `json:"location"`
	Description *string           `json:"description"`
	Properties  models.Properties `json:"properties"`
}

// UpdateItemRequest carries partial field updates. Quantity is deliberately
// absent: quantity changes go through the ledger and nowhere else.
type UpdateItemRequest struct {
	Name        *string           `json:"name"`
	CategoryID  *int              `json:"category_id" binding:"omitempty,gte=1"`
	Location    *string           `json:"location"`
	Description *string           `json:"description"`
	Properties  models.Properties `json:"properties"`
}

type WithdrawRequest struct {
	Quantity int    `json:"quantity" binding:"required,gte=1"`
	Purpose  string `json:"purpose" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
}

type LocationRequest struct {
	Location string `json:"location" binding:"required"`
}

// ItemListQuery is the filter set of the paginated item listing.
type ItemListQuery struct {
	Category string
	Search   string
	Location string
	Filters  map[string]string
	Page     int
	Limit    int
}

func (q *ItemListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
}

func (q ItemListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

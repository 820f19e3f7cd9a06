package models

import "time"

type Category struct {
	ID          int       `json:"id,omitempty" db:"id"`
	Name        string    `json:"name,omitempty" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	ParentID    *int      `json:"parent_id,omitempty" db:"parent_id"`
	IsActive    bool      `json:"is_active,omitempty" db:"is_active"`
	CreatedAt   time.Time `json:"created_at,omitempty" db:"created_at"`
}

// CategoryStats aggregates stock levels per category for the dashboard view.
type CategoryStats struct {
	ID              int     `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	Description     *string `json:"description" db:"description"`
	TotalItems      int     `json:"total_items" db:"total_items"`
	TotalQuantity   int     `json:"total_quantity" db:"total_quantity"`
	LowStockCount   int     `json:"low_stock_count" db:"low_stock_count"`
	OutOfStockCount int     `json:"out_of_stock_count" db:"out_of_stock_count"`
}

package models

import (
	"time"

	"stockroom/pkg/metadata"
)

// Preset is a named template of categories and needed quantities for bulk
// withdrawal. It names categories, never concrete items.
type Preset struct {
	ID          int          `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description *string      `json:"description" db:"description"`
	Items       []PresetItem `json:"items,omitempty"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

type PresetItem struct {
	ID             int     `json:"id" db:"id"`
	PresetID       int     `json:"preset_id" db:"preset_id"`
	CategoryID     int     `json:"category_id" db:"category_id"`
	CategoryName   string  `json:"category_name,omitempty" db:"category_name"`
	QuantityNeeded int     `json:"quantity_needed" db:"quantity_needed"`
	Requirements   *string `json:"requirements" db:"requirements"`
	Notes          *string `json:"notes" db:"notes"`
}

// PresetAvailability reports whether current stock can cover one preset line.
type PresetAvailability struct {
	CategoryID          int     `json:"category_id" db:"category_id"`
	CategoryName        string  `json:"category_name" db:"category_name"`
	QuantityNeeded      int     `json:"quantity_needed" db:"quantity_needed"`
	Requirements        *string `json:"requirements" db:"requirements"`
	Notes               *string `json:"notes" db:"notes"`
	AvailableQuantity   int     `json:"available_quantity" db:"available_quantity"`
	AvailableItemsCount int     `json:"available_items_count" db:"available_items_count"`
	Status              string  `json:"status" db:"status"`
}

// WithdrawalResult is the per-category outcome of a mass preset withdrawal.
// A partial or not_found status is a normal result, not an error.
type WithdrawalResult struct {
	CategoryName string                    `json:"category_name"`
	Requested    int                       `json:"requested"`
	Withdrawn    int                       `json:"withdrawn"`
	Status       metadata.WithdrawalStatus `json:"status"`
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Properties holds the free-form key/value attributes of an item,
// persisted as a jsonb column.
type Properties map[string]string

type Item struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Category     Category   `json:"category"`
	Quantity     int        `json:"quantity"`
	Location     *string    `json:"location"`
	Description  *string    `json:"description"`
	Properties   Properties `json:"properties"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type FlatItemRecord struct {
	ID            int       `db:"item_id"`
	Name          string    `db:"item_name"`
	Quantity      int       `db:"quantity"`
	Location      *string   `db:"location"`
	Description   *string   `db:"description"`
	PropertiesRaw []byte    `db:"properties"`
	CategoryID    int       `db:"category_id"`
	CategoryName  string    `db:"category_name"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (fi *FlatItemRecord) TransformToItem() (Item, error) {
	properties := Properties{}
	if len(fi.PropertiesRaw) > 0 {
		if err := json.Unmarshal(fi.PropertiesRaw, &properties); err != nil {
			return Item{}, fmt.Errorf("failed to unmarshal item properties: %w", err)
		}
	}

	return Item{
		ID:          fi.ID,
		Name:        fi.Name,
		Quantity:    fi.Quantity,
		Location:    fi.Location,
		Description: fi.Description,
		Properties:  properties,
		Category: Category{
			ID:   fi.CategoryID,
			Name: fi.CategoryName,
		},
		CreatedAt: fi.CreatedAt,
		UpdatedAt: fi.UpdatedAt,
	}, nil
}

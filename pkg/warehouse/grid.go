package warehouse

import (
	"sort"

	"stockroom/pkg/models"
)

// The physical grid is fixed at rows A-C by columns 1-6.
const (
	GridRows    = 3
	GridColumns = 6
)

// CellItem is an item projected onto a grid cell, carrying the decoded
// location fields alongside the item data the board view renders.
type CellItem struct {
	ID           int               `json:"id"`
	ItemID       int               `json:"itemId"`
	Name         string            `json:"name"`
	Description  *string           `json:"description"`
	Quantity     int               `json:"quantity"`
	CategoryID   int               `json:"category_id"`
	CategoryName string            `json:"category_name"`
	BoxName      string            `json:"boxName,omitempty"`
	Color        string            `json:"color,omitempty"`
	GroupNumber  int               `json:"groupNumber,omitempty"`
	BoxNumber    int               `json:"boxNumber,omitempty"`
	Properties   models.Properties `json:"properties"`
}

// GroupKey is the bucket an item lands in within its cell: the color group
// when tagged, otherwise the box, otherwise a shared default bucket.
func (c CellItem) GroupKey() string {
	switch {
	case c.Color != "":
		return c.Color
	case c.BoxName != "":
		return c.BoxName
	default:
		return "unassigned"
	}
}

// ProjectGrid maps located items onto grid cells. Items whose decoded cell
// falls outside the grid are silently skipped rather than reported as
// errors. Within a cell, items are ordered by group bucket and then name so
// boxes and color groups render contiguously.
func ProjectGrid(items []models.Item) map[string][]CellItem {
	grid := make(map[string][]CellItem)

	for _, item := range items {
		if item.Location == nil || *item.Location == "" {
			continue
		}

		location := Decode(*item.Location)
		if !location.Valid() {
			continue
		}

		grid[location.Cell] = append(grid[location.Cell], CellItem{
			ID:           item.ID,
			ItemID:       item.ID,
			Name:         item.Name,
			Description:  item.Description,
			Quantity:     item.Quantity,
			CategoryID:   item.Category.ID,
			CategoryName: item.Category.Name,
			BoxName:      location.BoxName,
			Color:        location.Color,
			GroupNumber:  location.GroupNumber,
			BoxNumber:    location.BoxNumber,
			Properties:   item.Properties,
		})
	}

	for cell := range grid {
		cellItems := grid[cell]
		sort.SliceStable(cellItems, func(i, j int) bool {
			if cellItems[i].GroupKey() != cellItems[j].GroupKey() {
				return cellItems[i].GroupKey() < cellItems[j].GroupKey()
			}
			return cellItems[i].Name < cellItems[j].Name
		})
	}

	return grid
}

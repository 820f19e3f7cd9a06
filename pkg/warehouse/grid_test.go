package warehouse

import (
	"testing"

	"stockroom/pkg/models"

	"github.com/stretchr/testify/assert"
)

func locatedItem(id int, name string, location string) models.Item {
	return models.Item{
		ID:       id,
		Name:     name,
		Quantity: 1,
		Location: &location,
		Category: models.Category{ID: 1, Name: "Tools"},
	}
}

func TestProjectGrid(t *testing.T) {
	items := []models.Item{
		locatedItem(1, "Screwdriver", "A1:Box1"),
		locatedItem(2, "Hammer", "A1:red2"),
		locatedItem(3, "Pliers", "A1:Box1"),
		locatedItem(4, "Tape", "B2"),
	}

	grid := ProjectGrid(items)

	assert.Len(t, grid, 2)
	assert.Len(t, grid["A1"], 3)
	assert.Len(t, grid["B2"], 1)

	// Box1 items render contiguously, before the red color group.
	assert.Equal(t, "Box1", grid["A1"][0].GroupKey())
	assert.Equal(t, "Box1", grid["A1"][1].GroupKey())
	assert.Equal(t, "red", grid["A1"][2].GroupKey())
	assert.Equal(t, "Pliers", grid["A1"][0].Name)
	assert.Equal(t, "Screwdriver", grid["A1"][1].Name)

	assert.Equal(t, "unassigned", grid["B2"][0].GroupKey())
}

func TestProjectGridExcludesInvalidCells(t *testing.T) {
	items := []models.Item{
		locatedItem(1, "Screwdriver", "Z9:foo"),
		locatedItem(2, "Hammer", "A7"),
		locatedItem(3, "Pliers", "C3:green2"),
	}

	grid := ProjectGrid(items)

	assert.Len(t, grid, 1)
	assert.NotContains(t, grid, "Z9")
	assert.NotContains(t, grid, "A7")
	assert.Equal(t, "green", grid["C3"][0].Color)
	assert.Equal(t, 2, grid["C3"][0].GroupNumber)
}

func TestProjectGridSkipsUnlocatedItems(t *testing.T) {
	empty := ""
	items := []models.Item{
		{ID: 1, Name: "Screwdriver", Location: nil},
		{ID: 2, Name: "Hammer", Location: &empty},
	}

	assert.Empty(t, ProjectGrid(items))
}

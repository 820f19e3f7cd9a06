package ledger

import (
	"testing"

	"stockroom/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestNextQuantity(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		quantity  int
		entryType EntryType
		expected  int
		ok        bool
	}{
		{
			name:      "Withdrawal Within Stock",
			current:   10,
			quantity:  4,
			entryType: Withdrawal,
			expected:  6,
			ok:        true,
		},
		{
			name:      "Withdrawal Of Entire Stock",
			current:   3,
			quantity:  3,
			entryType: Withdrawal,
			expected:  0,
			ok:        true,
		},
		{
			name:      "Withdrawal Exceeding Stock",
			current:   2,
			quantity:  5,
			entryType: Withdrawal,
			expected:  2,
			ok:        false,
		},
		{
			name:      "Addition",
			current:   7,
			quantity:  5,
			entryType: Addition,
			expected:  12,
			ok:        true,
		},
		{
			name:      "Addition To Empty Stock",
			current:   0,
			quantity:  9,
			entryType: Addition,
			expected:  9,
			ok:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := nextQuantity(tt.current, tt.quantity, tt.entryType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, next)
		})
	}
}

// Apply scans the updated row and resolves the category name separately;
// the returned item must carry both so withdrawal payloads match item reads.
func TestAppliedRecordCarriesCategoryName(t *testing.T) {
	record := models.FlatItemRecord{
		ID:           100,
		Name:         "HDMI 2m",
		Quantity:     4,
		CategoryID:   10,
		CategoryName: "Cables",
	}

	item, err := record.TransformToItem()

	assert.NoError(t, err)
	assert.Equal(t, 10, item.Category.ID)
	assert.Equal(t, "Cables", item.Category.Name)
}

func TestEntryTypeIsValid(t *testing.T) {
	assert.True(t, Withdrawal.IsValid())
	assert.True(t, Addition.IsValid())
	assert.False(t, EntryType("transfer").IsValid())
	assert.False(t, EntryType("").IsValid())
}

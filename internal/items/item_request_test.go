package items

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemListQueryNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults untouched", 1, 20, 1, 20},
		{"zero limit falls back", 1, 0, 1, 20},
		{"negative values fall back", -3, -1, 1, 20},
		{"explicit values kept", 4, 50, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ItemListQuery{Page: tt.page, Limit: tt.limit}
			q.Normalize()
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Greater(t, q.Limit, 0)
		})
	}
}

func TestItemListQueryNormalizeUnparsableLimit(t *testing.T) {
	// Handlers discard the Atoi error, so garbage input arrives as zero.
	limit, _ := strconv.Atoi("abc")
	q := ItemListQuery{Page: 1, Limit: limit}
	q.Normalize()

	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 0, q.Offset())
}

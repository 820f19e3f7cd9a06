package purchases

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseListQueryNormalize(t *testing.T) {
	// Handlers discard the Atoi error, so garbage input arrives as zero.
	limit, _ := strconv.Atoi("not-a-number")
	q := PurchaseListQuery{Page: 0, Limit: limit}
	q.Normalize()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 0, q.Offset())
}

func TestPurchaseListQueryNormalizeKeepsExplicitValues(t *testing.T) {
	q := PurchaseListQuery{Page: 3, Limit: 10}
	q.Normalize()

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 20, q.Offset())
}

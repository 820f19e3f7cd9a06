package transactions

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionListQueryNormalize(t *testing.T) {
	// Handlers discard the Atoi error, so garbage input arrives as zero.
	limit, _ := strconv.Atoi("")
	q := TransactionListQuery{Page: 0, Limit: limit}
	q.Normalize()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 0, q.Offset())
}

func TestTransactionListQueryOffset(t *testing.T) {
	q := TransactionListQuery{Page: 4, Limit: 25}
	q.Normalize()
	assert.Equal(t, 75, q.Offset())
}

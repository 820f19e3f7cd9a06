package items

import (
	"testing"

	"stockroom/internal/ledger"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Apply(tx *goqu.TxDatabase, itemID int, quantity int, entryType ledger.EntryType, purpose string, userName string) (*models.Item, error) {
	args := m.Called(tx, itemID, quantity, entryType, purpose, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func TestWithdrawSingleAppliesLedgerWithdrawal(t *testing.T) {
	mockLedger := new(MockLedger)
	service := &ItemService{ledger: mockLedger}

	updated := &models.Item{ID: 7, Name: "Screwdriver", Quantity: 6}
	mockLedger.On("Apply", mock.Anything, 7, 4, ledger.Withdrawal, "test", "alice").
		Return(updated, nil).Once()

	item, err := service.withdrawTx(nil, 7, 4, "test", "alice")

	assert.NoError(t, err)
	assert.Equal(t, 6, item.Quantity)
	mockLedger.AssertExpectations(t)
}

func TestWithdrawSinglePropagatesInsufficientStock(t *testing.T) {
	mockLedger := new(MockLedger)
	service := &ItemService{ledger: mockLedger}

	mockLedger.On("Apply", mock.Anything, 7, 5, ledger.Withdrawal, "test", "alice").
		Return(nil, custom_error.NewInsufficientStockError(7, 5, 2)).Once()

	_, err := service.withdrawTx(nil, 7, 5, "test", "alice")

	var insufficient *custom_error.InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Available)
	mockLedger.AssertExpectations(t)
}

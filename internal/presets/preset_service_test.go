package presets

import (
	"errors"
	"testing"

	"stockroom/internal/ledger"
	"stockroom/internal/metrics"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/metadata"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) GetPresetRowTx(tx *goqu.TxDatabase, presetID int) (*models.Preset, error) {
	args := m.Called(tx, presetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preset), args.Error(1)
}

func (m *MockWithdrawalRepository) GetPresetItemsTx(tx *goqu.TxDatabase, presetID int) ([]models.PresetItem, error) {
	args := m.Called(tx, presetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PresetItem), args.Error(1)
}

func (m *MockWithdrawalRepository) GetStockedItemsForUpdate(tx *goqu.TxDatabase, categoryID int) ([]StockedItem, error) {
	args := m.Called(tx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StockedItem), args.Error(1)
}

func (m *MockWithdrawalRepository) RecordWithdrawal(tx *goqu.TxDatabase, presetID, itemID, quantity int, withdrawnBy, notes string) error {
	args := m.Called(tx, presetID, itemID, quantity, withdrawnBy, notes)
	return args.Error(0)
}

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

func newTestService(pr WithdrawalRepository, l ledger.Ledger) *PresetService {
	return &PresetService{pr: pr, ledger: l}
}

func TestWithdrawPresetGreedyAllocation(t *testing.T) {
	mockRepo := new(MockWithdrawalRepository)
	mockLedger := new(MockLedger)
	service := newTestService(mockRepo, mockLedger)

	preset := &models.Preset{ID: 1, Name: "Field Kit"}
	presetItems := []models.PresetItem{
		{PresetID: 1, CategoryID: 10, CategoryName: "Cables", QuantityNeeded: 5},
	}
	// Largest stock first: the allocation should drain item 100 before
	// touching item 101.
	stocked := []StockedItem{
		{ID: 100, Name: "HDMI 2m", Quantity: 3},
		{ID: 101, Name: "HDMI 1m", Quantity: 3},
	}

	mockRepo.On("GetPresetRowTx", mock.Anything, 1).Return(preset, nil).Once()
	mockRepo.On("GetPresetItemsTx", mock.Anything, 1).Return(presetItems, nil).Once()
	mockRepo.On("GetStockedItemsForUpdate", mock.Anything, 10).Return(stocked, nil).Once()

	mockLedger.On("Apply", mock.Anything, 100, 3, ledger.Withdrawal, "event", "alice").
		Return(&models.Item{ID: 100, Quantity: 0}, nil).Once()
	mockLedger.On("Apply", mock.Anything, 101, 2, ledger.Withdrawal, "event", "alice").
		Return(&models.Item{ID: 101, Quantity: 1}, nil).Once()

	mockRepo.On("RecordWithdrawal", mock.Anything, 1, 100, 3, "alice", "Withdrawn for preset: No specific requirements").Return(nil).Once()
	mockRepo.On("RecordWithdrawal", mock.Anything, 1, 101, 2, "alice", "Withdrawn for preset: No specific requirements").Return(nil).Once()

	results, entries, err := service.withdrawPresetTx(nil, 1, "alice", "event")

	assert.NoError(t, err)
	assert.Equal(t, []models.WithdrawalResult{
		{CategoryName: "Cables", Requested: 5, Withdrawn: 5, Status: metadata.WithdrawalSuccess},
	}, results)
	assert.Equal(t, 2, entries)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestWithdrawPresetPartial(t *testing.T) {
	mockRepo := new(MockWithdrawalRepository)
	mockLedger := new(MockLedger)
	service := newTestService(mockRepo, mockLedger)

	preset := &models.Preset{ID: 1, Name: "Field Kit"}
	presetItems := []models.PresetItem{
		{PresetID: 1, CategoryID: 10, CategoryName: "Cables", QuantityNeeded: 5},
	}
	stocked := []StockedItem{
		{ID: 100, Name: "HDMI 2m", Quantity: 3},
	}

	mockRepo.On("GetPresetRowTx", mock.Anything, 1).Return(preset, nil).Once()
	mockRepo.On("GetPresetItemsTx", mock.Anything, 1).Return(presetItems, nil).Once()
	mockRepo.On("GetStockedItemsForUpdate", mock.Anything, 10).Return(stocked, nil).Once()
	mockLedger.On("Apply", mock.Anything, 100, 3, ledger.Withdrawal, "event", "alice").
		Return(&models.Item{ID: 100, Quantity: 0}, nil).Once()
	mockRepo.On("RecordWithdrawal", mock.Anything, 1, 100, 3, "alice", mock.Anything).Return(nil).Once()

	results, entries, err := service.withdrawPresetTx(nil, 1, "alice", "event")

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 5, results[0].Requested)
	assert.Equal(t, 3, results[0].Withdrawn)
	assert.Equal(t, metadata.WithdrawalPartial, results[0].Status)
	assert.Equal(t, 1, entries)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestWithdrawPresetEmptyCategory(t *testing.T) {
	mockRepo := new(MockWithdrawalRepository)
	mockLedger := new(MockLedger)
	service := newTestService(mockRepo, mockLedger)

	preset := &models.Preset{ID: 1, Name: "Field Kit"}
	presetItems := []models.PresetItem{
		{PresetID: 1, CategoryID: 10, CategoryName: "Cables", QuantityNeeded: 2},
		{PresetID: 1, CategoryID: 11, CategoryName: "Routers", QuantityNeeded: 1},
	}

	mockRepo.On("GetPresetRowTx", mock.Anything, 1).Return(preset, nil).Once()
	mockRepo.On("GetPresetItemsTx", mock.Anything, 1).Return(presetItems, nil).Once()
	mockRepo.On("GetStockedItemsForUpdate", mock.Anything, 10).Return([]StockedItem{}, nil).Once()
	mockRepo.On("GetStockedItemsForUpdate", mock.Anything, 11).Return([]StockedItem{{ID: 200, Name: "RB2011", Quantity: 4}}, nil).Once()
	mockLedger.On("Apply", mock.Anything, 200, 1, ledger.Withdrawal, "event", "alice").
		Return(&models.Item{ID: 200, Quantity: 3}, nil).Once()
	mockRepo.On("RecordWithdrawal", mock.Anything, 1, 200, 1, "alice", mock.Anything).Return(nil).Once()

	results, _, err := service.withdrawPresetTx(nil, 1, "alice", "event")

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, metadata.WithdrawalNotFound, results[0].Status)
	assert.Equal(t, 0, results[0].Withdrawn)
	assert.Equal(t, metadata.WithdrawalSuccess, results[1].Status)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestWithdrawPresetMissingPreset(t *testing.T) {
	mockRepo := new(MockWithdrawalRepository)
	service := newTestService(mockRepo, new(MockLedger))

	mockRepo.On("GetPresetRowTx", mock.Anything, 42).
		Return(nil, custom_error.NewNotFoundError("preset", 42)).Once()

	_, _, err := service.withdrawPresetTx(nil, 42, "alice", "event")

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockRepo.AssertExpectations(t)
}

func TestWithdrawPresetLedgerFailureAborts(t *testing.T) {
	mockRepo := new(MockWithdrawalRepository)
	mockLedger := new(MockLedger)
	service := newTestService(mockRepo, mockLedger)

	preset := &models.Preset{ID: 1, Name: "Field Kit"}
	presetItems := []models.PresetItem{
		{PresetID: 1, CategoryID: 10, CategoryName: "Cables", QuantityNeeded: 2},
	}
	stocked := []StockedItem{{ID: 100, Name: "HDMI 2m", Quantity: 2}}

	mockRepo.On("GetPresetRowTx", mock.Anything, 1).Return(preset, nil).Once()
	mockRepo.On("GetPresetItemsTx", mock.Anything, 1).Return(presetItems, nil).Once()
	mockRepo.On("GetStockedItemsForUpdate", mock.Anything, 10).Return(stocked, nil).Once()
	mockLedger.On("Apply", mock.Anything, 100, 2, ledger.Withdrawal, "event", "alice").
		Return(nil, errors.New("unexpected database failure")).Once()

	_, _, err := service.withdrawPresetTx(nil, 1, "alice", "event")

	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestRecordWithdrawalMetricsAfterCommit(t *testing.T) {
	results := []models.WithdrawalResult{
		{CategoryName: "Cables", Requested: 5, Withdrawn: 5, Status: metadata.WithdrawalSuccess},
		{CategoryName: "Routers", Requested: 2, Withdrawn: 1, Status: metadata.WithdrawalPartial},
	}

	entriesBefore := testutil.ToFloat64(metrics.LedgerEntries.WithLabelValues(string(ledger.Withdrawal)))
	movedBefore := testutil.ToFloat64(metrics.QuantityMoved.WithLabelValues(string(ledger.Withdrawal)))
	successBefore := testutil.ToFloat64(metrics.PresetWithdrawals.WithLabelValues(string(metadata.WithdrawalSuccess)))
	partialBefore := testutil.ToFloat64(metrics.PresetWithdrawals.WithLabelValues(string(metadata.WithdrawalPartial)))

	recordWithdrawalMetrics(results, 3)

	assert.Equal(t, entriesBefore+3, testutil.ToFloat64(metrics.LedgerEntries.WithLabelValues(string(ledger.Withdrawal))))
	assert.Equal(t, movedBefore+6, testutil.ToFloat64(metrics.QuantityMoved.WithLabelValues(string(ledger.Withdrawal))))
	assert.Equal(t, successBefore+1, testutil.ToFloat64(metrics.PresetWithdrawals.WithLabelValues(string(metadata.WithdrawalSuccess))))
	assert.Equal(t, partialBefore+1, testutil.ToFloat64(metrics.PresetWithdrawals.WithLabelValues(string(metadata.WithdrawalPartial))))
}

func TestRecordWithdrawalMetricsNoEntries(t *testing.T) {
	results := []models.WithdrawalResult{
		{CategoryName: "Cables", Requested: 5, Withdrawn: 0, Status: metadata.WithdrawalNotFound},
	}

	entriesBefore := testutil.ToFloat64(metrics.LedgerEntries.WithLabelValues(string(ledger.Withdrawal)))

	recordWithdrawalMetrics(results, 0)

	assert.Equal(t, entriesBefore, testutil.ToFloat64(metrics.LedgerEntries.WithLabelValues(string(ledger.Withdrawal))))
}

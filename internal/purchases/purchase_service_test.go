package purchases

import (
	"testing"

	"stockroom/internal/ledger"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/metadata"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFulfillmentRepository struct {
	mock.Mock
}

func (m *MockFulfillmentRepository) GetRequestForUpdate(tx *goqu.TxDatabase, requestID int) (*models.PurchaseRequest, error) {
	args := m.Called(tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseRequest), args.Error(1)
}

func (m *MockFulfillmentRepository) InsertItem(tx *goqu.TxDatabase, categoryID int, req CompleteRequest, description *string) (int, error) {
	args := m.Called(tx, categoryID, req, description)
	return args.Int(0), args.Error(1)
}

func (m *MockFulfillmentRepository) RecordItemMapping(tx *goqu.TxDatabase, requestID, itemID, quantity int, addedBy string, notes *string) error {
	args := m.Called(tx, requestID, itemID, quantity, addedBy, notes)
	return args.Error(0)
}

func (m *MockFulfillmentRepository) UpdateCompletion(tx *goqu.TxDatabase, requestID, completedUnits int, status metadata.RequestStatus, markCompleted bool) error {
	args := m.Called(tx, requestID, completedUnits, status, markCompleted)
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

func approvedRequest(unitsCount, completedUnits int) *models.PurchaseRequest {
	return &models.PurchaseRequest{
		ID:             7,
		CategoryID:     3,
		CategoryName:   "Cables",
		UnitsCount:     unitsCount,
		CompletedUnits: completedUnits,
		Status:         metadata.StatusApproved,
		Requester:      "bob",
	}
}

func TestCompleteIncrementsCounter(t *testing.T) {
	mockRepo := new(MockFulfillmentRepository)
	mockLedger := new(MockLedger)
	service := &PurchaseService{pr: mockRepo, ledger: mockLedger}

	req := CompleteRequest{ItemName: "HDMI 2m", Quantity: 10}

	mockRepo.On("GetRequestForUpdate", mock.Anything, 7).Return(approvedRequest(3, 0), nil).Once()
	mockRepo.On("InsertItem", mock.Anything, 3, req, (*string)(nil)).Return(55, nil).Once()
	mockLedger.On("Apply", mock.Anything, 55, 10, ledger.Addition, "Purchase request #7 completed", "System").
		Return(&models.Item{ID: 55, Name: "HDMI 2m", Quantity: 10}, nil).Once()
	mockRepo.On("RecordItemMapping", mock.Anything, 7, 55, 10, "System", (*string)(nil)).Return(nil).Once()
	mockRepo.On("UpdateCompletion", mock.Anything, 7, 1, metadata.StatusApproved, false).Return(nil).Once()

	completion, err := service.completeTx(nil, 7, req)

	assert.NoError(t, err)
	assert.Equal(t, 55, completion.ItemAdded.ID)
	assert.Equal(t, 10, completion.ItemAdded.Quantity)
	assert.Equal(t, "Cables", completion.ItemAdded.Category.Name)
	assert.Equal(t, 1, completion.PurchaseRequest.CompletedUnits)
	assert.Equal(t, metadata.StatusApproved, completion.PurchaseRequest.Status)
	assert.Nil(t, completion.PurchaseRequest.CompletedAt)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestCompleteFinalUnitCompletesRequest(t *testing.T) {
	mockRepo := new(MockFulfillmentRepository)
	mockLedger := new(MockLedger)
	service := &PurchaseService{pr: mockRepo, ledger: mockLedger}

	req := CompleteRequest{ItemName: "HDMI 2m", Quantity: 2}

	mockRepo.On("GetRequestForUpdate", mock.Anything, 7).Return(approvedRequest(3, 2), nil).Once()
	mockRepo.On("InsertItem", mock.Anything, 3, req, (*string)(nil)).Return(56, nil).Once()
	mockLedger.On("Apply", mock.Anything, 56, 2, ledger.Addition, "Purchase request #7 completed", "System").
		Return(&models.Item{ID: 56, Name: "HDMI 2m", Quantity: 2}, nil).Once()
	mockRepo.On("RecordItemMapping", mock.Anything, 7, 56, 2, "System", (*string)(nil)).Return(nil).Once()
	mockRepo.On("UpdateCompletion", mock.Anything, 7, 3, metadata.StatusCompleted, true).Return(nil).Once()

	completion, err := service.completeTx(nil, 7, req)

	assert.NoError(t, err)
	assert.Equal(t, 3, completion.PurchaseRequest.CompletedUnits)
	assert.Equal(t, metadata.StatusCompleted, completion.PurchaseRequest.Status)
	assert.NotNil(t, completion.PurchaseRequest.CompletedAt)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestCompleteRejectsNonApprovedRequest(t *testing.T) {
	mockRepo := new(MockFulfillmentRepository)
	service := &PurchaseService{pr: mockRepo, ledger: new(MockLedger)}

	pending := approvedRequest(3, 0)
	pending.Status = metadata.StatusPending

	mockRepo.On("GetRequestForUpdate", mock.Anything, 7).Return(pending, nil).Once()

	_, err := service.completeTx(nil, 7, CompleteRequest{ItemName: "HDMI 2m", Quantity: 1})

	var invalidState *custom_error.InvalidStateError
	assert.ErrorAs(t, err, &invalidState)
	assert.Equal(t, "pending", invalidState.State)
	mockRepo.AssertExpectations(t)
}

func TestCompleteMissingRequest(t *testing.T) {
	mockRepo := new(MockFulfillmentRepository)
	service := &PurchaseService{pr: mockRepo, ledger: new(MockLedger)}

	mockRepo.On("GetRequestForUpdate", mock.Anything, 99).
		Return(nil, custom_error.NewNotFoundError("purchase request", 99)).Once()

	_, err := service.completeTx(nil, 99, CompleteRequest{ItemName: "HDMI 2m", Quantity: 1})

	var notFound *custom_error.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	mockRepo.AssertExpectations(t)
}

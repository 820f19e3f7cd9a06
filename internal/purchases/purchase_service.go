package purchases

import (
	"fmt"
	"time"

	"stockroom/internal/ledger"
	"stockroom/internal/metrics"
	"stockroom/internal/repository"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/metadata"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// systemActor attributes ledger additions made on behalf of the fulfillment
// flow rather than a person.
const systemActor = "System"

// FulfillmentRepository is the transactional slice of the purchase store the
// completion flow needs.
type FulfillmentRepository interface {
	GetRequestForUpdate(tx *goqu.TxDatabase, requestID int) (*models.PurchaseRequest, error)
	InsertItem(tx *goqu.TxDatabase, categoryID int, req CompleteRequest, description *string) (int, error)
	RecordItemMapping(tx *goqu.TxDatabase, requestID, itemID, quantity int, addedBy string, notes *string) error
	UpdateCompletion(tx *goqu.TxDatabase, requestID, completedUnits int, status metadata.RequestStatus, markCompleted bool) error
}

type PurchaseService struct {
	r      *repository.Repository
	pr     FulfillmentRepository
	ledger ledger.Ledger
}

func NewPurchaseService(r *repository.Repository, pr FulfillmentRepository, l ledger.Ledger) *PurchaseService {
	return &PurchaseService{r: r, pr: pr, ledger: l}
}

// Complete fulfills one unit of an approved request: the received item enters
// inventory through the ledger and the request's completion counter advances.
// Each call counts as one unit regardless of the item quantity delivered.
func (s *PurchaseService) Complete(requestID int, req CompleteRequest) (*models.PurchaseCompletion, error) {
	var completion *models.PurchaseCompletion

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var txErr error
		completion, txErr = s.completeTx(tx, requestID, req)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	// Counters move only once the transaction has committed.
	metrics.PurchaseCompletions.Inc()
	metrics.LedgerEntries.WithLabelValues(string(ledger.Addition)).Inc()
	metrics.QuantityMoved.WithLabelValues(string(ledger.Addition)).Add(float64(req.Quantity))

	return completion, nil
}

func (s *PurchaseService) completeTx(tx *goqu.TxDatabase, requestID int, req CompleteRequest) (*models.PurchaseCompletion, error) {
	request, err := s.pr.GetRequestForUpdate(tx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != metadata.StatusApproved {
		return nil, custom_error.NewInvalidStateError("purchase request", string(request.Status), string(metadata.StatusApproved))
	}

	itemID, err := s.pr.InsertItem(tx, request.CategoryID, req, request.Description)
	if err != nil {
		return nil, err
	}

	purpose := fmt.Sprintf("Purchase request #%d completed", requestID)
	item, err := s.ledger.Apply(tx, itemID, req.Quantity, ledger.Addition, purpose, systemActor)
	if err != nil {
		return nil, err
	}

	if err := s.pr.RecordItemMapping(tx, requestID, itemID, req.Quantity, systemActor, req.Notes); err != nil {
		return nil, err
	}

	request.CompletedUnits++
	markCompleted := request.CompletedUnits >= request.UnitsCount
	if markCompleted {
		request.Status = metadata.StatusCompleted
		now := time.Now()
		request.CompletedAt = &now
	}

	if err := s.pr.UpdateCompletion(tx, requestID, request.CompletedUnits, request.Status, markCompleted); err != nil {
		return nil, err
	}

	item.Category.Name = request.CategoryName

	return &models.PurchaseCompletion{
		ItemAdded:       *item,
		PurchaseRequest: *request,
	}, nil
}

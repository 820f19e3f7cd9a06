package items

import (
	"stockroom/internal/ledger"
	"stockroom/internal/metrics"
	"stockroom/internal/repository"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ItemService struct {
	r      *repository.Repository
	ledger ledger.Ledger
}

func NewItemService(r *repository.Repository, l ledger.Ledger) *ItemService {
	return &ItemService{r: r, ledger: l}
}

// WithdrawSingle removes quantity units from one item inside its own
// transaction. The ledger locks the row, enforces the non-negative invariant
// and appends the audit record; any failure rolls the whole operation back.
func (s *ItemService) WithdrawSingle(itemID int, quantity int, purpose string, userName string) (*models.Item, error) {
	var item *models.Item

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		item, err = s.withdrawTx(tx, itemID, quantity, purpose, userName)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Counters move only once the transaction has committed.
	metrics.LedgerEntries.WithLabelValues(string(ledger.Withdrawal)).Inc()
	metrics.QuantityMoved.WithLabelValues(string(ledger.Withdrawal)).Add(float64(quantity))

	return item, nil
}

func (s *ItemService) withdrawTx(tx *goqu.TxDatabase, itemID int, quantity int, purpose string, userName string) (*models.Item, error) {
	return s.ledger.Apply(tx, itemID, quantity, ledger.Withdrawal, purpose, userName)
}

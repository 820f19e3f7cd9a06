package ledger

import (
	"fmt"

	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type EntryType string

const (
	Withdrawal EntryType = "withdrawal"
	Addition   EntryType = "addition"
)

func (t EntryType) IsValid() bool {
	return t == Withdrawal || t == Addition
}

// Ledger is the only sanctioned path for mutating an item's quantity. Every
// change locks the item row, re-reads the authoritative quantity and appends
// an immutable transaction record in the same database transaction.
type Ledger interface {
	Apply(tx *goqu.TxDatabase, itemID int, quantity int, entryType EntryType, purpose string, userName string) (*models.Item, error)
}

type StockLedger struct{}

func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// Apply adjusts the item's quantity by the given amount and appends the
// matching transaction row. The caller owns the transaction and must roll it
// back when Apply returns an error.
func (l *StockLedger) Apply(tx *goqu.TxDatabase, itemID int, quantity int, entryType EntryType, purpose string, userName string) (*models.Item, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("ledger delta must be positive, got %d", quantity)
	}
	if !entryType.IsValid() {
		return nil, fmt.Errorf("unknown ledger entry type: %s", entryType)
	}

	var current int
	found, err := tx.Select("quantity").
		From("items").
		Where(goqu.Ex{"id": itemID}).
		ForUpdate(exp.Wait).
		Executor().
		ScanVal(&current)
	if err != nil {
		return nil, fmt.Errorf("failed to lock item %d: %w", itemID, err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("item", itemID)
	}

	next, ok := nextQuantity(current, quantity, entryType)
	if !ok {
		return nil, custom_error.NewInsufficientStockError(itemID, quantity, current)
	}

	var flatItem models.FlatItemRecord
	updated, err := tx.Update("items").
		Set(goqu.Record{
			"quantity":   next,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": itemID}).
		Returning(
			goqu.I("id").As("item_id"),
			goqu.I("name").As("item_name"),
			goqu.C("quantity"),
			goqu.C("location"),
			goqu.C("description"),
			goqu.C("properties"),
			goqu.C("category_id"),
			goqu.C("created_at"),
			goqu.C("updated_at"),
		).
		Executor().
		ScanStruct(&flatItem)
	if err != nil {
		return nil, fmt.Errorf("failed to update quantity for item %d: %w", itemID, err)
	}
	if !updated {
		return nil, custom_error.NewNotFoundError("item", itemID)
	}

	if _, err := tx.Insert("transactions").
		Rows(goqu.Record{
			"item_id":   itemID,
			"type":      string(entryType),
			"quantity":  quantity,
			"purpose":   purpose,
			"user_name": userName,
		}).
		Executor().
		Exec(); err != nil {
		return nil, fmt.Errorf("failed to append transaction record for item %d: %w", itemID, err)
	}

	if _, err := tx.Select("name").
		From("categories").
		Where(goqu.Ex{"id": flatItem.CategoryID}).
		Executor().
		ScanVal(&flatItem.CategoryName); err != nil {
		return nil, fmt.Errorf("failed to read category name for item %d: %w", itemID, err)
	}

	item, err := flatItem.TransformToItem()
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// nextQuantity computes the resulting quantity, refusing any withdrawal that
// would drive it negative.
func nextQuantity(current, quantity int, entryType EntryType) (int, bool) {
	switch entryType {
	case Withdrawal:
		if current < quantity {
			return current, false
		}
		return current - quantity, true
	case Addition:
		return current + quantity, true
	default:
		return current, false
	}
}

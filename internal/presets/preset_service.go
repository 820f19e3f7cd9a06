package presets

import (
	"fmt"

	"stockroom/internal/ledger"
	"stockroom/internal/metrics"
	"stockroom/internal/repository"
	"stockroom/pkg/metadata"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// WithdrawalRepository is the slice of the preset repository the mass
// withdrawal needs.
type WithdrawalRepository interface {
	GetPresetRowTx(tx *goqu.TxDatabase, presetID int) (*models.Preset, error)
	GetPresetItemsTx(tx *goqu.TxDatabase, presetID int) ([]models.PresetItem, error)
	GetStockedItemsForUpdate(tx *goqu.TxDatabase, categoryID int) ([]StockedItem, error)
	RecordWithdrawal(tx *goqu.TxDatabase, presetID, itemID, quantity int, withdrawnBy, notes string) error
}

type PresetService struct {
	r      *repository.Repository
	pr     WithdrawalRepository
	ledger ledger.Ledger
}

func NewPresetService(r *repository.Repository, pr WithdrawalRepository, l ledger.Ledger) *PresetService {
	return &PresetService{r: r, pr: pr, ledger: l}
}

// WithdrawPreset bulk-withdraws every category the preset names, in a single
// transaction. A category that cannot be fully satisfied yields a partial or
// not_found result rather than an error; only unexpected failures roll the
// operation back.
func (s *PresetService) WithdrawPreset(presetID int, userName, purpose string) ([]models.WithdrawalResult, error) {
	var (
		results []models.WithdrawalResult
		entries int
	)

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		results, entries, err = s.withdrawPresetTx(tx, presetID, userName, purpose)
		return err
	})
	if err != nil {
		return nil, err
	}

	recordWithdrawalMetrics(results, entries)

	return results, nil
}

// withdrawPresetTx returns the per-category results plus the number of ledger
// entries appended, so counters can move after the commit.
func (s *PresetService) withdrawPresetTx(tx *goqu.TxDatabase, presetID int, userName, purpose string) ([]models.WithdrawalResult, int, error) {
	if _, err := s.pr.GetPresetRowTx(tx, presetID); err != nil {
		return nil, 0, err
	}

	presetItems, err := s.pr.GetPresetItemsTx(tx, presetID)
	if err != nil {
		return nil, 0, err
	}

	results := make([]models.WithdrawalResult, 0, len(presetItems))
	entries := 0

	for _, presetItem := range presetItems {
		stockedItems, err := s.pr.GetStockedItemsForUpdate(tx, presetItem.CategoryID)
		if err != nil {
			return nil, 0, err
		}

		if len(stockedItems) == 0 {
			results = append(results, models.WithdrawalResult{
				CategoryName: presetItem.CategoryName,
				Requested:    presetItem.QuantityNeeded,
				Withdrawn:    0,
				Status:       metadata.WithdrawalNotFound,
			})
			continue
		}

		withdrawn, applied, err := s.consumeStock(tx, presetID, presetItem, stockedItems, userName, purpose)
		if err != nil {
			return nil, 0, err
		}
		entries += applied

		status := metadata.WithdrawalSuccess
		if withdrawn < presetItem.QuantityNeeded {
			status = metadata.WithdrawalPartial
		}

		results = append(results, models.WithdrawalResult{
			CategoryName: presetItem.CategoryName,
			Requested:    presetItem.QuantityNeeded,
			Withdrawn:    withdrawn,
			Status:       status,
		})
	}

	return results, entries, nil
}

// consumeStock walks the locked items largest stock first and withdraws
// greedily until the line is satisfied or stock runs out. It reports the
// withdrawn quantity and how many ledger entries it appended.
func (s *PresetService) consumeStock(tx *goqu.TxDatabase, presetID int, presetItem models.PresetItem, stockedItems []StockedItem, userName, purpose string) (int, int, error) {
	remaining := presetItem.QuantityNeeded
	withdrawn := 0
	applied := 0

	for _, stockedItem := range stockedItems {
		if remaining <= 0 {
			break
		}

		quantity := remaining
		if stockedItem.Quantity < quantity {
			quantity = stockedItem.Quantity
		}

		if _, err := s.ledger.Apply(tx, stockedItem.ID, quantity, ledger.Withdrawal, purpose, userName); err != nil {
			return 0, 0, err
		}

		if err := s.pr.RecordWithdrawal(tx, presetID, stockedItem.ID, quantity, userName, withdrawalNote(presetItem)); err != nil {
			return 0, 0, err
		}

		remaining -= quantity
		withdrawn += quantity
		applied++
	}

	return withdrawn, applied, nil
}

// recordWithdrawalMetrics runs strictly after a successful commit so a rolled
// back withdrawal never moves a counter.
func recordWithdrawalMetrics(results []models.WithdrawalResult, entries int) {
	moved := 0
	for _, result := range results {
		metrics.PresetWithdrawals.WithLabelValues(string(result.Status)).Inc()
		moved += result.Withdrawn
	}
	if entries > 0 {
		metrics.LedgerEntries.WithLabelValues(string(ledger.Withdrawal)).Add(float64(entries))
		metrics.QuantityMoved.WithLabelValues(string(ledger.Withdrawal)).Add(float64(moved))
	}
}

func withdrawalNote(presetItem models.PresetItem) string {
	requirements := "No specific requirements"
	if presetItem.Requirements != nil && *presetItem.Requirements != "" {
		requirements = *presetItem.Requirements
	}
	return fmt.Sprintf("Withdrawn for preset: %s", requirements)
}

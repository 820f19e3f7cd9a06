package presets

import (
	"fmt"

	"stockroom/internal/repository"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// StockedItem is the slice of an item the allocation loop needs: identity
// and locked quantity.
type StockedItem struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Quantity int    `db:"quantity"`
}

type PresetRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *PresetRepository {
	return &PresetRepository{repository: r}
}

func (r *PresetRepository) GetPresets() (*[]models.Preset, error) {
	var presets []models.Preset

	query := r.repository.GoquDBWrapper.
		Select("id", "name", "description", "created_at").
		From("presets").
		Order(goqu.C("name").Asc())

	if err := query.Executor().ScanStructs(&presets); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for presets: %w", err)
	}

	return &presets, nil
}

func (r *PresetRepository) GetPreset(presetID int) (*models.Preset, error) {
	var preset models.Preset

	found, err := r.repository.GoquDBWrapper.
		Select("id", "name", "description", "created_at").
		From("presets").
		Where(goqu.Ex{"id": presetID}).
		Executor().
		ScanStruct(&preset)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("preset", presetID)
	}

	items, err := r.getPresetItems(r.repository.GoquDBWrapper.From(goqu.T("preset_items").As("pi")), presetID)
	if err != nil {
		return nil, err
	}
	preset.Items = items

	return &preset, nil
}

func (r *PresetRepository) getPresetItems(base *goqu.SelectDataset, presetID int) ([]models.PresetItem, error) {
	var items []models.PresetItem

	query := base.
		Select(
			goqu.I("pi.id").As("id"),
			goqu.I("pi.preset_id").As("preset_id"),
			goqu.I("pi.category_id").As("category_id"),
			goqu.I("c.name").As("category_name"),
			goqu.I("pi.quantity_needed").As("quantity_needed"),
			goqu.I("pi.requirements").As("requirements"),
			goqu.I("pi.notes").As("notes"),
		).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"pi.category_id": goqu.I("c.id")})).
		Where(goqu.Ex{"pi.preset_id": presetID}).
		Order(goqu.I("c.name").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for preset items: %w", err)
	}

	return items, nil
}

func (r *PresetRepository) CreatePreset(req PresetRequest) (*models.Preset, error) {
	var presetID int

	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var err error
		presetID, err = r.insertPreset(tx, req.Name, req.Description)
		if err != nil {
			return err
		}
		return r.insertPresetItems(tx, presetID, req.Items)
	})
	if err != nil {
		return nil, err
	}

	return r.GetPreset(presetID)
}

func (r *PresetRepository) UpdatePreset(presetID int, req UpdatePresetRequest) (*models.Preset, error) {
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		changes := goqu.Record{}
		if req.Name != nil {
			changes["name"] = *req.Name
		}
		if req.Description != nil {
			changes["description"] = *req.Description
		}

		if len(changes) > 0 {
			result, err := tx.Update("presets").
				Set(changes).
				Where(goqu.Ex{"id": presetID}).
				Executor().
				Exec()
			if err != nil {
				return fmt.Errorf("failed to update preset %d: %w", presetID, err)
			}
			rowsAffected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("could not retrieve rows affected: %w", err)
			}
			if rowsAffected == 0 {
				return custom_error.NewNotFoundError("preset", presetID)
			}
		}

		if req.Items != nil {
			if _, err := tx.Delete("preset_items").
				Where(goqu.Ex{"preset_id": presetID}).
				Executor().
				Exec(); err != nil {
				return fmt.Errorf("failed to replace preset items: %w", err)
			}
			return r.insertPresetItems(tx, presetID, req.Items)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetPreset(presetID)
}

func (r *PresetRepository) insertPreset(tx *goqu.TxDatabase, name string, description *string) (int, error) {
	var presetID int

	query := tx.Insert("presets").
		Rows(goqu.Record{
			"name":        name,
			"description": description,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&presetID); err != nil {
		return 0, fmt.Errorf("failed to insert preset record: %w", err)
	}

	return presetID, nil
}

func (r *PresetRepository) insertPresetItems(tx *goqu.TxDatabase, presetID int, items []PresetItemRequest) error {
	for _, item := range items {
		quantityNeeded := item.QuantityNeeded
		if quantityNeeded < 1 {
			quantityNeeded = 1
		}

		if _, err := tx.Insert("preset_items").
			Rows(goqu.Record{
				"preset_id":       presetID,
				"category_id":     item.CategoryID,
				"quantity_needed": quantityNeeded,
				"requirements":    item.Requirements,
				"notes":           item.Notes,
			}).
			Executor().
			Exec(); err != nil {
			return fmt.Errorf("failed to insert preset item for category %d: %w", item.CategoryID, err)
		}
	}

	return nil
}

// DeletePreset removes the preset; preset_items rows go with it via the
// cascading foreign key.
func (r *PresetRepository) DeletePreset(presetID int) error {
	result, err := r.repository.GoquDBWrapper.Delete("presets").
		Where(goqu.Ex{"id": presetID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete preset %d: %w", presetID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("preset", presetID)
	}

	return nil
}

func (r *PresetRepository) CheckAvailability(presetID int) (*[]models.PresetAvailability, error) {
	var availability []models.PresetAvailability

	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("pi.category_id").As("category_id"),
			goqu.I("c.name").As("category_name"),
			goqu.I("pi.quantity_needed").As("quantity_needed"),
			goqu.I("pi.requirements").As("requirements"),
			goqu.I("pi.notes").As("notes"),
			goqu.L("COALESCE(SUM(i.quantity), 0)").As("available_quantity"),
			goqu.L("COUNT(i.id)").As("available_items_count"),
			goqu.L(`CASE
				WHEN COALESCE(SUM(i.quantity), 0) >= pi.quantity_needed THEN 'sufficient'
				WHEN COALESCE(SUM(i.quantity), 0) > 0 THEN 'low'
				ELSE 'none'
			END`).As("status"),
		).
		From(goqu.T("preset_items").As("pi")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"pi.category_id": goqu.I("c.id")})).
		LeftJoin(goqu.T("items").As("i"), goqu.On(goqu.Ex{"i.category_id": goqu.I("pi.category_id")})).
		Where(goqu.Ex{"pi.preset_id": presetID}).
		GroupBy(
			goqu.I("pi.category_id"),
			goqu.I("c.name"),
			goqu.I("pi.quantity_needed"),
			goqu.I("pi.requirements"),
			goqu.I("pi.notes"),
		).
		Order(goqu.I("c.name").Asc())

	if err := query.Executor().ScanStructs(&availability); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for preset availability: %w", err)
	}

	return &availability, nil
}

// GetPresetRowTx verifies the preset exists inside the withdrawal
// transaction.
func (r *PresetRepository) GetPresetRowTx(tx *goqu.TxDatabase, presetID int) (*models.Preset, error) {
	var preset models.Preset

	found, err := tx.Select("id", "name", "description", "created_at").
		From("presets").
		Where(goqu.Ex{"id": presetID}).
		Executor().
		ScanStruct(&preset)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("preset", presetID)
	}

	return &preset, nil
}

// GetPresetItemsTx returns the preset's lines ordered by category name so
// concurrent mass withdrawals walk categories in the same order.
func (r *PresetRepository) GetPresetItemsTx(tx *goqu.TxDatabase, presetID int) ([]models.PresetItem, error) {
	return r.getPresetItems(tx.From(goqu.T("preset_items").As("pi")), presetID)
}

// GetStockedItemsForUpdate locks every stocked item of the category and
// returns them largest quantity first, the order the greedy allocation
// consumes them in.
func (r *PresetRepository) GetStockedItemsForUpdate(tx *goqu.TxDatabase, categoryID int) ([]StockedItem, error) {
	var items []StockedItem

	query := tx.Select("id", "name", "quantity").
		From("items").
		Where(
			goqu.C("category_id").Eq(categoryID),
			goqu.C("quantity").Gt(0),
		).
		Order(goqu.C("quantity").Desc()).
		ForUpdate(exp.Wait)

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for stocked items: %w", err)
	}

	return items, nil
}

// RecordWithdrawal links a ledger withdrawal back to the preset that caused
// it.
func (r *PresetRepository) RecordWithdrawal(tx *goqu.TxDatabase, presetID, itemID, quantity int, withdrawnBy, notes string) error {
	if _, err := tx.Insert("preset_withdrawal_mapping").
		Rows(goqu.Record{
			"preset_id":          presetID,
			"item_id":            itemID,
			"quantity_withdrawn": quantity,
			"withdrawn_by":       withdrawnBy,
			"notes":              notes,
		}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to insert preset withdrawal mapping: %w", err)
	}

	return nil
}

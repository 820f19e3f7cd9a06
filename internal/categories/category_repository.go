package categories

import (
	"fmt"

	"stockroom/internal/repository"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type CategoryRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CategoryRepository {
	return &CategoryRepository{repository: r}
}

func (r *CategoryRepository) GetCategories() (*[]models.Category, error) {
	var categories []models.Category

	query := r.repository.GoquDBWrapper.
		Select("id", "name", "description", "parent_id", "is_active", "created_at").
		From("categories").
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.C("name").Asc())

	if err := query.Executor().ScanStructs(&categories); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for categories: %w", err)
	}

	return &categories, nil
}

// GetCategoryStats aggregates stock counts per active category, flagging
// low-stock (below 5) and out-of-stock items.
func (r *CategoryRepository) GetCategoryStats() (*[]models.CategoryStats, error) {
	var stats []models.CategoryStats

	query := r.repository.GoquDBWrapper.
		Select(
			goqu.I("c.id").As("id"),
			goqu.I("c.name").As("name"),
			goqu.I("c.description").As("description"),
			goqu.L("COALESCE(COUNT(i.id), 0)").As("total_items"),
			goqu.L("COALESCE(SUM(i.quantity), 0)").As("total_quantity"),
			goqu.L("COALESCE(SUM(CASE WHEN i.quantity < 5 AND i.quantity > 0 THEN 1 ELSE 0 END), 0)").As("low_stock_count"),
			goqu.L("COALESCE(SUM(CASE WHEN i.quantity = 0 THEN 1 ELSE 0 END), 0)").As("out_of_stock_count"),
		).
		From(goqu.T("categories").As("c")).
		LeftJoin(goqu.T("items").As("i"), goqu.On(goqu.Ex{"c.id": goqu.I("i.category_id")})).
		Where(goqu.Ex{"c.is_active": true}).
		GroupBy(goqu.I("c.id"), goqu.I("c.name"), goqu.I("c.description")).
		Order(goqu.I("c.name").Asc())

	if err := query.Executor().ScanStructs(&stats); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for category stats: %w", err)
	}

	return &stats, nil
}

func (r *CategoryRepository) GetCategory(categoryID int) (*models.Category, error) {
	var category models.Category

	query := r.repository.GoquDBWrapper.
		Select("id", "name", "description", "parent_id", "is_active", "created_at").
		From("categories").
		Where(goqu.Ex{"id": categoryID, "is_active": true})

	found, err := query.Executor().ScanStruct(&category)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("category", categoryID)
	}

	return &category, nil
}

func (r *CategoryRepository) ActiveNameExists(name string, excludeID int) (bool, error) {
	conditions := []goqu.Expression{
		goqu.C("name").Eq(name),
		goqu.C("is_active").Eq(true),
	}
	if excludeID > 0 {
		conditions = append(conditions, goqu.C("id").Neq(excludeID))
	}

	var id int
	found, err := r.repository.GoquDBWrapper.
		Select("id").
		From("categories").
		Where(conditions...).
		Executor().
		ScanVal(&id)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}

	return found, nil
}

func (r *CategoryRepository) PersistCategory(req CategoryRequest) (*models.Category, error) {
	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
	}

	query := r.repository.GoquDBWrapper.Insert("categories").
		Rows(goqu.Record{
			"name":        req.Name,
			"description": req.Description,
			"parent_id":   req.ParentID,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&category.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("category name already in use", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert category record: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) UpdateCategory(categoryID int, req UpdateCategoryRequest) (*models.Category, error) {
	changes := goqu.Record{}

	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.ParentID != nil {
		changes["parent_id"] = *req.ParentID
	}
	if req.IsActive != nil {
		changes["is_active"] = *req.IsActive
	}

	if len(changes) > 0 {
		result, err := r.repository.GoquDBWrapper.Update("categories").
			Set(changes).
			Where(goqu.Ex{"id": categoryID}).
			Executor().
			Exec()
		if err != nil {
			return nil, fmt.Errorf("failed to update category %d: %w", categoryID, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("could not retrieve rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return nil, custom_error.NewNotFoundError("category", categoryID)
		}
	}

	return r.GetCategory(categoryID)
}

// DeactivateCategory soft-deletes by flipping is_active. The row survives so
// ledger history keeps resolving, and presets referencing the category keep
// their audit trail.
func (r *CategoryRepository) DeactivateCategory(categoryID int) error {
	result, err := r.repository.GoquDBWrapper.Update("categories").
		Set(goqu.Record{"is_active": false}).
		Where(goqu.Ex{"id": categoryID, "is_active": true}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to deactivate category %d: %w", categoryID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("category", categoryID)
	}

	return nil
}

package items

import (
	"encoding/json"
	"fmt"

	"stockroom/internal/repository"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type ItemRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ItemRepository {
	return &ItemRepository{repository: r}
}

var itemColumns = []interface{}{
	goqu.I("i.id").As("item_id"),
	goqu.I("i.name").As("item_name"),
	goqu.I("i.quantity").As("quantity"),
	goqu.I("i.location").As("location"),
	goqu.I("i.description").As("description"),
	goqu.I("i.properties").As("properties"),
	goqu.I("i.category_id").As("category_id"),
	goqu.I("c.name").As("category_name"),
	goqu.I("i.created_at").As("created_at"),
	goqu.I("i.updated_at").As("updated_at"),
}

func (r *ItemRepository) listConditions(q ItemListQuery) []goqu.Expression {
	var conditions []goqu.Expression

	if q.Category != "" {
		conditions = append(conditions, goqu.I("c.name").Eq(q.Category))
	}
	if q.Search != "" {
		conditions = append(conditions, goqu.I("i.name").ILike("%"+q.Search+"%"))
	}
	if q.Location != "" {
		conditions = append(conditions, goqu.I("i.location").ILike("%"+q.Location+"%"))
	}
	for key, value := range q.Filters {
		if value == "" {
			continue
		}
		conditions = append(conditions, goqu.L("i.properties->>? = ?", key, value))
	}

	return conditions
}

func (r *ItemRepository) GetItems(q ItemListQuery) (*[]models.Item, int, error) {
	q.Normalize()
	conditions := r.listConditions(q)

	base := r.repository.GoquDBWrapper.
		From(goqu.T("items").As("i")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"i.category_id": goqu.I("c.id")})).
		Where(conditions...)

	var total int
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	var flatItems []models.FlatItemRecord
	query := base.Select(itemColumns...).
		Order(goqu.I("i.name").Asc()).
		Limit(uint(q.Limit)).
		Offset(uint(q.Offset()))

	if err := query.Executor().ScanStructs(&flatItems); err != nil {
		return nil, 0, fmt.Errorf("error executing SQL statement for items: %w", err)
	}

	items := make([]models.Item, 0, len(flatItems))
	for _, flat := range flatItems {
		item, err := flat.TransformToItem()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return &items, total, nil
}

func (r *ItemRepository) GetItem(itemID int) (*models.Item, error) {
	var flatItem models.FlatItemRecord

	query := r.repository.GoquDBWrapper.
		From(goqu.T("items").As("i")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"i.category_id": goqu.I("c.id")})).
		Select(itemColumns...).
		Where(goqu.Ex{"i.id": itemID})

	found, err := query.Executor().ScanStruct(&flatItem)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("item", itemID)
	}

	item, err := flatItem.TransformToItem()
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *ItemRepository) PersistItem(req ItemRequest) (*models.Item, error) {
	properties, err := marshalProperties(req.Properties)
	if err != nil {
		return nil, err
	}

	var itemID int
	query := r.repository.GoquDBWrapper.Insert("items").
		Rows(goqu.Record{
			"name":        req.Name,
			"category_id": req.CategoryID,
			"quantity":    req.Quantity,
			"location":    req.Location,
			"description": req.Description,
			"properties":  properties,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&itemID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, custom_error.WrapDBError("invalid category for item", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert item record: %w", err)
	}

	return r.GetItem(itemID)
}

func (r *ItemRepository) UpdateItem(itemID int, req UpdateItemRequest) (*models.Item, error) {
	changes := goqu.Record{"updated_at": goqu.L("NOW()")}

	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.CategoryID != nil {
		changes["category_id"] = *req.CategoryID
	}
	if req.Location != nil {
		changes["location"] = *req.Location
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Properties != nil {
		properties, err := marshalProperties(req.Properties)
		if err != nil {
			return nil, err
		}
		changes["properties"] = properties
	}

	result, err := r.repository.GoquDBWrapper.Update("items").
		Set(changes).
		Where(goqu.Ex{"id": itemID}).
		Executor().
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", itemID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, custom_error.NewNotFoundError("item", itemID)
	}

	return r.GetItem(itemID)
}

func (r *ItemRepository) DeleteItem(itemID int) error {
	result, err := r.repository.GoquDBWrapper.Delete("items").
		Where(goqu.Ex{"id": itemID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", itemID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("item", itemID)
	}

	return nil
}

func (r *ItemRepository) UpdateLocation(itemID int, location string) (*models.Item, error) {
	result, err := r.repository.GoquDBWrapper.Update("items").
		Set(goqu.Record{
			"location":   location,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": itemID}).
		Executor().
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update location for item %d: %w", itemID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, custom_error.NewNotFoundError("item", itemID)
	}

	return r.GetItem(itemID)
}

// GetLocatedItems returns every item carrying a non-empty location string,
// the input of the warehouse grid projection.
func (r *ItemRepository) GetLocatedItems() ([]models.Item, error) {
	var flatItems []models.FlatItemRecord

	query := r.repository.GoquDBWrapper.
		From(goqu.T("items").As("i")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"i.category_id": goqu.I("c.id")})).
		Select(itemColumns...).
		Where(
			goqu.I("i.location").IsNotNull(),
			goqu.I("i.location").Neq(""),
		).
		Order(goqu.I("i.location").Asc(), goqu.I("i.name").Asc())

	if err := query.Executor().ScanStructs(&flatItems); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for located items: %w", err)
	}

	items := make([]models.Item, 0, len(flatItems))
	for _, flat := range flatItems {
		item, err := flat.TransformToItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func marshalProperties(properties models.Properties) (string, error) {
	if properties == nil {
		properties = models.Properties{}
	}
	raw, err := json.Marshal(properties)
	if err != nil {
		return "", fmt.Errorf("failed to marshal item properties: %w", err)
	}
	return string(raw), nil
}

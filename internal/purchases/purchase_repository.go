package purchases

import (
	"encoding/json"
	"fmt"

	"stockroom/internal/repository"
	custom_error "stockroom/pkg/errors"
	"stockroom/pkg/metadata"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
)

type PurchaseRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *PurchaseRepository {
	return &PurchaseRepository{repository: r}
}

var purchaseColumns = []interface{}{
	goqu.I("pr.id").As("id"),
	goqu.I("pr.category_id").As("category_id"),
	goqu.I("c.name").As("category_name"),
	goqu.I("pr.units_count").As("units_count"),
	goqu.I("pr.completed_units").As("completed_units"),
	goqu.I("pr.status").As("status"),
	goqu.I("pr.description").As("description"),
	goqu.I("pr.deadline").As("deadline"),
	goqu.I("pr.requester").As("requester"),
	goqu.I("pr.notes").As("notes"),
	goqu.I("pr.created_at").As("created_at"),
	goqu.I("pr.completed_at").As("completed_at"),
}

// statusOrder keeps actionable requests at the top of every listing.
var statusOrder = goqu.L("CASE pr.status WHEN 'pending' THEN 0 WHEN 'approved' THEN 1 WHEN 'completed' THEN 2 ELSE 3 END")

func (r *PurchaseRepository) List(q PurchaseListQuery) ([]models.PurchaseRequest, int, error) {
	q.Normalize()

	var conditions []goqu.Expression
	if q.Status != "" {
		conditions = append(conditions, goqu.I("pr.status").Eq(q.Status))
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("pr.requester").ILike(pattern),
			goqu.I("pr.description").ILike(pattern),
			goqu.I("c.name").ILike(pattern),
		))
	}

	base := r.repository.GoquDBWrapper.
		From(goqu.T("purchase_requests").As("pr")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"pr.category_id": goqu.I("c.id")})).
		Where(conditions...)

	var total int
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase requests: %w", err)
	}

	var requests []models.PurchaseRequest
	query := base.Select(purchaseColumns...).
		Order(
			statusOrder.Asc(),
			goqu.I("pr.deadline").Asc().NullsLast(),
			goqu.I("pr.created_at").Desc(),
		).
		Limit(uint(q.Limit)).
		Offset(uint(q.Offset()))

	if err := query.Executor().ScanStructs(&requests); err != nil {
		return nil, 0, fmt.Errorf("error executing SQL statement for purchase requests: %w", err)
	}

	return requests, total, nil
}

func (r *PurchaseRepository) Get(requestID int) (*models.PurchaseRequest, error) {
	var request models.PurchaseRequest

	query := r.repository.GoquDBWrapper.
		From(goqu.T("purchase_requests").As("pr")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"pr.category_id": goqu.I("c.id")})).
		Select(purchaseColumns...).
		Where(goqu.Ex{"pr.id": requestID})

	found, err := query.Executor().ScanStruct(&request)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("purchase request", requestID)
	}

	return &request, nil
}

func (r *PurchaseRepository) Create(req PurchaseRequestInput) (*models.PurchaseRequest, error) {
	var active bool
	found, err := r.repository.GoquDBWrapper.
		From("categories").
		Select("is_active").
		Where(goqu.Ex{"id": req.CategoryID}).
		Executor().
		ScanVal(&active)
	if err != nil {
		return nil, fmt.Errorf("failed to verify category %d: %w", req.CategoryID, err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("category", req.CategoryID)
	}
	if !active {
		return nil, custom_error.NewInvalidStateError("category", "inactive", "active")
	}

	var requestID int
	query := r.repository.GoquDBWrapper.Insert("purchase_requests").
		Rows(goqu.Record{
			"category_id": req.CategoryID,
			"units_count": req.UnitsCount,
			"status":      string(metadata.StatusPending),
			"description": req.Description,
			"deadline":    req.Deadline,
			"requester":   req.Requester,
			"notes":       req.Notes,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&requestID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, custom_error.WrapDBError("invalid category for purchase request", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert purchase request: %w", err)
	}

	return r.Get(requestID)
}

func (r *PurchaseRepository) UpdateStatus(requestID int, status metadata.RequestStatus) (*models.PurchaseRequest, error) {
	result, err := r.repository.GoquDBWrapper.Update("purchase_requests").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": requestID}).
		Executor().
		Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to update purchase request %d: %w", requestID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, custom_error.NewNotFoundError("purchase request", requestID)
	}

	return r.Get(requestID)
}

func (r *PurchaseRepository) Delete(requestID int) error {
	result, err := r.repository.GoquDBWrapper.Delete("purchase_requests").
		Where(goqu.Ex{"id": requestID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete purchase request %d: %w", requestID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("purchase request", requestID)
	}

	return nil
}

// GetRequestForUpdate locks the request row for the duration of the enclosing
// transaction. The category name is read in a second query so the lock stays
// confined to purchase_requests.
func (r *PurchaseRepository) GetRequestForUpdate(tx *goqu.TxDatabase, requestID int) (*models.PurchaseRequest, error) {
	var request models.PurchaseRequest

	found, err := tx.From("purchase_requests").
		Select(
			goqu.C("id"),
			goqu.C("category_id"),
			goqu.C("units_count"),
			goqu.C("completed_units"),
			goqu.C("status"),
			goqu.C("description"),
			goqu.C("deadline"),
			goqu.C("requester"),
			goqu.C("notes"),
			goqu.C("created_at"),
			goqu.C("completed_at"),
		).
		Where(goqu.Ex{"id": requestID}).
		ForUpdate(exp.Wait).
		Executor().
		ScanStruct(&request)
	if err != nil {
		return nil, fmt.Errorf("failed to lock purchase request %d: %w", requestID, err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("purchase request", requestID)
	}

	if _, err := tx.From("categories").
		Select("name").
		Where(goqu.Ex{"id": request.CategoryID}).
		Executor().
		ScanVal(&request.CategoryName); err != nil {
		return nil, fmt.Errorf("failed to read category for purchase request %d: %w", requestID, err)
	}

	return &request, nil
}

// InsertItem creates the received item with quantity zero; the ledger
// addition that follows brings it to the delivered quantity.
func (r *PurchaseRepository) InsertItem(tx *goqu.TxDatabase, categoryID int, req CompleteRequest, description *string) (int, error) {
	properties := "{}"
	if len(req.Properties) > 0 {
		raw, err := json.Marshal(req.Properties)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal item properties: %w", err)
		}
		properties = string(raw)
	}

	var itemID int
	query := tx.Insert("items").
		Rows(goqu.Record{
			"name":        req.ItemName,
			"category_id": categoryID,
			"quantity":    0,
			"location":    req.Location,
			"description": description,
			"properties":  properties,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&itemID); err != nil {
		return 0, fmt.Errorf("failed to insert item for purchase request: %w", err)
	}

	return itemID, nil
}

func (r *PurchaseRepository) RecordItemMapping(tx *goqu.TxDatabase, requestID, itemID, quantity int, addedBy string, notes *string) error {
	if _, err := tx.Insert("purchase_items_mapping").
		Rows(goqu.Record{
			"purchase_request_id": requestID,
			"item_id":             itemID,
			"quantity_added":      quantity,
			"added_by":            addedBy,
			"notes":               notes,
		}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to record purchase item mapping: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) UpdateCompletion(tx *goqu.TxDatabase, requestID, completedUnits int, status metadata.RequestStatus, markCompleted bool) error {
	changes := goqu.Record{
		"completed_units": completedUnits,
		"status":          string(status),
	}
	if markCompleted {
		changes["completed_at"] = goqu.L("NOW()")
	}

	if _, err := tx.Update("purchase_requests").
		Set(changes).
		Where(goqu.Ex{"id": requestID}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to update completion for purchase request %d: %w", requestID, err)
	}
	return nil
}

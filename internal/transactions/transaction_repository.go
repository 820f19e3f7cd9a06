package transactions

import (
	"fmt"

	"stockroom/internal/repository"
	"stockroom/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type TransactionRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *TransactionRepository {
	return &TransactionRepository{repository: r}
}

var transactionColumns = []interface{}{
	goqu.I("t.id").As("id"),
	goqu.I("t.item_id").As("item_id"),
	goqu.I("t.type").As("type"),
	goqu.I("t.quantity").As("quantity"),
	goqu.I("t.purpose").As("purpose"),
	goqu.I("t.user_name").As("user_name"),
	goqu.I("t.created_at").As("created_at"),
	goqu.I("i.name").As("item_name"),
	goqu.I("i.category_id").As("category_id"),
	goqu.I("c.name").As("category_name"),
}

func (r *TransactionRepository) List(q TransactionListQuery) ([]models.Transaction, int, error) {
	q.Normalize()

	var conditions []goqu.Expression
	if q.Type != "" {
		conditions = append(conditions, goqu.I("t.type").Eq(q.Type))
	}
	if q.UserName != "" {
		conditions = append(conditions, goqu.I("t.user_name").ILike("%"+q.UserName+"%"))
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("i.name").ILike(pattern),
			goqu.I("t.purpose").ILike(pattern),
		))
	}

	base := r.repository.GoquDBWrapper.
		From(goqu.T("transactions").As("t")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.Ex{"t.item_id": goqu.I("i.id")})).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"i.category_id": goqu.I("c.id")})).
		Where(conditions...)

	var total int
	if _, err := base.Select(goqu.COUNT("*")).Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var entries []models.Transaction
	query := base.Select(transactionColumns...).
		Order(goqu.I("t.created_at").Desc(), goqu.I("t.id").Desc()).
		Limit(uint(q.Limit)).
		Offset(uint(q.Offset()))

	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, 0, fmt.Errorf("error executing SQL statement for transactions: %w", err)
	}

	return entries, total, nil
}

func (r *TransactionRepository) ListForItem(itemID int) ([]models.Transaction, error) {
	var entries []models.Transaction

	query := r.repository.GoquDBWrapper.
		From(goqu.T("transactions").As("t")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.Ex{"t.item_id": goqu.I("i.id")})).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"i.category_id": goqu.I("c.id")})).
		Select(transactionColumns...).
		Where(goqu.Ex{"t.item_id": itemID}).
		Order(goqu.I("t.created_at").Desc(), goqu.I("t.id").Desc())

	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("error executing SQL statement for item transactions: %w", err)
	}

	return entries, nil
}

// Stats aggregates ledger activity over the trailing number of days.
func (r *TransactionRepository) Stats(days int) (*models.TransactionStats, error) {
	if days < 1 {
		days = 30
	}

	period := goqu.L("t.created_at >= NOW() - (? * INTERVAL '1 day')", days)

	var stats models.TransactionStats
	query := r.repository.GoquDBWrapper.
		From(goqu.T("transactions").As("t")).
		Select(
			goqu.COUNT("*").As("total_transactions"),
			goqu.L("COUNT(*) FILTER (WHERE t.type = 'withdrawal')").As("withdrawals"),
			goqu.L("COUNT(*) FILTER (WHERE t.type = 'addition')").As("additions"),
			goqu.L("COUNT(DISTINCT t.user_name)").As("unique_users"),
			goqu.L("COUNT(DISTINCT t.item_id)").As("unique_items"),
		).
		Where(period)

	if _, err := query.Executor().ScanStruct(&stats); err != nil {
		return nil, fmt.Errorf("failed to aggregate transaction stats: %w", err)
	}

	var topItems []models.TopItem
	topQuery := r.repository.GoquDBWrapper.
		From(goqu.T("transactions").As("t")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.Ex{"t.item_id": goqu.I("i.id")})).
		Select(
			goqu.I("i.name").As("name"),
			goqu.COUNT("*").As("usage_count"),
			goqu.L("COALESCE(SUM(t.quantity) FILTER (WHERE t.type = 'withdrawal'), 0)").As("total_withdrawn"),
		).
		Where(period).
		GroupBy(goqu.I("i.name")).
		Order(goqu.I("usage_count").Desc(), goqu.I("name").Asc()).
		Limit(5)

	if err := topQuery.Executor().ScanStructs(&topItems); err != nil {
		return nil, fmt.Errorf("failed to load top items: %w", err)
	}

	stats.TopItems = topItems

	return &stats, nil
}

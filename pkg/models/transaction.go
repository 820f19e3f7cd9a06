package models

import "time"

// Transaction is an immutable ledger entry. Rows are only ever appended;
// the sum of additions minus withdrawals for an item must always equal the
// item's current quantity relative to its initial one.
type Transaction struct {
	ID           int       `json:"id" db:"id"`
	ItemID       int       `json:"item_id" db:"item_id"`
	Type         string    `json:"type" db:"type"`
	Quantity     int       `json:"quantity" db:"quantity"`
	Purpose      string    `json:"purpose" db:"purpose"`
	UserName     string    `json:"user_name" db:"user_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	ItemName     string    `json:"item_name,omitempty" db:"item_name"`
	CategoryID   int       `json:"category_id,omitempty" db:"category_id"`
	CategoryName string    `json:"category_name,omitempty" db:"category_name"`
}

// TransactionStats summarizes ledger activity over a period.
type TransactionStats struct {
	TotalTransactions int       `json:"total_transactions" db:"total_transactions"`
	Withdrawals       int       `json:"withdrawals" db:"withdrawals"`
	Additions         int       `json:"additions" db:"additions"`
	UniqueUsers       int       `json:"unique_users" db:"unique_users"`
	UniqueItems       int       `json:"unique_items" db:"unique_items"`
	TopItems          []TopItem `json:"top_items"`
}

type TopItem struct {
	Name           string `json:"name" db:"name"`
	UsageCount     int    `json:"usage_count" db:"usage_count"`
	TotalWithdrawn int    `json:"total_withdrawn" db:"total_withdrawn"`
}

package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LedgerEntries counts appended transaction rows by type.
	LedgerEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_ledger_entries_total",
		Help: "Number of ledger entries appended, by entry type.",
	}, []string{"type"})

	// QuantityMoved counts units moved through the ledger by type.
	QuantityMoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_quantity_moved_total",
		Help: "Total stock units moved through the ledger, by entry type.",
	}, []string{"type"})

	// PresetWithdrawals counts mass withdrawals by per-category outcome.
	PresetWithdrawals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockroom_preset_withdrawals_total",
		Help: "Per-category outcomes of preset withdrawals.",
	}, []string{"status"})

	// PurchaseCompletions counts fulfilled purchase request units.
	PurchaseCompletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockroom_purchase_completions_total",
		Help: "Number of purchase request fulfillment calls.",
	})
)

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

package container

import (
	"database/sql"

	"stockroom/internal/categories"
	"stockroom/internal/items"
	"stockroom/internal/ledger"
	"stockroom/internal/presets"
	"stockroom/internal/purchases"
	"stockroom/internal/repository"
	"stockroom/internal/transactions"
	"stockroom/internal/users"
	"stockroom/pkg/security"
)

type Container struct {
	Repository         *repository.Repository
	LoginHandler       *security.LoginHandler
	ItemHandler        *items.ItemHandler
	CategoryHandler    *categories.CategoryHandler
	PresetHandler      *presets.PresetHandler
	PurchaseHandler    *purchases.PurchaseHandler
	TransactionHandler *transactions.TransactionHandler
	UserHandler        *users.UsersHandler
}

func NewAppContainer(db *sql.DB) *Container {
	repo := repository.NewRepository(db)
	stockLedger := ledger.NewStockLedger()

	itemRepo := items.NewRepository(repo)
	itemService := items.NewItemService(repo, stockLedger)
	itemHandler := items.NewItemHandler(itemRepo, itemService)

	categoryRepo := categories.NewRepository(repo)
	categoryHandler := categories.NewCategoryHandler(categoryRepo)

	presetRepo := presets.NewRepository(repo)
	presetService := presets.NewPresetService(repo, presetRepo, stockLedger)
	presetHandler := presets.NewPresetHandler(presetRepo, presetService)

	purchaseRepo := purchases.NewRepository(repo)
	purchaseService := purchases.NewPurchaseService(repo, purchaseRepo, stockLedger)
	purchaseHandler := purchases.NewPurchaseHandler(purchaseRepo, purchaseService)

	transactionRepo := transactions.NewRepository(repo)
	transactionHandler := transactions.NewTransactionHandler(transactionRepo)

	userRepo := users.NewRepository(repo)
	userHandler := users.NewHandler(userRepo)

	loginHandler := security.NewLoginHandler(repo)

	return &Container{
		Repository:         repo,
		LoginHandler:       loginHandler,
		ItemHandler:        itemHandler,
		CategoryHandler:    categoryHandler,
		PresetHandler:      presetHandler,
		PurchaseHandler:    purchaseHandler,
		TransactionHandler: transactionHandler,
		UserHandler:        userHandler,
	}
}

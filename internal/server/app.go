package server

import (
	"github.com/fekuna/omnipos-catalog-service/config"
	catH "github.com/fekuna/omnipos-catalog-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	invH "github.com/fekuna/omnipos-catalog-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-catalog-service/internal/inventory/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/memdb"
	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"
	reportH "github.com/fekuna/omnipos-catalog-service/internal/report/handler"
	reportUCPkg "github.com/fekuna/omnipos-catalog-service/internal/report/usecase"
	searchH "github.com/fekuna/omnipos-catalog-service/internal/search/handler"
	searchUCPkg "github.com/fekuna/omnipos-catalog-service/internal/search/usecase"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// App is the wired catalog: every repository shares one memdb.DB.
type App struct {
	Router    *gin.Engine
	Inventory inventory.UseCase
}

func NewApp(cfg *config.Config, log logger.ZapLogger, db *memdb.DB) *App {
	// Repositories
	catRepo := catRepoPkg.NewMemoryRepository(db)
	prodRepo := prodRepoPkg.NewMemoryRepository(db)
	invRepo := invRepoPkg.NewMemoryRepository(db)

	// UseCases
	invUC := invUCPkg.NewInventoryUseCase(invRepo, cfg.Inventory.DefaultLowStockThreshold, log)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, prodRepo, &db.Catalog, log)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, catRepo, invUC, &db.Catalog, log)
	searchUC := searchUCPkg.NewSearchUseCase(prodRepo, log)
	reportUC := reportUCPkg.NewReportUseCase(prodRepo, invUC, log)

	// Handlers
	handlers := Handlers{
		Categories: catH.NewCategoryHandler(catUC, log),
		Products:   prodH.NewProductHandler(prodUC, log),
		Inventory:  invH.NewInventoryHandler(invUC, log),
		Search:     searchH.NewSearchHandler(searchUC, log),
		Reports:    reportH.NewReportHandler(reportUC, log),
	}

	return &App{
		Router:    NewRouter(cfg, log, handlers),
		Inventory: invUC,
	}
}

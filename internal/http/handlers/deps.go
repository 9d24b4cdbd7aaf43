package handlers

import (
	"github.com/jmoiron/sqlx"

	"stockyard/internal/repos"
	"stockyard/internal/services"
)

type Deps struct {
	AuctionHandler *AuctionHandler
	ShelfHandler   *ShelfHandler
	ExportHandler  *ExportHandler
	CodesHandler   *CodesHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	auctionRepo := repos.NewAuctionRepo(db)
	shelfRepo := repos.NewShelfRepo(db)
	tagRepo := repos.NewTagRepo(db)
	batchRepo := repos.NewBatchRepo(db)

	codeSvc := services.NewCodeService(auctionRepo)
	shelfSvc := services.NewShelfService(shelfRepo)
	lifecycleSvc := services.NewLifecycleService(auctionRepo, shelfRepo, batchRepo, codeSvc, services.NewMockPublisher())
	deletionSvc := services.NewDeletionService(db)
	exportSvc := services.NewExportService(auctionRepo, shelfRepo, tagRepo)

	return &Deps{
		AuctionHandler: &AuctionHandler{Lifecycle: lifecycleSvc, Deletion: deletionSvc},
		ShelfHandler:   &ShelfHandler{Shelves: shelfSvc},
		ExportHandler:  &ExportHandler{Export: exportSvc},
		CodesHandler:   &CodesHandler{Codes: codeSvc},
	}
}

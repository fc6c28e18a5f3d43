package repositories

import (
	"errors"

	"raftwatch/internal/database"
)

var ErrNotFound = errors.New("record not found")

type Repository struct {
	Alert      AlertRepository
	Inspection InspectionRepository
	Cylinder   CylinderRepository
	Stock      StockRepository
	Schedule   ScheduleRepository
	Catalog    CatalogRepository
}

func New(db database.DB) Repository {
	return Repository{
		Alert:      NewAlertRepository(db),
		Inspection: NewInspectionRepository(db),
		Cylinder:   NewCylinderRepository(db),
		Stock:      NewStockRepository(db),
		Schedule:   NewScheduleRepository(db),
		Catalog:    NewCatalogRepository(db),
	}
}

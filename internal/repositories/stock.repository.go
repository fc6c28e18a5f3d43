package repositories

import (
	"context"

	"raftwatch/internal/database"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
)

type StockRepository interface {
	FindBelowMinimum(ctx context.Context) ([]*StockItem, error)
}

type stockRepository struct {
	db  database.DB
	log logger.Logger
}

func NewStockRepository(db database.DB) StockRepository {
	return &stockRepository{
		db:  db,
		log: logger.New("stockRepository"),
	}
}

// FindBelowMinimum returns active items whose quantity has fallen to or below
// a positive reorder minimum.
func (r *stockRepository) FindBelowMinimum(ctx context.Context) ([]*StockItem, error) {
	log := r.log.Function("FindBelowMinimum")

	var items []*StockItem
	if err := r.db.SQLWithContext(ctx).
		Where("status = ?", StockStatusActive).
		Where("quantity <= min_quantity AND min_quantity > 0").
		Find(&items).Error; err != nil {
		return nil, log.Err("failed to find stock below minimum", err)
	}

	return items, nil
}

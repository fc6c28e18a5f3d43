package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"raftwatch/internal/database"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository is the read-only catalog lookup collaborator: raft
// brand/model reference data, including outstanding service bulletins.
type CatalogRepository interface {
	GetRaft(ctx context.Context, id uuid.UUID) (*Raft, error)
	GetServiceBulletins(ctx context.Context, brandID, modelID *uuid.UUID) ([]string, error)
}

type catalogRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCatalogRepository(db database.DB) CatalogRepository {
	return &catalogRepository{
		db:  db,
		log: logger.New("catalogRepository"),
	}
}

func (r *catalogRepository) GetRaft(ctx context.Context, id uuid.UUID) (*Raft, error) {
	log := r.log.Function("GetRaft")

	var raft Raft
	if err := r.db.SQLWithContext(ctx).
		First(&raft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, log.Err("failed to get raft", err, "id", id)
	}

	return &raft, nil
}

// GetServiceBulletins merges the bulletin lists carried by a raft's brand and
// model. Either ID may be nil; unknown IDs contribute nothing.
func (r *catalogRepository) GetServiceBulletins(
	ctx context.Context,
	brandID, modelID *uuid.UUID,
) ([]string, error) {
	log := r.log.Function("GetServiceBulletins")

	var bulletins []string

	if brandID != nil {
		var brand RaftBrand
		err := r.db.SQLWithContext(ctx).First(&brand, "id = ?", *brandID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.Err("failed to get raft brand", err, "brandId", *brandID)
		}
		if err == nil {
			bulletins = append(bulletins, decodeBulletins(brand.ServiceBulletins)...)
		}
	}

	if modelID != nil {
		var model RaftModel
		err := r.db.SQLWithContext(ctx).First(&model, "id = ?", *modelID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.Err("failed to get raft model", err, "modelId", *modelID)
		}
		if err == nil {
			bulletins = append(bulletins, decodeBulletins(model.ServiceBulletins)...)
		}
	}

	return bulletins, nil
}

func decodeBulletins(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var bulletins []string
	if err := json.Unmarshal(raw, &bulletins); err != nil {
		return nil
	}
	return bulletins
}

package initialize

import (
	"encoding/json"

	"raftwatch/config"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InitializeTables seeds essential reference data that production needs
// regardless of environment: the raft brand and model catalog, including
// outstanding service bulletins.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeRaftCatalog(db, log); err != nil {
		return log.Err("failed to initialize raft catalog", err)
	}

	log.Info("Table initialization complete")
	return nil
}

type brandSpec struct {
	name      string
	bulletins []string
	models    []modelSpec
}

type modelSpec struct {
	name      string
	capacity  int
	bulletins []string
}

func raftCatalog() []brandSpec {
	return []brandSpec{
		{
			name: "Viking Life-Saving Equipment",
			models: []modelSpec{
				{name: "RescYou Pro", capacity: 6},
				{name: "RescYou Coastal", capacity: 4},
				{
					name:     "25DK+",
					capacity: 25,
					bulletins: []string{
						"SB-2024-11: replace CO2 inflation hose clamp before next repack",
					},
				},
			},
		},
		{
			name: "Survitec",
			bulletins: []string{
				"SB-2025-02: inspect canopy seam tape on all units packed before 2023",
			},
			models: []modelSpec{
				{name: "Zodiac Coaster", capacity: 8},
				{name: "DSB ORIL", capacity: 12},
			},
		},
		{
			name: "Plastimo",
			models: []modelSpec{
				{name: "Transocean ISO 9650-1", capacity: 6},
				{name: "Coastal ISO 9650-2", capacity: 4},
			},
		},
	}
}

func initializeRaftCatalog(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing raft brand and model reference data")

	for _, spec := range raftCatalog() {
		var brand RaftBrand
		err := db.First(&brand, "name = ?", spec.name).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return log.Err("failed to look up brand", err, "brand", spec.name)
			}
			brand = RaftBrand{
				Name:             spec.name,
				ServiceBulletins: bulletinsJSON(spec.bulletins),
			}
			if err := db.Create(&brand).Error; err != nil {
				return log.Err("failed to create brand", err, "brand", spec.name)
			}
			log.Info("Initialized brand", "brand", spec.name)
		}

		for _, modelSpec := range spec.models {
			var model RaftModel
			err := db.First(&model, "brand_id = ? AND name = ?", brand.ID, modelSpec.name).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return log.Err("failed to look up model", err, "model", modelSpec.name)
			}

			capacity := modelSpec.capacity
			model = RaftModel{
				BrandID:          brand.ID,
				Name:             modelSpec.name,
				Capacity:         &capacity,
				ServiceBulletins: bulletinsJSON(modelSpec.bulletins),
			}
			if err := db.Create(&model).Error; err != nil {
				return log.Err("failed to create model", err, "model", modelSpec.name)
			}
			log.Info("Initialized model", "brand", spec.name, "model", modelSpec.name)
		}
	}

	return nil
}

func bulletinsJSON(bulletins []string) datatypes.JSON {
	if len(bulletins) == 0 {
		return nil
	}
	raw, err := json.Marshal(bulletins)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

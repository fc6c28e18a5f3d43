package database

import (
	"raftwatch/internal/logger"
	"raftwatch/internal/models"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.Client{},
		&models.Vessel{},
		&models.RaftBrand{},
		&models.RaftModel{},
		&models.Raft{},
		&models.Cylinder{},
		&models.StockItem{},
		&models.InspectionRecord{},
		&models.InspectionCost{},
		&models.InspectionHistory{},
		&models.MaintenanceSchedule{},
		&models.Alert{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// DropModelTables drops every model table for a fresh seed.
func (db *DB) DropModelTables() error {
	log := logger.New("database").Function("DropModelTables")
	log.Info("Dropping all model tables")

	if err := db.SQL.Migrator().DropTable(
		&models.Alert{},
		&models.MaintenanceSchedule{},
		&models.InspectionHistory{},
		&models.InspectionCost{},
		&models.InspectionRecord{},
		&models.StockItem{},
		&models.Cylinder{},
		&models.Raft{},
		&models.RaftModel{},
		&models.RaftBrand{},
		&models.Vessel{},
		&models.Client{},
	); err != nil {
		return log.Err("Failed to drop tables", err)
	}

	log.Info("All model tables dropped")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create
// automatically. The alert dedup index backs the recency lookup in the
// deduplicator; the inspections number index is the uniqueness guarantee
// behind sequence allocation.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_alerts_dedup ON alerts(severity, created_at DESC, vessel_id, raft_id, cylinder_id)",
		"CREATE INDEX IF NOT EXISTS idx_alerts_unread ON alerts(read, sent_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_cylinders_due ON cylinders(status, next_test_at)",
		"CREATE INDEX IF NOT EXISTS idx_schedules_due ON maintenance_schedules(status, next_due_at)",
		"CREATE INDEX IF NOT EXISTS idx_inspections_overdue ON inspection_records(status, next_due_at)",
	}

	for _, index := range indexes {
		if err := db.SQL.Exec(index).Error; err != nil {
			return log.Err("Failed to create index", err, "index", index)
		}
	}

	log.Info("Database indexes created successfully")
	return nil
}

package seed

import (
	"time"

	"raftwatch/config"
	"raftwatch/internal/logger"
	. "raftwatch/internal/models"
	"raftwatch/internal/utils"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// Seed loads a development fleet: two clients, three vessels, rafts with
// cylinders, and stock items. Dates are relative to now so the evaluation
// pass has something to alert on immediately.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	now := time.Now()

	atlantica := Client{
		Name:    "Atlantica Shipping",
		Email:   stringPtr("fleet@atlantica.example"),
		Phone:   stringPtr("+351 210 000 100"),
		Country: stringPtr("Portugal"),
	}
	nordsee := Client{
		Name:    "Nordsee Fischerei",
		Email:   stringPtr("office@nordsee.example"),
		Country: stringPtr("Germany"),
	}
	for _, client := range []*Client{&atlantica, &nordsee} {
		if err := db.Create(client).Error; err != nil {
			return log.Err("failed to create client", err, "client", client.Name)
		}
	}

	aurora := Vessel{
		Name:         "MV Aurora",
		Registration: "PT-LIS-4471",
		Flag:         stringPtr("PT"),
		ClientID:     &atlantica.ID,
	}
	petrel := Vessel{
		Name:         "MV Petrel",
		Registration: "PT-STB-0912",
		Flag:         stringPtr("PT"),
		ClientID:     &atlantica.ID,
	}
	moewe := Vessel{
		Name:         "FK Moewe",
		Registration: "DE-CUX-2208",
		Flag:         stringPtr("DE"),
		ClientID:     &nordsee.ID,
	}
	for _, vessel := range []*Vessel{&aurora, &petrel, &moewe} {
		if err := db.Create(vessel).Error; err != nil {
			return log.Err("failed to create vessel", err, "vessel", vessel.Name)
		}
	}

	var brand RaftBrand
	if err := db.First(&brand, "name = ?", "Viking Life-Saving Equipment").Error; err != nil {
		return log.Err("raft catalog missing, run migrations first", err)
	}
	var model RaftModel
	if err := db.First(&model, "brand_id = ? AND name = ?", brand.ID, "25DK+").Error; err != nil {
		return log.Err("raft catalog missing, run migrations first", err)
	}

	rafts := []Raft{
		{
			SerialNumber:     "VIK-25DK-10441",
			Type:             "davit-launched",
			BrandID:          &brand.ID,
			ModelID:          &model.ID,
			VesselID:         &aurora.ID,
			Status:           RaftStatusActive,
			NextInspectionAt: timePtr(now.AddDate(0, 0, 5)),
		},
		{
			SerialNumber:     "VIK-25DK-10502",
			Type:             "throw-over",
			BrandID:          &brand.ID,
			VesselID:         &petrel.ID,
			Status:           RaftStatusActive,
			NextInspectionAt: timePtr(now.AddDate(0, 2, 0)),
		},
	}
	for i := range rafts {
		if err := db.Create(&rafts[i]).Error; err != nil {
			return log.Err("failed to create raft", err, "serial", rafts[i].SerialNumber)
		}
	}

	// Hydrostatic retest cycle is five years from the last test.
	dueSoonTest := now.AddDate(-5, 0, 12)
	missedTest := now.AddDate(-5, 0, -3)
	cylinders := []Cylinder{
		{
			SerialNumber: "CYL-CO2-88121",
			GasType:      "CO2",
			RaftID:       &rafts[0].ID,
			Status:       CylinderStatusActive,
			LastTestAt:   &dueSoonTest,
			NextTestAt:   timePtr(utils.AddYearsClamped(dueSoonTest, 5)),
		},
		{
			SerialNumber: "CYL-CO2-88167",
			GasType:      "CO2/N2",
			RaftID:       &rafts[1].ID,
			Status:       CylinderStatusActive,
			LastTestAt:   &missedTest,
			NextTestAt:   timePtr(utils.AddYearsClamped(missedTest, 5)),
		},
		{
			SerialNumber: "CYL-CO2-90044",
			GasType:      "CO2",
			Status:       CylinderStatusActive,
			NextTestAt:   timePtr(now.AddDate(2, 0, 0)),
		},
	}
	for i := range cylinders {
		if err := db.Create(&cylinders[i]).Error; err != nil {
			return log.Err("failed to create cylinder", err, "serial", cylinders[i].SerialNumber)
		}
	}

	stock := []StockItem{
		{Name: "CO2 cartridge 60g", Category: "inflation", Quantity: 3, MinQuantity: 10},
		{Name: "Hand flare MK8", Category: "pyrotechnics", Quantity: 24, MinQuantity: 12},
		{Name: "Canopy repair tape", Category: "consumables", Quantity: 1, MinQuantity: 2},
		{Name: "Sea anchor", Category: "equipment", Quantity: 6, MinQuantity: 0},
	}
	for i := range stock {
		if err := db.Create(&stock[i]).Error; err != nil {
			return log.Err("failed to create stock item", err, "item", stock[i].Name)
		}
	}

	schedules := []MaintenanceSchedule{
		{
			Title:        "Annual raft service",
			Kind:         "raft service",
			Frequency:    FrequencyAnnual,
			NextDueAt:    now.AddDate(0, 0, 4),
			Priority:     PriorityHigh,
			Responsible:  "Service station Lisboa",
			Status:       ScheduleStatusScheduled,
			EquipmentRef: VesselRef(aurora.ID),
		},
		{
			Title:        "Quarterly davit check",
			Kind:         "davit check",
			Frequency:    FrequencyQuarterly,
			NextDueAt:    now.AddDate(0, 1, 0),
			Priority:     PriorityNormal,
			Status:       ScheduleStatusScheduled,
			EquipmentRef: VesselRef(petrel.ID),
		},
	}
	for i := range schedules {
		if err := db.Create(&schedules[i]).Error; err != nil {
			return log.Err("failed to create schedule", err, "title", schedules[i].Title)
		}
	}

	log.Info("Development data seeded",
		"clients", 2, "vessels", 3, "rafts", len(rafts),
		"cylinders", len(cylinders), "stock", len(stock), "schedules", len(schedules),
	)
	return nil
}

package controllers

import (
	"raftwatch/config"
	"raftwatch/internal/services"

	alertController "raftwatch/internal/controllers/alerts"
	inspectionController "raftwatch/internal/controllers/inspections"
	reportController "raftwatch/internal/controllers/reports"
)

type Controllers struct {
	Alert      alertController.AlertControllerInterface
	Inspection inspectionController.InspectionControllerInterface
	Report     reportController.ReportControllerInterface
}

func New(
	services services.Service,
	config config.Config,
) Controllers {
	return Controllers{
		Alert:      alertController.New(services, config),
		Inspection: inspectionController.New(services, config),
		Report:     reportController.New(services, config),
	}
}

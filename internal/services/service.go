package services

import (
	"raftwatch/config"
	"raftwatch/internal/database"
	"raftwatch/internal/events"
	"raftwatch/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Scheduler   *SchedulerService
	Threshold   *ThresholdService
	Dedup       *DedupService
	Compliance  *ComplianceService
	Inspection  *InspectionService
	Alert       *AlertService
	Statistics  *StatisticsService
}

func New(db database.DB, config config.Config, eventBus *events.EventBus) (Service, error) {
	transactionService := NewTransactionService(db)
	repos := repositories.New(db)

	schedulerService := NewSchedulerService()
	thresholdService := NewThresholdService()
	dedupService := NewDedupService(repos.Alert)
	complianceService := NewComplianceService(repos, thresholdService, dedupService, eventBus, &db)
	inspectionService := NewInspectionService(repos, transactionService)
	alertService := NewAlertService(repos.Alert, &db)
	statisticsService := NewStatisticsService(repos)

	return Service{
		Transaction: transactionService,
		Scheduler:   schedulerService,
		Threshold:   thresholdService,
		Dedup:       dedupService,
		Compliance:  complianceService,
		Inspection:  inspectionService,
		Alert:       alertService,
		Statistics:  statisticsService,
	}, nil
}

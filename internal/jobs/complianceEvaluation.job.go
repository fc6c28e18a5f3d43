package jobs

import (
	"context"
	"time"

	"raftwatch/internal/logger"
	"raftwatch/internal/services"
)

// ComplianceEvaluationJob runs the daily evaluation pass over the fleet:
// expiring cylinders, low stock, upcoming schedules, and overdue inspections.
type ComplianceEvaluationJob struct {
	complianceService *services.ComplianceService
	log               logger.Logger
	schedule          services.Schedule
}

func NewComplianceEvaluationJob(
	complianceService *services.ComplianceService,
	schedule services.Schedule,
) *ComplianceEvaluationJob {
	log := logger.New("complianceEvaluationJob")
	log.Info("Creating compliance evaluation job", "schedule", schedule)

	return &ComplianceEvaluationJob{
		complianceService: complianceService,
		log:               log,
		schedule:          schedule,
	}
}

func (j *ComplianceEvaluationJob) Name() string {
	return "ComplianceEvaluation"
}

func (j *ComplianceEvaluationJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting compliance evaluation pass")

	result, err := j.complianceService.RunEvaluationPass(ctx, time.Now())
	if err != nil {
		return log.Err("compliance evaluation pass failed", err)
	}

	for _, warning := range result.Warnings {
		log.Warn("entity skipped during evaluation", "reason", warning)
	}

	log.Info("Compliance evaluation pass completed",
		"alertsCreated", result.Counts.Total(),
		"expiredCylinders", result.ExpiredCylinders,
		"warnings", len(result.Warnings),
	)
	return nil
}

func (j *ComplianceEvaluationJob) Schedule() services.Schedule {
	return j.schedule
}

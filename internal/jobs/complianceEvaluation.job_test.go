package jobs

import (
	"testing"

	"raftwatch/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestComplianceEvaluationJob_NameAndSchedule(t *testing.T) {
	job := NewComplianceEvaluationJob(nil, services.Daily)

	assert.Equal(t, "ComplianceEvaluation", job.Name())
	assert.Equal(t, services.Daily, job.Schedule())
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyBiannual  Frequency = "biannual"
	FrequencyAnnual    Frequency = "annual"
)

type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusDone      ScheduleStatus = "done"
)

type SchedulePriority string

const (
	PriorityLow    SchedulePriority = "low"
	PriorityNormal SchedulePriority = "normal"
	PriorityHigh   SchedulePriority = "high"
)

// MaintenanceSchedule is a forward-looking maintenance plan. On completion it
// is marked done; the next cycle's due date is computed from Frequency but a
// new schedule is only created by explicit caller action.
type MaintenanceSchedule struct {
	BaseUUIDModel
	Title         string           `gorm:"type:text;not null"            json:"title"`
	Description   string           `gorm:"type:text"                     json:"description"`
	Kind          string           `gorm:"type:text;not null"            json:"kind"`
	Frequency     Frequency        `gorm:"type:text;default:'monthly'"   json:"frequency"`
	NextDueAt     time.Time        `gorm:"type:timestamp;not null;index" json:"nextDueAt"`
	Priority      SchedulePriority `gorm:"type:text;default:'normal'"    json:"priority"`
	EstimatedCost *decimal.Decimal `gorm:"type:decimal(12,2)"            json:"estimatedCost,omitempty"`
	Responsible   string           `gorm:"type:text"                     json:"responsible"`
	Status        ScheduleStatus   `gorm:"type:text;default:'scheduled'" json:"status"`
	EquipmentRef

	Vessel   *Vessel   `gorm:"foreignKey:VesselID"   json:"vessel,omitempty"`
	Raft     *Raft     `gorm:"foreignKey:RaftID"     json:"raft,omitempty"`
	Cylinder *Cylinder `gorm:"foreignKey:CylinderID" json:"cylinder,omitempty"`
}

func (s *MaintenanceSchedule) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Title == "" || s.Kind == "" {
		return gorm.ErrInvalidValue
	}
	if s.NextDueAt.IsZero() {
		return gorm.ErrInvalidValue
	}
	return s.EquipmentRef.Validate()
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InspectionOutcome string

const (
	OutcomeApproved           InspectionOutcome = "approved"
	OutcomeRejected           InspectionOutcome = "rejected"
	OutcomeApprovedConditions InspectionOutcome = "approved_with_conditions"
)

type InspectionStatus string

const (
	InspectionStatusScheduled InspectionStatus = "scheduled"
	InspectionStatusPerformed InspectionStatus = "performed"
	InspectionStatusCancelled InspectionStatus = "cancelled"
)

// InspectionRecord is one completed or scheduled inspection event. Immutable
// once created except for status transitions; costs and history entries are
// append-only children.
type InspectionRecord struct {
	BaseUUIDModel
	Number      string            `gorm:"type:text;uniqueIndex;not null" json:"number"`
	Kind        string            `gorm:"type:text;not null"             json:"kind"`
	Outcome     InspectionOutcome `gorm:"type:text;default:'approved'"   json:"outcome"`
	Notes       string            `gorm:"type:text"                      json:"notes"`
	Technician  string            `gorm:"type:text;not null"             json:"technician"`
	PerformedAt time.Time         `gorm:"type:timestamp;not null;index"  json:"performedAt"`
	NextDueAt   *time.Time        `gorm:"type:timestamp;index"           json:"nextDueAt,omitempty"`
	Status      InspectionStatus  `gorm:"type:text;default:'performed'"  json:"status"`
	EquipmentRef

	Vessel   *Vessel             `gorm:"foreignKey:VesselID"       json:"vessel,omitempty"`
	Raft     *Raft               `gorm:"foreignKey:RaftID"         json:"raft,omitempty"`
	Cylinder *Cylinder           `gorm:"foreignKey:CylinderID"     json:"cylinder,omitempty"`
	Costs    []InspectionCost    `gorm:"foreignKey:InspectionID"   json:"costs,omitempty"`
	History  []InspectionHistory `gorm:"foreignKey:InspectionID"   json:"history,omitempty"`
}

func (i *InspectionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if i.Number == "" || i.Kind == "" || i.Technician == "" {
		return gorm.ErrInvalidValue
	}
	if err := i.EquipmentRef.Validate(); err != nil {
		return err
	}
	if i.PerformedAt.IsZero() {
		i.PerformedAt = time.Now()
	}
	return nil
}

// InspectionCost is an append-only cost line on an inspection. Totals are
// aggregated on read as UnitValue multiplied by Quantity.
type InspectionCost struct {
	BaseUUIDModel
	InspectionID uuid.UUID       `gorm:"type:uuid;not null;index"   json:"inspectionId"`
	Category     string          `gorm:"type:text;not null"         json:"category"`
	Description  string          `gorm:"type:text"                  json:"description"`
	UnitValue    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitValue"`
	Quantity     int             `gorm:"type:integer;default:1"     json:"quantity"`
	Responsible  string          `gorm:"type:text"                  json:"responsible"`
}

func (c *InspectionCost) BeforeCreate(tx *gorm.DB) (err error) {
	if c.InspectionID == uuid.Nil || c.Category == "" {
		return gorm.ErrInvalidValue
	}
	if c.Quantity <= 0 {
		c.Quantity = 1
	}
	return nil
}

// Total is the cost line amount: unit value times quantity.
func (c *InspectionCost) Total() decimal.Decimal {
	return c.UnitValue.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// InspectionHistory is an append-only audit snapshot of an inspection at a
// point in time. Never updated or deleted.
type InspectionHistory struct {
	BaseUUIDModel
	InspectionID uuid.UUID         `gorm:"type:uuid;not null;index"  json:"inspectionId"`
	Outcome      InspectionOutcome `gorm:"type:text;not null"        json:"outcome"`
	Notes        string            `gorm:"type:text"                 json:"notes"`
	Cost         *decimal.Decimal  `gorm:"type:decimal(12,2)"        json:"cost,omitempty"`
	Technician   string            `gorm:"type:text;not null"        json:"technician"`
	PerformedAt  time.Time         `gorm:"type:timestamp;not null"   json:"performedAt"`
	NextDueAt    *time.Time        `gorm:"type:timestamp"            json:"nextDueAt,omitempty"`
}

func (h *InspectionHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.InspectionID == uuid.Nil || h.Technician == "" {
		return gorm.ErrInvalidValue
	}
	if h.PerformedAt.IsZero() {
		h.PerformedAt = time.Now()
	}
	return nil
}

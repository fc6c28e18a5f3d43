package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CylinderStatus string

const (
	CylinderStatusActive    CylinderStatus = "active"
	CylinderStatusExpired   CylinderStatus = "expired"
	CylinderStatusCondemned CylinderStatus = "condemned"
)

// Cylinder is a gas cylinder subject to periodic hydrostatic testing.
// NextTestAt drives the compliance evaluation; a cylinder whose test date
// has passed is transitioned to expired by the evaluation pass.
type Cylinder struct {
	BaseUUIDModel
	SerialNumber string         `gorm:"type:text;uniqueIndex;not null" json:"serialNumber"`
	GasType      string         `gorm:"type:text"                      json:"gasType"`
	CapacityKg   *float64       `gorm:"type:numeric"                   json:"capacityKg,omitempty"`
	RaftID       *uuid.UUID     `gorm:"type:uuid;index"                json:"raftId,omitempty"`
	Status       CylinderStatus `gorm:"type:text;default:'active'"     json:"status"`
	LastTestAt   *time.Time     `gorm:"type:timestamp"                 json:"lastTestAt,omitempty"`
	NextTestAt   *time.Time     `gorm:"type:timestamp;index"           json:"nextTestAt,omitempty"`

	Raft *Raft `gorm:"foreignKey:RaftID" json:"raft,omitempty"`
}

func (c *Cylinder) BeforeCreate(tx *gorm.DB) (err error) {
	if c.SerialNumber == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

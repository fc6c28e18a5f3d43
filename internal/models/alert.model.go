package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertSeverity string

const (
	SeverityInfo    AlertSeverity = "info"
	SeverityWarning AlertSeverity = "warning"
)

// Alert is a human-facing compliance notification. Created only by the
// evaluation pass; no two alerts with the same severity, equipment reference,
// and title prefix may be created closer together than the class's
// deduplication window.
type Alert struct {
	BaseUUIDModel
	Title    string        `gorm:"type:text;not null"           json:"title"`
	Message  string        `gorm:"type:text;not null"           json:"message"`
	Severity AlertSeverity `gorm:"type:text;default:'info'"     json:"severity"`
	Read     bool          `gorm:"type:bool;default:false"      json:"read"`
	ClientID *uuid.UUID    `gorm:"type:uuid;index"              json:"clientId,omitempty"`
	SentAt   time.Time     `gorm:"type:timestamp;not null"      json:"sentAt"`
	EquipmentRef

	Client   *Client   `gorm:"foreignKey:ClientID"   json:"client,omitempty"`
	Vessel   *Vessel   `gorm:"foreignKey:VesselID"   json:"vessel,omitempty"`
	Raft     *Raft     `gorm:"foreignKey:RaftID"     json:"raft,omitempty"`
	Cylinder *Cylinder `gorm:"foreignKey:CylinderID" json:"cylinder,omitempty"`
}

func (a *Alert) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Title == "" || a.Message == "" {
		return gorm.ErrInvalidValue
	}
	if err := a.EquipmentRef.ValidateOptional(); err != nil {
		return err
	}
	if a.SentAt.IsZero() {
		a.SentAt = time.Now()
	}
	return nil
}

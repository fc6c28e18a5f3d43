package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RaftStatus string

const (
	RaftStatusActive    RaftStatus = "active"
	RaftStatusInService RaftStatus = "in_service"
	RaftStatusCondemned RaftStatus = "condemned"
)

// RaftBrand is catalog reference data. ServiceBulletins holds the bulletin
// references applying to every model of the brand, as a JSON string array.
type RaftBrand struct {
	BaseUUIDModel
	Name             string         `gorm:"type:text;uniqueIndex;not null" json:"name"`
	ServiceBulletins datatypes.JSON `gorm:"type:jsonb"                     json:"serviceBulletins,omitempty"`

	Models []RaftModel `gorm:"foreignKey:BrandID" json:"models,omitempty"`
}

type RaftModel struct {
	BaseUUIDModel
	Name             string         `gorm:"type:text;not null" json:"name"`
	BrandID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"brandId"`
	Capacity         *int           `gorm:"type:integer"       json:"capacity,omitempty"`
	ServiceBulletins datatypes.JSON `gorm:"type:jsonb"         json:"serviceBulletins,omitempty"`

	Brand *RaftBrand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

type Raft struct {
	BaseUUIDModel
	SerialNumber     string     `gorm:"type:text;uniqueIndex;not null" json:"serialNumber"`
	Type             string     `gorm:"type:text"                      json:"type"`
	Capacity         *int       `gorm:"type:integer"                   json:"capacity,omitempty"`
	BrandID          *uuid.UUID `gorm:"type:uuid;index"                json:"brandId,omitempty"`
	ModelID          *uuid.UUID `gorm:"type:uuid;index"                json:"modelId,omitempty"`
	VesselID         *uuid.UUID `gorm:"type:uuid;index"                json:"vesselId,omitempty"`
	Status           RaftStatus `gorm:"type:text;default:'active'"     json:"status"`
	NextInspectionAt *time.Time `gorm:"type:timestamp;index"           json:"nextInspectionAt,omitempty"`

	Brand  *RaftBrand `gorm:"foreignKey:BrandID"  json:"brand,omitempty"`
	Model  *RaftModel `gorm:"foreignKey:ModelID"  json:"model,omitempty"`
	Vessel *Vessel    `gorm:"foreignKey:VesselID" json:"vessel,omitempty"`
}

func (r *Raft) BeforeCreate(tx *gorm.DB) (err error) {
	if r.SerialNumber == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VesselStatus string

const (
	VesselStatusActive   VesselStatus = "active"
	VesselStatusInactive VesselStatus = "inactive"
)

type Vessel struct {
	BaseUUIDModel
	Name         string       `gorm:"type:text;not null"             json:"name"`
	Registration string       `gorm:"type:text;uniqueIndex;not null" json:"registration"`
	Flag         *string      `gorm:"type:text"                      json:"flag,omitempty"`
	ClientID     *uuid.UUID   `gorm:"type:uuid;index"                json:"clientId,omitempty"`
	Status       VesselStatus `gorm:"type:text;default:'active'"     json:"status"`

	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Rafts  []Raft  `gorm:"foreignKey:VesselID" json:"rafts,omitempty"`
}

func (v *Vessel) BeforeCreate(tx *gorm.DB) (err error) {
	if v.Name == "" || v.Registration == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

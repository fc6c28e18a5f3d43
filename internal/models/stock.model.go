package models

import "gorm.io/gorm"

type StockStatus string

const (
	StockStatusActive       StockStatus = "active"
	StockStatusDiscontinued StockStatus = "discontinued"
)

// StockItem tracks spare-part inventory. A reorder alert fires when Quantity
// falls to or below MinQuantity and MinQuantity is positive.
type StockItem struct {
	BaseUUIDModel
	Name        string      `gorm:"type:text;not null"         json:"name"`
	Category    string      `gorm:"type:text"                  json:"category"`
	Reference   *string     `gorm:"type:text;index"            json:"reference,omitempty"`
	Quantity    int         `gorm:"type:integer;default:0"     json:"quantity"`
	MinQuantity int         `gorm:"type:integer;default:0"     json:"minQuantity"`
	Location    *string     `gorm:"type:text"                  json:"location,omitempty"`
	Status      StockStatus `gorm:"type:text;default:'active'" json:"status"`
}

func (s *StockItem) BeforeCreate(tx *gorm.DB) (err error) {
	if s.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

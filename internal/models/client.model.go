package models

import "gorm.io/gorm"

type Client struct {
	BaseUUIDModel
	Name    string  `gorm:"type:text;not null" json:"name"`
	Email   *string `gorm:"type:text"          json:"email,omitempty"`
	Phone   *string `gorm:"type:text"          json:"phone,omitempty"`
	Country *string `gorm:"type:text"          json:"country,omitempty"`

	Vessels []Vessel `gorm:"foreignKey:ClientID" json:"vessels,omitempty"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}

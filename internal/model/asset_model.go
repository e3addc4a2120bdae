package model

import "time"

// Asset is a named binary blob, mostly images for the front page.
type Asset struct {
	Name      string    `gorm:"type:varchar(255);primaryKey" json:"name"`
	Data      []byte    `gorm:"type:bytea" json:"-"`
	MimeType  string    `gorm:"type:varchar(100)" json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Asset) TableName() string {
	return "assets"
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationTypeBidPlaced = "bid_placed"
	NotificationTypeHired     = "hired"
)

// Notification is immutable once written apart from the read flag.
type Notification struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"userId"`
	Type    string         `gorm:"size:50;not null" json:"type"`
	Message string         `gorm:"not null" json:"message"`
	Data    datatypes.JSON `json:"data,omitempty"` // {"bidId", "gigId", "gigTitle", "price"}
	IsRead  bool           `gorm:"column:is_read;not null;default:false" json:"read"`
	ReadAt  *time.Time     `json:"readAt,omitempty"`
}

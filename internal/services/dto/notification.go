package dto

import "gigflow_backend/internal/models"

// NotificationPayload is the structured data attached to bid_placed and
// hired notifications.
type NotificationPayload struct {
	BidID    string  `json:"bidId"`
	GigID    string  `json:"gigId"`
	GigTitle string  `json:"gigTitle"`
	Price    float64 `json:"price"`
}

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

package entity

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationRatingReceived NotificationType = "rating_received"
	NotificationCollabUpdate   NotificationType = "collab_update"
	NotificationSystem         NotificationType = "system"
)

type RatingReceivedData struct {
	CollabID   string `json:"collab_id" firestore:"collabId"`
	RaterID    string `json:"rater_id" firestore:"raterId"`
	RaterName  string `json:"rater_name" firestore:"raterName"`
	RaterPhoto string `json:"rater_photo,omitempty" firestore:"raterPhoto,omitempty"`
}

type CollabUpdateData struct {
	CollabID string `json:"collab_id" firestore:"collabId"`
	Status   string `json:"status" firestore:"status"`
}

type SystemData struct {
	Link string `json:"link,omitempty" firestore:"link,omitempty"`
}

// AppNotification carries exactly one payload, the one matching Type.
type AppNotification struct {
	ID        string           `json:"id" firestore:"id"`
	UserID    string           `json:"user_id" firestore:"userId"`
	Type      NotificationType `json:"type" firestore:"type"`
	Title     string           `json:"title" firestore:"title"`
	Message   string           `json:"message" firestore:"message"`
	Read      bool             `json:"read" firestore:"read"`
	Timestamp time.Time        `json:"timestamp" firestore:"timestamp"`

	RatingReceived *RatingReceivedData `json:"rating_received,omitempty" firestore:"ratingReceived,omitempty"`
	CollabUpdate   *CollabUpdateData   `json:"collab_update,omitempty" firestore:"collabUpdate,omitempty"`
	System         *SystemData         `json:"system,omitempty" firestore:"system,omitempty"`
}

func NewRatingReceivedNotification(userID string, ratingValue int, data RatingReceivedData) *AppNotification {
	name := data.RaterName
	if name == "" {
		name = "Your collaborator"
	}
	return &AppNotification{
		UserID:         userID,
		Type:           NotificationRatingReceived,
		Title:          "New rating received",
		Message:        fmt.Sprintf("%s rated you %d/5", name, ratingValue),
		RatingReceived: &data,
	}
}

func NewCollabUpdateNotification(userID, title, message string, data CollabUpdateData) *AppNotification {
	return &AppNotification{
		UserID:       userID,
		Type:         NotificationCollabUpdate,
		Title:        title,
		Message:      message,
		CollabUpdate: &data,
	}
}

func NewSystemNotification(userID, title, message string, data SystemData) *AppNotification {
	return &AppNotification{
		UserID:  userID,
		Type:    NotificationSystem,
		Title:   title,
		Message: message,
		System:  &data,
	}
}

// Payload returns the typed payload for n.Type, or nil if it is missing.
func (n *AppNotification) Payload() interface{} {
	switch n.Type {
	case NotificationRatingReceived:
		if n.RatingReceived != nil {
			return n.RatingReceived
		}
	case NotificationCollabUpdate:
		if n.CollabUpdate != nil {
			return n.CollabUpdate
		}
	case NotificationSystem:
		if n.System != nil {
			return n.System
		}
	}
	return nil
}

func (n *AppNotification) Validate() error {
	set := 0
	for _, present := range []bool{n.RatingReceived != nil, n.CollabUpdate != nil, n.System != nil} {
		if present {
			set++
		}
	}
	if set != 1 || n.Payload() == nil {
		return fmt.Errorf("notification of type %q must carry exactly its own payload", n.Type)
	}
	if n.UserID == "" {
		return fmt.Errorf("notification recipient is required")
	}
	return nil
}

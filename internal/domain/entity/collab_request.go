package entity

import (
	"time"

	"github.com/google/uuid"
)

const RequestStatusPending = "pending"

var requestNamespace = uuid.MustParse("6f1c3f0e-2d7b-4c55-9c1e-9a3b8d0f6a01")

// CollabRequest only ever exists while pending; accept and decline both delete it.
type CollabRequest struct {
	ID          string    `json:"id" firestore:"id"`
	SenderID    string    `json:"sender_id" firestore:"senderId"`
	SenderName  string    `json:"sender_name" firestore:"senderName"`
	SenderPhoto string    `json:"sender_photo,omitempty" firestore:"senderPhoto,omitempty"`
	ReceiverID  string    `json:"receiver_id" firestore:"receiverId"`
	ProjectName string    `json:"project_name" firestore:"projectName"`
	Description string    `json:"description" firestore:"description"`
	Dates       string    `json:"dates,omitempty" firestore:"dates,omitempty"`
	Status      string    `json:"status" firestore:"status"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
}

// CollabRequestID is stable per (sender, receiver) so at most one request
// between the pair can be pending.
func CollabRequestID(senderID, receiverID string) string {
	return uuid.NewSHA1(requestNamespace, []byte(senderID+"\x00"+receiverID)).String()
}

package entity

import "time"

// Message is append-only and ordered by Timestamp.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Text      string    `json:"text,omitempty" firestore:"text,omitempty"`
	ImageURL  string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

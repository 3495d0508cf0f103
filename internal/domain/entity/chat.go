package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var chatNamespace = uuid.MustParse("3a9d2c64-81f7-4b2e-a6c0-5d4e7f1b8c23")

type Chat struct {
	ID           string               `json:"id" firestore:"id"`
	Participants []string             `json:"participants" firestore:"participants"`
	LastMessage  *Message             `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastRead     map[string]time.Time `json:"last_read" firestore:"lastRead"`
	CreatedAt    time.Time            `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time            `json:"updated_at" firestore:"updatedAt"`
}

// DirectChatID is stable for an unordered pair of users.
func DirectChatID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return uuid.NewSHA1(chatNamespace, []byte(strings.Join(pair, "\x00"))).String()
}

func (c *Chat) HasParticipant(uid string) bool {
	return containsString(c.Participants, uid)
}

// IsUnreadFor reports whether the newest message was sent by someone else
// after uid's read watermark.
func (c *Chat) IsUnreadFor(uid string) bool {
	if c.LastMessage == nil || c.LastMessage.SenderID == uid {
		return false
	}
	seen, ok := c.LastRead[uid]
	if !ok {
		return true
	}
	return c.LastMessage.Timestamp.After(seen)
}

// NextWatermark is the read watermark to store for uid at time now. It never
// moves backwards and always covers the current last message.
func (c *Chat) NextWatermark(uid string, now time.Time) time.Time {
	mark := now
	if c.LastMessage != nil && c.LastMessage.Timestamp.After(mark) {
		mark = c.LastMessage.Timestamp
	}
	if prev, ok := c.LastRead[uid]; ok && prev.After(mark) {
		mark = prev
	}
	return mark
}

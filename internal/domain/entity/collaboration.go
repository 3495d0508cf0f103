package entity

import (
	"fmt"
	"time"
)

const (
	CollabStatusActive    = "active"
	CollabStatusCompleted = "completed"
)

type Participant struct {
	DisplayName string `json:"display_name" firestore:"displayName"`
	PhotoURL    string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
}

// Collaboration moves active -> completed and never back.
type Collaboration struct {
	ID             string                 `json:"id" firestore:"id"`
	RequestID      string                 `json:"request_id,omitempty" firestore:"requestId,omitempty"`
	ParticipantIDs []string               `json:"participant_ids" firestore:"participantIds"`
	Participants   map[string]Participant `json:"participants" firestore:"participants"`
	ProjectName    string                 `json:"project_name" firestore:"projectName"`
	Description    string                 `json:"description" firestore:"description"`
	Status         string                 `json:"status" firestore:"status"`
	RatedBy        []string               `json:"rated_by" firestore:"ratedBy"`
	FinalLink      string                 `json:"final_link,omitempty" firestore:"finalLink,omitempty"`
	CreatedAt      time.Time              `json:"created_at" firestore:"createdAt"`
	CompletedAt    *time.Time             `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}

func (c *Collaboration) HasParticipant(uid string) bool {
	return containsString(c.ParticipantIDs, uid)
}

// Partner returns the other participant's id.
func (c *Collaboration) Partner(uid string) (string, error) {
	if len(c.ParticipantIDs) != 2 || !c.HasParticipant(uid) {
		return "", fmt.Errorf("user %s is not a participant of collaboration %s", uid, c.ID)
	}
	if c.ParticipantIDs[0] == uid {
		return c.ParticipantIDs[1], nil
	}
	return c.ParticipantIDs[0], nil
}

func (c *Collaboration) HasRated(uid string) bool {
	return containsString(c.RatedBy, uid)
}

func (c *Collaboration) IsCompleted() bool {
	return c.Status == CollabStatusCompleted
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

package memory

import (
	"creatorconnect/internal/domain/entity"
)

func cloneUser(u entity.User) *entity.User {
	u.PastCollaborations = appendCopy(u.PastCollaborations[:0:0], u.PastCollaborations...)
	u.Schedule = appendCopy(u.Schedule[:0:0], u.Schedule...)
	return &u
}

func cloneRequest(r entity.CollabRequest) *entity.CollabRequest {
	return &r
}

func cloneCollaboration(c entity.Collaboration) *entity.Collaboration {
	c.ParticipantIDs = appendCopy(c.ParticipantIDs[:0:0], c.ParticipantIDs...)
	c.RatedBy = appendCopy(c.RatedBy[:0:0], c.RatedBy...)
	c.Participants = copyMap(c.Participants)
	if c.CompletedAt != nil {
		at := *c.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

func cloneRating(r entity.Rating) *entity.Rating {
	return &r
}

func cloneNotification(n entity.AppNotification) *entity.AppNotification {
	if n.RatingReceived != nil {
		d := *n.RatingReceived
		n.RatingReceived = &d
	}
	if n.CollabUpdate != nil {
		d := *n.CollabUpdate
		n.CollabUpdate = &d
	}
	if n.System != nil {
		d := *n.System
		n.System = &d
	}
	return &n
}

func cloneChat(c entity.Chat) *entity.Chat {
	c.Participants = appendCopy(c.Participants[:0:0], c.Participants...)
	c.LastRead = copyMap(c.LastRead)
	if c.LastMessage != nil {
		m := *c.LastMessage
		c.LastMessage = &m
	}
	return &c
}

func cloneMessage(m entity.Message) *entity.Message {
	return &m
}

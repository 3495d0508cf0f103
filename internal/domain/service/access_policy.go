package service

import (
	"context"

	"creatorconnect/internal/domain/entity"
)

type Action string

const (
	ActionSendRequest      Action = "request.send"
	ActionDeclineRequest   Action = "request.decline"
	ActionAcceptRequest    Action = "request.accept"
	ActionCompleteCollab   Action = "collaboration.complete"
	ActionRate             Action = "collaboration.rate"
	ActionReadNotification Action = "notification.read"
	ActionAccessChat       Action = "chat.access"
	ActionAdmin            Action = "admin"
)

// AccessRequest is the input to one rule evaluation. Resource is the stored
// document being touched (nil for creates) and Request the incoming fields.
type AccessRequest struct {
	Principal entity.Principal
	Resource  map[string]interface{}
	Request   map[string]interface{}
}

// AccessPolicy returns a FORBIDDEN app error when the action is not allowed.
type AccessPolicy interface {
	Authorize(ctx context.Context, action Action, req AccessRequest) error
}

package handler

import (
	"context"
	"fmt"
	"strconv"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	ws "creatorconnect/internal/infrastructure/websocket"
	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/errors"
)

// StreamSource serves websocket subscriptions from the use case live views.
type StreamSource struct {
	requests       *usecase.RequestUseCase
	collaborations *usecase.CollaborationUseCase
	ratings        *usecase.RatingUseCase
	notifications  *usecase.NotificationUseCase
	chats          *usecase.ChatUseCase
	badges         *usecase.BadgeUseCase
}

func NewStreamSource(
	requests *usecase.RequestUseCase,
	collaborations *usecase.CollaborationUseCase,
	ratings *usecase.RatingUseCase,
	notifications *usecase.NotificationUseCase,
	chats *usecase.ChatUseCase,
	badges *usecase.BadgeUseCase,
) *StreamSource {
	return &StreamSource{
		requests:       requests,
		collaborations: collaborations,
		ratings:        ratings,
		notifications:  notifications,
		chats:          chats,
		badges:         badges,
	}
}

func (s *StreamSource) Open(ctx context.Context, p entity.Principal, stream string, params map[string]string, emit ws.Emit) (func(), error) {
	switch stream {
	case ws.StreamRequestsReceived:
		return s.requests.SubscribeReceived(ctx, p, items[entity.CollabRequest](emit)), nil
	case ws.StreamRequestsSent:
		return s.requests.SubscribeSent(ctx, p, items[entity.CollabRequest](emit)), nil
	case ws.StreamCollaborations:
		return s.collaborations.SubscribeCollaborations(ctx, p, items[entity.Collaboration](emit)), nil
	case ws.StreamRatings:
		userID := params["userId"]
		if userID == "" {
			userID = p.UID
		}
		return s.ratings.SubscribeRatings(ctx, userID, items[entity.Rating](emit)), nil
	case ws.StreamNotifications:
		return s.notifications.SubscribeNotifications(ctx, p, items[entity.AppNotification](emit)), nil
	case ws.StreamChats:
		return s.chats.SubscribeChats(ctx, p, value[[]usecase.ChatSummary](emit)), nil
	case ws.StreamBadges:
		return s.badges.SubscribeBadgeCounts(ctx, p, value[entity.BadgeCounts](emit)), nil
	case ws.StreamMessages:
		chatID := params["chatId"]
		if chatID == "" {
			return nil, errors.BadRequest("chatId is required for the messages stream", nil)
		}
		limit := usecase.DefaultMessageLimit
		if raw := params["limit"]; raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return nil, errors.BadRequest("limit must be a positive integer", err)
			}
			limit = parsed
		}
		unsubscribe, err := s.chats.SubscribeMessages(ctx, p, chatID, limit, items[entity.Message](emit))
		if err != nil {
			return nil, err
		}
		return unsubscribe, nil
	default:
		return nil, errors.BadRequest(fmt.Sprintf("Unknown stream %q", stream), nil)
	}
}

func items[T any](emit ws.Emit) repository.SnapshotFunc[T] {
	return func(list []*T, err error) {
		if err != nil {
			emit(nil, err)
			return
		}
		emit(list, nil)
	}
}

func value[T any](emit ws.Emit) usecase.SnapshotFunc[T] {
	return func(v T, err error) {
		if err != nil {
			emit(nil, err)
			return
		}
		emit(v, nil)
	}
}

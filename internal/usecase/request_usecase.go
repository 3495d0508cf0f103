package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/internal/domain/service"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

type RequestUseCase struct {
	requestRepo repository.CollabRequestRepository
	userRepo    repository.UserRepository
	policy      service.AccessPolicy
	limiter     service.RateLimiter
	now         func() time.Time
}

func NewRequestUseCase(
	requestRepo repository.CollabRequestRepository,
	userRepo repository.UserRepository,
	policy service.AccessPolicy,
	limiter service.RateLimiter,
) *RequestUseCase {
	return &RequestUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		policy:      policy,
		limiter:     limiter,
		now:         time.Now,
	}
}

type SendRequestInput struct {
	ReceiverID  string
	ProjectName string
	Description string
	Dates       string
}

// SendCollabRequest creates a pending request from the caller to ReceiverID.
// Only one request per ordered pair can be pending at a time.
func (uc *RequestUseCase) SendCollabRequest(ctx context.Context, sender entity.Principal, input SendRequestInput) (*entity.CollabRequest, error) {
	input.ReceiverID = strings.TrimSpace(input.ReceiverID)
	input.ProjectName = strings.TrimSpace(input.ProjectName)
	if input.ReceiverID == "" || input.ProjectName == "" {
		return nil, errors.BadRequest("receiverId and projectName are required", nil)
	}

	if err := uc.policy.Authorize(ctx, service.ActionSendRequest, service.AccessRequest{
		Principal: sender,
		Request: map[string]interface{}{
			"senderId":   sender.UID,
			"receiverId": input.ReceiverID,
		},
	}); err != nil {
		return nil, err
	}

	if err := throttle(ctx, uc.limiter, "request:"+sender.UID, "collaboration requests"); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.ReceiverID); err != nil {
		return nil, err
	}

	name, photo := sender.DisplayName, sender.PhotoURL
	profile, err := uc.userRepo.GetByID(ctx, sender.UID)
	switch {
	case err == nil:
		name, photo = profile.DisplayName, profile.PhotoURL
	case errors.Is(err, errors.CodeNotFound):
		logger.Warn("Sender %s has no profile, using auth claims for request", sender.UID)
	default:
		return nil, err
	}

	req := &entity.CollabRequest{
		ID:          entity.CollabRequestID(sender.UID, input.ReceiverID),
		SenderID:    sender.UID,
		SenderName:  name,
		SenderPhoto: photo,
		ReceiverID:  input.ReceiverID,
		ProjectName: input.ProjectName,
		Description: strings.TrimSpace(input.Description),
		Dates:       strings.TrimSpace(input.Dates),
		Status:      entity.RequestStatusPending,
		Timestamp:   uc.now(),
	}

	if err := uc.requestRepo.CreateIfAbsent(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("User %s sent collaboration request %s to %s", sender.UID, req.ID, req.ReceiverID)
	return req, nil
}

func (uc *RequestUseCase) ListReceived(ctx context.Context, p entity.Principal) ([]*entity.CollabRequest, error) {
	reqs, err := uc.requestRepo.ListReceived(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	sortRequests(reqs)
	return reqs, nil
}

func (uc *RequestUseCase) ListSent(ctx context.Context, p entity.Principal) ([]*entity.CollabRequest, error) {
	reqs, err := uc.requestRepo.ListSent(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	sortRequests(reqs)
	return reqs, nil
}

func (uc *RequestUseCase) SubscribeReceived(ctx context.Context, p entity.Principal, fn repository.SnapshotFunc[entity.CollabRequest]) repository.Unsubscribe {
	return uc.requestRepo.SubscribeReceived(ctx, p.UID, fn)
}

func (uc *RequestUseCase) SubscribeSent(ctx context.Context, p entity.Principal, fn repository.SnapshotFunc[entity.CollabRequest]) repository.Unsubscribe {
	return uc.requestRepo.SubscribeSent(ctx, p.UID, fn)
}

// DeclineCollabRequest deletes the request. Either party may decline; the
// sender declining is a withdrawal.
func (uc *RequestUseCase) DeclineCollabRequest(ctx context.Context, p entity.Principal, requestID string) error {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if err := uc.policy.Authorize(ctx, service.ActionDeclineRequest, service.AccessRequest{
		Principal: p,
		Resource: map[string]interface{}{
			"senderId":   req.SenderID,
			"receiverId": req.ReceiverID,
		},
	}); err != nil {
		return err
	}

	if err := uc.requestRepo.Delete(ctx, requestID); err != nil {
		return err
	}

	logger.Info("User %s declined collaboration request %s", p.UID, requestID)
	return nil
}

func sortRequests(reqs []*entity.CollabRequest) {
	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].Timestamp.After(reqs[j].Timestamp) })
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
	"creatorconnect/internal/domain/service"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

// scheduleLead is how far ahead the calendar entry for a new collaboration is placed.
const scheduleLead = 24 * time.Hour

type CollaborationUseCase struct {
	collabRepo repository.CollaborationRepository
	uow        repository.UnitOfWork
	policy     service.AccessPolicy
	now        func() time.Time
}

func NewCollaborationUseCase(
	collabRepo repository.CollaborationRepository,
	uow repository.UnitOfWork,
	policy service.AccessPolicy,
) *CollaborationUseCase {
	return &CollaborationUseCase{
		collabRepo: collabRepo,
		uow:        uow,
		policy:     policy,
		now:        time.Now,
	}
}

// AcceptCollabRequest turns a pending request into an active collaboration.
// Creating the collaboration, deleting the request and updating both
// profiles commit together or not at all.
func (uc *CollaborationUseCase) AcceptCollabRequest(ctx context.Context, p entity.Principal, requestID string) (*entity.Collaboration, error) {
	var collab *entity.Collaboration

	err := uc.uow.Run(ctx, func(ctx context.Context, r repository.TxReader) (repository.TxWrites, error) {
		req, err := r.GetCollabRequest(requestID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return nil, errors.NotFound("Collaboration request (it may already have been resolved)", err)
			}
			return nil, err
		}

		if err := uc.policy.Authorize(ctx, service.ActionAcceptRequest, service.AccessRequest{
			Principal: p,
			Resource: map[string]interface{}{
				"senderId":   req.SenderID,
				"receiverId": req.ReceiverID,
			},
		}); err != nil {
			return nil, err
		}

		receiver, err := r.GetUser(req.ReceiverID)
		if err != nil {
			return nil, err
		}
		sender, err := r.GetUser(req.SenderID)
		if err != nil {
			return nil, err
		}

		now := uc.now()
		collab = &entity.Collaboration{
			ID:             uuid.New().String(),
			RequestID:      req.ID,
			ParticipantIDs: []string{receiver.ID, sender.ID},
			Participants: map[string]entity.Participant{
				receiver.ID: {DisplayName: receiver.DisplayName, PhotoURL: receiver.PhotoURL},
				sender.ID:   {DisplayName: sender.DisplayName, PhotoURL: sender.PhotoURL},
			},
			ProjectName: req.ProjectName,
			Description: req.Description,
			Status:      entity.CollabStatusActive,
			RatedBy:     []string{},
			CreatedAt:   now,
		}
		event := entity.CalendarEvent{
			ID:    collab.ID,
			Title: "Project: " + req.ProjectName,
			Date:  now.Add(scheduleLead),
			Type:  entity.CalendarEventCollab,
		}

		return func(w repository.TxWriter) error {
			if err := w.CreateCollaboration(collab); err != nil {
				return err
			}
			if err := w.DeleteCollabRequest(req.ID); err != nil {
				return err
			}
			for _, uid := range collab.ParticipantIDs {
				if err := w.IncrementCollabs(uid); err != nil {
					return err
				}
				if err := w.AppendScheduleEvent(uid, event); err != nil {
					return err
				}
			}
			return nil
		}, nil
	})
	if err != nil {
		logger.Warn("Accepting collaboration request %s failed: %v", requestID, err)
		return nil, err
	}

	logger.Info("User %s accepted collaboration request %s as collaboration %s", p.UID, requestID, collab.ID)
	return collab, nil
}

// FinalizeCollaborationWithLink completes an active collaboration and adds a
// portfolio entry to each participant that still has a profile.
func (uc *CollaborationUseCase) FinalizeCollaborationWithLink(ctx context.Context, p entity.Principal, collabID, link string) (*entity.Collaboration, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, errors.BadRequest("A final link is required to complete a collaboration", nil)
	}

	var completed *entity.Collaboration

	err := uc.uow.Run(ctx, func(ctx context.Context, r repository.TxReader) (repository.TxWrites, error) {
		collab, err := r.GetCollaboration(collabID)
		if err != nil {
			return nil, err
		}

		if err := uc.policy.Authorize(ctx, service.ActionCompleteCollab, service.AccessRequest{
			Principal: p,
			Resource:  map[string]interface{}{"participantIds": collab.ParticipantIDs},
		}); err != nil {
			return nil, err
		}

		if collab.IsCompleted() {
			return nil, errors.Conflict("Collaboration is already completed")
		}

		profiles := make(map[string]*entity.User, len(collab.ParticipantIDs))
		for _, uid := range collab.ParticipantIDs {
			user, err := r.GetUser(uid)
			switch {
			case err == nil:
				profiles[uid] = user
			case errors.Is(err, errors.CodeNotFound):
				logger.Warn("Participant %s of collaboration %s has no profile, skipping portfolio entry", uid, collabID)
			default:
				return nil, err
			}
		}

		now := uc.now()
		completedAt := now
		completed = collab
		completed.Status = entity.CollabStatusCompleted
		completed.FinalLink = link
		completed.CompletedAt = &completedAt

		portfolios := make(map[string][]entity.PastCollaboration, len(profiles))
		for uid, user := range profiles {
			partnerID, err := collab.Partner(uid)
			if err != nil {
				return nil, errors.Internal("Collaboration has an invalid participant list", err)
			}
			entry := portfolioEntry(collab, partnerID, profiles[partnerID], link, now)
			portfolios[uid] = append([]entity.PastCollaboration{entry}, user.PastCollaborations...)
		}

		return func(w repository.TxWriter) error {
			if err := w.CompleteCollaboration(completed); err != nil {
				return err
			}
			for uid, entries := range portfolios {
				if err := w.SetPastCollaborations(uid, entries); err != nil {
					return err
				}
			}
			return nil
		}, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User %s completed collaboration %s", p.UID, collabID)
	return completed, nil
}

// portfolioEntry describes collab from the point of view of partnerID's
// counterpart. partner may be nil when the partner has no profile.
func portfolioEntry(collab *entity.Collaboration, partnerID string, partner *entity.User, link string, now time.Time) entity.PastCollaboration {
	info := collab.Participants[partnerID]
	name, photo := info.DisplayName, info.PhotoURL
	if partner != nil {
		name, photo = partner.DisplayName, partner.PhotoURL
	}
	if photo == "" {
		photo = entity.DefaultPortfolioImageURL
	}

	return entity.PastCollaboration{
		ID:          collab.ID,
		Title:       collab.ProjectName,
		PartnerName: name,
		Description: fmt.Sprintf("Project Completed. Watch here: %s", link),
		ImageURL:    photo,
		Date:        now.Format("Jan 2006"),
		Link:        link,
	}
}

func (uc *CollaborationUseCase) ListCollaborations(ctx context.Context, p entity.Principal) ([]*entity.Collaboration, error) {
	collabs, err := uc.collabRepo.ListByParticipant(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	sortCollaborations(collabs)
	return collabs, nil
}

func (uc *CollaborationUseCase) SubscribeCollaborations(ctx context.Context, p entity.Principal, fn repository.SnapshotFunc[entity.Collaboration]) repository.Unsubscribe {
	return uc.collabRepo.SubscribeByParticipant(ctx, p.UID, func(items []*entity.Collaboration, err error) {
		sortCollaborations(items)
		fn(items, err)
	})
}

func sortCollaborations(collabs []*entity.Collaboration) {
	sort.SliceStable(collabs, func(i, j int) bool { return collabs[i].CreatedAt.After(collabs[j].CreatedAt) })
}

package handler_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/usecase"
	"creatorconnect/pkg/config"
	"creatorconnect/pkg/response"
)

func TestHealth(t *testing.T) {
	h := newHarness(t, harnessOptions{})

	rec := h.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/health/store", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthentication(t *testing.T) {
	h := newHarness(t, harnessOptions{})

	rec := h.do(http.MethodGet, "/v1/users/me", nil, nil)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec, http.StatusUnauthorized))

	rec = h.do(http.MethodGet, "/v1/badges", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodGet, "/v1/users/me?access_token=garbage", nil, nil)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec, http.StatusUnauthorized))

	rec = h.do(http.MethodGet, "/v1/users/me?access_token="+h.token(alice), nil, nil)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec, http.StatusNotFound))
}

func TestEnsureProfile(t *testing.T) {
	h := newHarness(t, harnessOptions{})

	var created entity.User
	decode(t, h.do(http.MethodPost, "/v1/users/me", &alice, nil), http.StatusOK, &created)
	assert.Equal(t, "Alice", created.DisplayName)

	var me entity.User
	decode(t, h.do(http.MethodGet, "/v1/users/me", &alice, nil), http.StatusOK, &me)
	assert.Equal(t, "alice", me.ID)
}

func TestCollaborationLifecycleOverHTTP(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(alice)
	h.seedUser(bob)

	var req entity.CollabRequest
	decode(t, h.do(http.MethodPost, "/v1/requests", &alice, map[string]string{
		"receiver_id":  "bob",
		"project_name": "Bali Shoot",
		"description":  "Sunset reels",
		"dates":        "June",
	}), http.StatusCreated, &req)
	assert.Equal(t, "Alice", req.SenderName)

	rec := h.do(http.MethodPost, "/v1/requests", &alice, map[string]string{
		"receiver_id":  "bob",
		"project_name": "Bali Shoot",
	})
	assert.Equal(t, "CONFLICT", errorCode(t, rec, http.StatusConflict))

	var received []entity.CollabRequest
	decode(t, h.do(http.MethodGet, "/v1/requests/received", &bob, nil), http.StatusOK, &received)
	require.Len(t, received, 1)

	var sent []entity.CollabRequest
	decode(t, h.do(http.MethodGet, "/v1/requests/sent", &alice, nil), http.StatusOK, &sent)
	require.Len(t, sent, 1)

	rec = h.do(http.MethodPost, "/v1/requests/"+req.ID+"/accept", &alice, nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec, http.StatusForbidden))

	var collab entity.Collaboration
	decode(t, h.do(http.MethodPost, "/v1/requests/"+req.ID+"/accept", &bob, nil), http.StatusCreated, &collab)
	assert.Equal(t, entity.CollabStatusActive, collab.Status)

	var collabs []entity.Collaboration
	decode(t, h.do(http.MethodGet, "/v1/collaborations", &alice, nil), http.StatusOK, &collabs)
	require.Len(t, collabs, 1)

	rec = h.do(http.MethodPost, "/v1/collaborations/"+collab.ID+"/ratings", &alice, map[string]interface{}{
		"rated_user_id": "bob",
		"rating_value":  5,
	})
	assert.Equal(t, "CONFLICT", errorCode(t, rec, http.StatusConflict), "active collaborations cannot be rated")

	decode(t, h.do(http.MethodPost, "/v1/collaborations/"+collab.ID+"/complete", &alice, map[string]string{
		"link": "https://youtu.be/bali",
	}), http.StatusOK, &collab)
	assert.Equal(t, entity.CollabStatusCompleted, collab.Status)

	var rating entity.Rating
	decode(t, h.do(http.MethodPost, "/v1/collaborations/"+collab.ID+"/ratings", &alice, map[string]interface{}{
		"rated_user_id": "bob",
		"rating_value":  5,
		"comment":       "Great energy",
	}), http.StatusCreated, &rating)
	assert.Equal(t, entity.RatingID("alice", collab.ID), rating.ID)

	rec = h.do(http.MethodPost, "/v1/collaborations/"+collab.ID+"/ratings", &alice, map[string]interface{}{
		"rated_user_id": "bob",
		"rating_value":  1,
	})
	assert.Equal(t, "CONFLICT", errorCode(t, rec, http.StatusConflict))

	var counts entity.BadgeCounts
	decode(t, h.do(http.MethodGet, "/v1/badges", &bob, nil), http.StatusOK, &counts)
	assert.Equal(t, entity.BadgeCounts{Messages: 0, Other: 1}, counts)

	var prompts []usecase.RateBackPrompt
	decode(t, h.do(http.MethodGet, "/v1/notifications/rate-back", &bob, nil), http.StatusOK, &prompts)
	require.Len(t, prompts, 1)
	assert.Equal(t, "alice", prompts[0].Notification.RatingReceived.RaterID)

	decode(t, h.do(http.MethodPost, "/v1/collaborations/"+collab.ID+"/ratings", &bob, map[string]interface{}{
		"rated_user_id": "alice",
		"rating_value":  4,
	}), http.StatusCreated, nil)

	decode(t, h.do(http.MethodGet, "/v1/notifications/rate-back", &bob, nil), http.StatusOK, &prompts)
	assert.Empty(t, prompts)

	var updated map[string]int
	decode(t, h.do(http.MethodPut, "/v1/notifications/read-all", &bob, nil), http.StatusOK, &updated)
	assert.Equal(t, 1, updated["updated"])

	var page response.PaginatedResponse
	decode(t, h.do(http.MethodGet, "/v1/users/bob/ratings?page=1&limit=10", &alice, nil), http.StatusOK, &page)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	var profile entity.User
	decode(t, h.do(http.MethodGet, "/v1/users/me", &bob, nil), http.StatusOK, &profile)
	assert.Equal(t, 5.0, profile.Rating)
	assert.Equal(t, 1, profile.RatingCount)
	assert.Equal(t, 1, profile.Collabs)
	require.Len(t, profile.PastCollaborations, 1)
	assert.Equal(t, "https://youtu.be/bali", profile.PastCollaborations[0].Link)
}

func TestDeclineRequest(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(alice)
	h.seedUser(bob)

	var req entity.CollabRequest
	decode(t, h.do(http.MethodPost, "/v1/requests", &alice, map[string]string{
		"receiver_id":  "bob",
		"project_name": "Podcast",
	}), http.StatusCreated, &req)

	decode(t, h.do(http.MethodDelete, "/v1/requests/"+req.ID, &bob, nil), http.StatusOK, nil)

	var received []entity.CollabRequest
	decode(t, h.do(http.MethodGet, "/v1/requests/received", &bob, nil), http.StatusOK, &received)
	assert.Empty(t, received)
}

func TestCompleteCollaboration_LinkFormatIsFree(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(alice)
	h.seedUser(bob)

	var req entity.CollabRequest
	decode(t, h.do(http.MethodPost, "/v1/requests", &alice, map[string]string{
		"receiver_id":  "bob",
		"project_name": "Street Food Tour",
	}), http.StatusCreated, &req)

	var collab entity.Collaboration
	decode(t, h.do(http.MethodPost, "/v1/requests/"+req.ID+"/accept", &bob, nil), http.StatusCreated, &collab)

	rec := h.do(http.MethodPost, "/v1/collaborations/"+collab.ID+"/complete", &bob, map[string]string{"link": "   "})
	assert.Equal(t, "BAD_REQUEST", errorCode(t, rec, http.StatusBadRequest))

	decode(t, h.do(http.MethodPost, "/v1/collaborations/"+collab.ID+"/complete", &bob, map[string]string{
		"link": "x.com/p/1",
	}), http.StatusOK, &collab)
	assert.Equal(t, entity.CollabStatusCompleted, collab.Status)
	assert.Equal(t, "x.com/p/1", collab.FinalLink)
}

func TestValidationErrors(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(alice)

	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{"missing receiver", "/v1/requests", map[string]string{"project_name": "x"}},
		{"rating out of range", "/v1/collaborations/c1/ratings", map[string]interface{}{"rated_user_id": "bob", "rating_value": 7}},
		{"missing link", "/v1/collaborations/c1/complete", map[string]string{"link": ""}},
		{"empty message", "/v1/chats/c1/messages", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(http.MethodPost, tt.path, &alice, tt.body)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec, http.StatusBadRequest))
		})
	}
}

func TestSubmitRating_OptimisticAck(t *testing.T) {
	h := newHarness(t, harnessOptions{ackMode: config.RatingAckOptimistic})

	rec := h.do(http.MethodPost, "/v1/collaborations/missing/ratings", &alice, map[string]interface{}{
		"rated_user_id": "bob",
		"rating_value":  5,
	})

	var ack map[string]string
	decode(t, rec, http.StatusAccepted, &ack)
	assert.Equal(t, "accepted", ack["status"])

	rec = h.do(http.MethodPost, "/v1/collaborations/missing/ratings", &alice, map[string]interface{}{
		"rated_user_id": "bob",
		"rating_value":  0,
	})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec, http.StatusBadRequest), "malformed input is still rejected")
}

func TestAdminRecompute(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(bob)
	promoted := entity.Principal{UID: "ops", DisplayName: "Ops", Role: entity.RoleAdmin}
	h.seedUser(promoted)

	path := "/v1/admin/users/bob/recompute-rating"

	rec := h.do(http.MethodPost, path, &bob, nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rec, http.StatusForbidden))

	var agg usecase.RatingAggregate
	decode(t, h.do(http.MethodPost, path, &root, nil), http.StatusOK, &agg)
	assert.Equal(t, "bob", agg.UserID)
	assert.Equal(t, 0, agg.RatingCount)

	// The role comes from the stored profile, not the token.
	opsToken := entity.Principal{UID: "ops"}
	decode(t, h.do(http.MethodPost, path, &opsToken, nil), http.StatusOK, &agg)
}

func TestRateLimitMiddleware(t *testing.T) {
	h := newHarness(t, harnessOptions{httpPerMinute: 2})
	h.seedUser(alice)

	for i := 0; i < 2; i++ {
		rec := h.do(http.MethodGet, "/v1/users/me", &alice, nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := h.do(http.MethodGet, "/v1/users/me", &alice, nil)
	assert.Equal(t, "TOO_MANY_REQUESTS", errorCode(t, rec, http.StatusTooManyRequests))
	retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)

	rec = h.do(http.MethodGet, "/v1/users/me", &bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "limits are per caller")
}

func TestDevToken(t *testing.T) {
	h := newHarness(t, harnessOptions{})
	h.seedUser(alice)

	var minted struct {
		Token string `json:"token"`
	}
	decode(t, h.do(http.MethodPost, "/_dev/token", nil, map[string]string{"uid": "alice"}), http.StatusOK, &minted)
	require.NotEmpty(t, minted.Token)

	rec := h.do(http.MethodGet, "/v1/users/me?access_token="+minted.Token, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodPost, "/_dev/token", nil, map[string]string{"uid": "alice", "role": "superuser"})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec, http.StatusBadRequest))

	disabled := newHarness(t, harnessOptions{withoutDevAuth: true})
	rec = disabled.do(http.MethodPost, "/_dev/token", nil, map[string]string{"uid": "alice"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

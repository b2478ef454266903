package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/readstack/backend/internal/models"
)

func TestLikeAndUnlike(t *testing.T) {
	e, _ := newTestServer(t)
	adaToken, _ := registerUser(t, e, "ada")
	graceToken, _ := registerUser(t, e, "grace")
	postID := createPost(t, e, adaToken, "Likable", nil)
	target := fmt.Sprintf("/api/v1/posts/%d/like", postID)

	rec := do(t, e, http.MethodPost, target, "", graceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("like: status %d, body %s", rec.Code, rec.Body.String())
	}

	// Liking twice is a validation failure, not a conflict or a crash
	rec = do(t, e, http.MethodPost, target, "", graceToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("double like: status %d, want 400", rec.Code)
	}

	var listing struct {
		Count int           `json:"count"`
		Likes []models.Like `json:"likes"`
	}
	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d/likes", postID), "", "")
	decode(t, rec, &listing)
	if listing.Count != 1 {
		t.Fatalf("likes listing: count %d, want 1", listing.Count)
	}

	rec = do(t, e, http.MethodDelete, target, "", graceToken)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unlike: status %d", rec.Code)
	}
	rec = do(t, e, http.MethodDelete, target, "", graceToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unlike without a like: status %d, want 400", rec.Code)
	}
}

func TestFollowAndUnfollow(t *testing.T) {
	e, _ := newTestServer(t)
	adaToken, adaID := registerUser(t, e, "ada")
	_, graceID := registerUser(t, e, "grace")
	target := fmt.Sprintf("/api/v1/users/%d/follow", graceID)

	rec := do(t, e, http.MethodPost, target, "", adaToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("follow: status %d, body %s", rec.Code, rec.Body.String())
	}
	rec = do(t, e, http.MethodPost, target, "", adaToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("double follow: status %d, want 400", rec.Code)
	}
	rec = do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", adaID), "", adaToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self follow: status %d, want 400", rec.Code)
	}

	var followers struct {
		Count     int                  `json:"count"`
		Followers []models.UserCompact `json:"followers"`
	}
	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/followers", graceID), "", "")
	decode(t, rec, &followers)
	if followers.Count != 1 || followers.Followers[0].Username != "ada" {
		t.Fatalf("followers of grace: %+v", followers)
	}

	rec = do(t, e, http.MethodDelete, target, "", adaToken)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unfollow: status %d", rec.Code)
	}
	rec = do(t, e, http.MethodDelete, target, "", adaToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unfollow while not following: status %d, want 400", rec.Code)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerUser(t, e, "ada")

	rec := do(t, e, http.MethodPost, "/api/v1/users/999/follow", "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("follow unknown user: status %d", rec.Code)
	}
}

func TestFeedShowsFollowedAuthors(t *testing.T) {
	e, _ := newTestServer(t)
	adaToken, _ := registerUser(t, e, "ada")
	graceToken, graceID := registerUser(t, e, "grace")
	alanToken, _ := registerUser(t, e, "alan")

	createPost(t, e, graceToken, "Grace's post", nil)
	createPost(t, e, alanToken, "Alan's post", nil)
	createPost(t, e, adaToken, "Ada's own post", nil)

	do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", graceID), "", adaToken)

	var page struct {
		Count   int64         `json:"count"`
		Results []models.Post `json:"results"`
	}
	rec := do(t, e, http.MethodGet, "/api/v1/feed", "", adaToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("feed: status %d, body %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &page)
	if page.Count != 2 {
		t.Fatalf("feed count: %d, want 2 (followed plus own)", page.Count)
	}
	for _, p := range page.Results {
		if p.Title == "Alan's post" {
			t.Fatal("feed includes an unfollowed author's post")
		}
	}

	rec = do(t, e, http.MethodGet, "/api/v1/feed", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("feed without token: status %d", rec.Code)
	}
}

func TestNotificationsFlow(t *testing.T) {
	e, _ := newTestServer(t)
	adaToken, _ := registerUser(t, e, "ada")
	graceToken, graceID := registerUser(t, e, "grace")
	postID := createPost(t, e, graceToken, "Grace's post", nil)

	// ada follows, likes and comments; grace gets three notifications
	do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", graceID), "", adaToken)
	do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), "", adaToken)
	do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postID), `{"content":"nice"}`, adaToken)

	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	rec := do(t, e, http.MethodGet, "/api/v1/notifications/unread-count", "", graceToken)
	decode(t, rec, &unread)
	if unread.UnreadCount != 3 {
		t.Fatalf("unread count: %d, want 3", unread.UnreadCount)
	}

	var listing struct {
		Count         int64                 `json:"count"`
		Notifications []models.Notification `json:"notifications"`
	}
	rec = do(t, e, http.MethodGet, "/api/v1/notifications", "", graceToken)
	decode(t, rec, &listing)
	if listing.Count != 3 {
		t.Fatalf("notification count: %d", listing.Count)
	}

	// ada sees none of them
	rec = do(t, e, http.MethodGet, "/api/v1/notifications", "", adaToken)
	decode(t, rec, &listing)
	if listing.Count != 0 {
		t.Fatalf("actor received notifications: %d", listing.Count)
	}

	// mark one read, then all
	rec = do(t, e, http.MethodGet, "/api/v1/notifications", "", graceToken)
	decode(t, rec, &listing)
	first := listing.Notifications[0].ID
	rec = do(t, e, http.MethodPut, fmt.Sprintf("/api/v1/notifications/%d/read", first), "", graceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read: status %d", rec.Code)
	}
	rec = do(t, e, http.MethodGet, "/api/v1/notifications/unread-count", "", graceToken)
	decode(t, rec, &unread)
	if unread.UnreadCount != 2 {
		t.Fatalf("unread after one read: %d", unread.UnreadCount)
	}
	rec = do(t, e, http.MethodPut, "/api/v1/notifications/read-all", "", graceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("read-all: status %d", rec.Code)
	}

	// another user cannot delete grace's notification
	rec = do(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", first), "", adaToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-user delete: status %d, want 404", rec.Code)
	}
	rec = do(t, e, http.MethodDelete, fmt.Sprintf("/api/v1/notifications/%d", first), "", graceToken)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("own delete: status %d", rec.Code)
	}
}

func TestNotificationPreferencesGateDelivery(t *testing.T) {
	e, _ := newTestServer(t)
	adaToken, _ := registerUser(t, e, "ada")
	graceToken, _ := registerUser(t, e, "grace")
	postID := createPost(t, e, graceToken, "Quiet post", nil)

	// grace mutes like notifications
	rec := do(t, e, http.MethodPut, "/api/v1/notifications/preferences", `{"notify_on_like":false}`, graceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("update preferences: status %d, body %s", rec.Code, rec.Body.String())
	}
	var pref models.NotificationPreference
	decode(t, rec, &pref)
	if pref.NotifyOnLike || !pref.NotifyOnComment {
		t.Fatalf("partial update went wrong: %+v", pref)
	}

	do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), "", adaToken)
	do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postID), `{"content":"hi"}`, adaToken)

	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	rec = do(t, e, http.MethodGet, "/api/v1/notifications/unread-count", "", graceToken)
	decode(t, rec, &unread)
	if unread.UnreadCount != 1 {
		t.Fatalf("unread count: %d, want 1 (comment only, like muted)", unread.UnreadCount)
	}
}

func TestSelfActionsCreateNoNotification(t *testing.T) {
	e, _ := newTestServer(t)
	token, _ := registerUser(t, e, "ada")
	postID := createPost(t, e, token, "Own post", nil)

	do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/like", postID), "", token)
	do(t, e, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postID), `{"content":"note to self"}`, token)

	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	rec := do(t, e, http.MethodGet, "/api/v1/notifications/unread-count", "", token)
	decode(t, rec, &unread)
	if unread.UnreadCount != 0 {
		t.Fatalf("self-actions produced %d notifications", unread.UnreadCount)
	}
}

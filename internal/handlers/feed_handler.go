package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/repositories"
)

// FeedHandler serves the personalized post feed
type FeedHandler struct {
	postRepository   repositories.PostRepository
	followRepository repositories.FollowRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, followRepo repositories.FollowRepository) *FeedHandler {
	return &FeedHandler{postRepository: postRepo, followRepository: followRepo}
}

// RegisterFeedRoutes registers the feed route, which requires authentication
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed lists recent posts by the users the caller follows. The caller's
// own posts are included so the feed never looks empty right after posting.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID := getUserIDFromContext(c)

	authorIDs, err := h.followRepository.GetFollowingIDs(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorIDs = append(authorIDs, userID)

	page, err := h.postRepository.ListPostsByAuthors(authorIDs, c.QueryParams(), c.Request().URL)
	if err != nil {
		return listError(err)
	}
	return c.JSON(http.StatusOK, page)
}

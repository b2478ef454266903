package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/notify"
	"github.com/readstack/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowHandler handles HTTP requests related to follow relationships
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *notify.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifier *notify.Notifier) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		notifier:         notifier,
	}
}

// RegisterPublicFollowRoutes registers the read-only follow routes
func (h *FollowHandler) RegisterPublicFollowRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// RegisterProtectedFollowRoutes registers the mutating follow routes
func (h *FollowHandler) RegisterProtectedFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser creates a follow edge and notifies the followed user in the
// same transaction
func (h *FollowHandler) FollowUser(c echo.Context) error {
	followingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	actor, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}
	if actor.ID == followingID {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"user": "cannot follow yourself"}})
	}

	recipient, err := h.userRepository.GetUserByID(followingID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	already, err := h.followRepository.IsFollowing(actor.ID, followingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if already {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"user": "already following"}})
	}

	follow := &models.Follow{FollowerID: actor.ID, FollowingID: followingID}
	reqCtx := c.Request().Context()
	err = h.followRepository.CreateFollow(follow, func(tx *gorm.DB) error {
		return h.notifier.Notify(reqCtx, tx, notify.Event{
			Recipient:  recipient,
			Actor:      actor,
			Verb:       models.NotificationFollow,
			TargetType: models.TargetUser,
			TargetID:   actor.ID,
		})
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, follow)
}

// UnfollowUser removes a follow edge
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	followingID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(followingID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.followRepository.DeleteFollow(getUserIDFromContext(c), followingID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"user": "not following"}})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFollowers lists the users following the given user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followers, err := h.followRepository.GetFollowers(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(followers), "followers": compactUsers(followers)})
}

// GetFollowing lists the users the given user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.userRepository.GetUserByID(userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	following, err := h.followRepository.GetFollowing(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(following), "following": compactUsers(following)})
}

func compactUsers(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToCompact())
	}
	return out
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/repositories"
	"gorm.io/gorm"
)

// TagHandler handles HTTP requests related to tags
type TagHandler struct {
	tagRepository repositories.TagRepository
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagRepo repositories.TagRepository) *TagHandler {
	return &TagHandler{tagRepository: tagRepo}
}

// RegisterPublicTagRoutes registers the read-only tag routes
func (h *TagHandler) RegisterPublicTagRoutes(g *echo.Group) {
	g.GET("/tags", h.ListTags)
}

// RegisterProtectedTagRoutes registers the mutating tag routes
func (h *TagHandler) RegisterProtectedTagRoutes(g *echo.Group) {
	g.POST("/tags", h.CreateTag)
}

// ListTags lists all tags alphabetically
func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tagRepository.ListTags()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(tags), "tags": tags})
}

// CreateTag creates a tag, rejecting duplicate names
func (h *TagHandler) CreateTag(c echo.Context) error {
	var req models.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.tagRepository.GetTagByName(req.Name); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"name": "tag already exists"}})
	} else if err != gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tag := &models.Tag{Name: req.Name}
	if err := h.tagRepository.CreateTag(tag); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, tag)
}

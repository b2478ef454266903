package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/repositories"
	"gorm.io/gorm"
)

// AuthorHandler handles HTTP requests related to authors
type AuthorHandler struct {
	authorRepository repositories.AuthorRepository
}

// NewAuthorHandler creates a new AuthorHandler
func NewAuthorHandler(authorRepo repositories.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{authorRepository: authorRepo}
}

// RegisterPublicAuthorRoutes registers the read-only author routes
func (h *AuthorHandler) RegisterPublicAuthorRoutes(g *echo.Group) {
	g.GET("/authors", h.ListAuthors)
	g.GET("/authors/:id", h.GetAuthor)
}

// RegisterProtectedAuthorRoutes registers the mutating author routes
func (h *AuthorHandler) RegisterProtectedAuthorRoutes(g *echo.Group) {
	g.POST("/authors", h.CreateAuthor)
	g.PUT("/authors/:id", h.UpdateAuthor)
	g.DELETE("/authors/:id", h.DeleteAuthor)
}

// ListAuthors returns a paginated, filterable list of authors
func (h *AuthorHandler) ListAuthors(c echo.Context) error {
	page, err := h.authorRepository.ListAuthors(c.QueryParams(), c.Request().URL)
	if err != nil {
		return listError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetAuthor retrieves an author with their books
func (h *AuthorHandler) GetAuthor(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	author, err := h.authorRepository.GetAuthorByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Author not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, author)
}

// CreateAuthor creates a new author
func (h *AuthorHandler) CreateAuthor(c echo.Context) error {
	var req models.CreateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	author := &models.Author{Name: req.Name}
	if err := h.authorRepository.CreateAuthor(author); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, author)
}

// UpdateAuthor updates an existing author
func (h *AuthorHandler) UpdateAuthor(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	author, err := h.authorRepository.GetAuthorByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Author not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	author.Name = req.Name
	author.Books = nil // avoid re-saving the preloaded association
	if err := h.authorRepository.UpdateAuthor(author); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, author)
}

// DeleteAuthor deletes an author and cascades to their books
func (h *AuthorHandler) DeleteAuthor(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.authorRepository.DeleteAuthor(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Author not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

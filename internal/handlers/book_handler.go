package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/repositories"
	"gorm.io/gorm"
)

// BookHandler handles HTTP requests related to books
type BookHandler struct {
	bookRepository   repositories.BookRepository
	authorRepository repositories.AuthorRepository
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookRepo repositories.BookRepository, authorRepo repositories.AuthorRepository) *BookHandler {
	return &BookHandler{
		bookRepository:   bookRepo,
		authorRepository: authorRepo,
	}
}

// RegisterPublicBookRoutes registers the read-only book routes
func (h *BookHandler) RegisterPublicBookRoutes(g *echo.Group) {
	g.GET("/books", h.ListBooks)
	g.GET("/books/:id", h.GetBook)
}

// RegisterProtectedBookRoutes registers the mutating book routes
func (h *BookHandler) RegisterProtectedBookRoutes(g *echo.Group) {
	g.POST("/books", h.CreateBook)
	g.PUT("/books/:id", h.UpdateBook)
	g.PATCH("/books/:id", h.UpdateBook)
	g.DELETE("/books/:id", h.DeleteBook)
}

// ListBooks returns a paginated list of books filtered by title, author,
// author name and publication-year range
func (h *BookHandler) ListBooks(c echo.Context) error {
	page, err := h.bookRepository.ListBooks(c.QueryParams(), c.Request().URL)
	if err != nil {
		return listError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetBook retrieves a book by ID
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	book, err := h.bookRepository.GetBookByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

// CreateBook creates a new book
func (h *BookHandler) CreateBook(c echo.Context) error {
	var req models.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validatePublicationYear(req.PublicationYear); err != nil {
		return err
	}

	// The referenced author must exist
	if _, err := h.authorRepository.GetAuthorByID(req.AuthorID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"author": "unknown author"}})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	book := &models.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}
	if err := h.bookRepository.CreateBook(book); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook applies a full or partial update to a book
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.bookRepository.GetBookByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.PublicationYear != nil {
		if err := validatePublicationYear(*req.PublicationYear); err != nil {
			return err
		}
		book.PublicationYear = *req.PublicationYear
	}
	if req.AuthorID != nil {
		if _, err := h.authorRepository.GetAuthorByID(*req.AuthorID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"author": "unknown author"}})
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		book.AuthorID = *req.AuthorID
	}

	if err := h.bookRepository.UpdateBook(book); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook deletes a book
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.bookRepository.DeleteBook(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// validatePublicationYear rejects years after the current calendar year
func validatePublicationYear(year int) error {
	current := time.Now().Year()
	if year > current {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{
			"publication_year": fmt.Sprintf("cannot be in the future (current year is %d)", current),
		}})
	}
	return nil
}

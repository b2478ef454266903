package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/readstack/backend/internal/models"
	"github.com/readstack/backend/internal/query"
)

// getUserIDFromContext returns the authenticated user's id, or 0 when the
// request carries no valid claims (public routes).
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// parseIDParam reads a numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// listError maps composer/pager errors onto HTTP statuses. Bad ordering and
// bad page are caller mistakes; anything else is the database.
func listError(err error) error {
	switch {
	case errors.Is(err, query.ErrInvalidOrdering):
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"ordering": err.Error()}})
	case errors.Is(err, query.ErrInvalidPage):
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"errors": echo.Map{"page": err.Error()}})
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "movievault/internal/errors"
)

// fail writes the error envelope every endpoint shares.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": message,
	})
}

// failWith maps a service error to the envelope. Domain errors pass their
// message through; anything else is logged server-side and surfaced as the
// operation's generic 500 message so internals never leak.
func failWith(c echo.Context, err error, fallback string) error {
	if de, ok := apperrors.AsDomain(err); ok {
		return fail(c, de.Status, de.Message)
	}
	log.Printf("%s: %v", fallback, err)
	return fail(c, http.StatusInternalServerError, fallback)
}

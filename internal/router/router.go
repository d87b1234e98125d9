package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"movievault/internal/auth"
	"movievault/internal/handler"
	"movievault/internal/session"
)

// Register wires routes and middleware. Everything under /api except
// register, login, logout and health sits behind the session gate.
func Register(
	e *echo.Echo,
	registry session.Registry,
	authHandler *handler.AuthHandler,
	movieHandler *handler.MovieHandler,
	reviewHandler *handler.ReviewHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Every error, including ones echo raises itself, goes out in the
	// {success, message} envelope.
	e.HTTPErrorHandler = envelopeErrorHandler

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/health", healthHandler.Health)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	// Secured routes (require a live session)
	secured := api.Group("", auth.SessionMiddleware(registry))

	// Watchlist routes
	secured.GET("/movies", movieHandler.List)
	secured.POST("/movies", movieHandler.Create)
	secured.PUT("/movies/:id", movieHandler.Update)
	secured.DELETE("/movies/:id", movieHandler.Delete)
	secured.POST("/movies/:id/move-to-review", reviewHandler.MoveToReview)

	// Review routes
	secured.GET("/reviews", reviewHandler.List)
	secured.POST("/reviews", reviewHandler.Create)
	secured.PUT("/reviews/:id", reviewHandler.Update)
	secured.DELETE("/reviews/:id", reviewHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func envelopeErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}
	_ = c.JSON(status, echo.Map{
		"success": false,
		"message": message,
	})
}

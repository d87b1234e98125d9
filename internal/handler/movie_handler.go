package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"movievault/internal/auth"
	"movievault/internal/service"
)

// MovieHandler handles watchlist endpoints.
type MovieHandler struct {
	watchlist service.WatchlistService
}

// NewMovieHandler creates a new watchlist handler.
func NewMovieHandler(watchlist service.WatchlistService) *MovieHandler {
	return &MovieHandler{watchlist: watchlist}
}

// MovieRequest represents the watchlist create/update body. Update uses the
// same shape with full-replace semantics.
type MovieRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Genres       []string `json:"genres"`
	ReleaseYear  int      `json:"releaseYear"`
	Rating       *float64 `json:"rating"`
	PosterImage  string   `json:"posterImage"`
	OTTPlatforms []string `json:"ottPlatforms"`
	Notes        string   `json:"notes"`
}

func (r MovieRequest) toInput() service.MovieInput {
	return service.MovieInput{
		Title:        r.Title,
		Description:  r.Description,
		Genres:       r.Genres,
		ReleaseYear:  r.ReleaseYear,
		Rating:       r.Rating,
		PosterImage:  r.PosterImage,
		OTTPlatforms: r.OTTPlatforms,
		Notes:        r.Notes,
	}
}

// List godoc
// @Summary List the caller's watchlist, newest first
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	movies, err := h.watchlist.List(c.Request().Context(), user.ID)
	if err != nil {
		return failWith(c, err, "Server error while fetching movies")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"movies":  movies,
	})
}

// Create godoc
// @Summary Add a movie to the watchlist
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MovieRequest true "Movie data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, movieBindMessage(err))
	}

	movie, err := h.watchlist.Create(c.Request().Context(), user.ID, req.toInput())
	if err != nil {
		return failWith(c, err, "Server error while adding movie")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Movie added to watchlist successfully",
		"movie":   movie,
	})
}

// Update godoc
// @Summary Replace a watchlist entry
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie ID"
// @Param request body MovieRequest true "Movie data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id cannot belong to anyone; same 404 as a miss.
		return fail(c, http.StatusNotFound, "Movie not found or you do not have permission to update it")
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, movieBindMessage(err))
	}

	movie, err := h.watchlist.Update(c.Request().Context(), user.ID, id, req.toInput())
	if err != nil {
		return failWith(c, err, "Server error while updating movie")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Movie updated successfully",
		"movie":   movie,
	})
}

// Delete godoc
// @Summary Remove a watchlist entry
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "Movie not found or you do not have permission to delete it")
	}

	if err := h.watchlist.Delete(c.Request().Context(), user.ID, id); err != nil {
		return failWith(c, err, "Server error while deleting movie")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Movie removed from watchlist successfully",
	})
}

// movieBindMessage keeps the per-field messages for bodies where a list
// field arrives as a scalar.
func movieBindMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "genres":
			return "Genres must be an array with 1-5 genres"
		case "ottPlatforms":
			return "OTT platforms must be an array"
		}
	}
	return "invalid request body"
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"movievault/internal/auth"
	"movievault/internal/service"
)

// ReviewHandler handles review endpoints, including the watchlist-to-review
// transition.
type ReviewHandler struct {
	reviews service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// ReviewRequest represents the review create/update body.
type ReviewRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Genres       []string `json:"genres"`
	ReleaseYear  int      `json:"releaseYear"`
	PosterImage  string   `json:"posterImage"`
	OTTPlatforms []string `json:"ottPlatforms"`
	ReviewText   string   `json:"reviewText"`
	RatingStars  *int     `json:"ratingStars"`
	ImdbRating   *float64 `json:"imdbRating"`
	ReviewPros   string   `json:"reviewPros"`
	ReviewCons   string   `json:"reviewCons"`
	IsSpoiler    bool     `json:"isSpoiler"`
	Recommended  *bool    `json:"recommended"`
}

// MoveToReviewRequest represents the review fields supplied when moving a
// watchlist entry; the movie fields are copied server-side.
type MoveToReviewRequest struct {
	RatingStars *int   `json:"ratingStars"`
	ReviewText  string `json:"reviewText"`
	ReviewPros  string `json:"reviewPros"`
	ReviewCons  string `json:"reviewCons"`
	IsSpoiler   bool   `json:"isSpoiler"`
	Recommended *bool  `json:"recommended"`
}

func (r ReviewRequest) toInput() service.ReviewInput {
	return service.ReviewInput{
		Title:        r.Title,
		Description:  r.Description,
		Genres:       r.Genres,
		ReleaseYear:  r.ReleaseYear,
		PosterImage:  r.PosterImage,
		OTTPlatforms: r.OTTPlatforms,
		ReviewText:   r.ReviewText,
		RatingStars:  r.RatingStars,
		ImdbRating:   r.ImdbRating,
		ReviewPros:   r.ReviewPros,
		ReviewCons:   r.ReviewCons,
		IsSpoiler:    r.IsSpoiler,
		Recommended:  r.Recommended,
	}
}

// List godoc
// @Summary List the caller's reviews, newest first
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	reviews, err := h.reviews.List(c.Request().Context(), user.ID)
	if err != nil {
		return failWith(c, err, "Server error while fetching reviews")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"reviews": reviews,
	})
}

// Create godoc
// @Summary Add a standalone review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReviewRequest true "Review data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, movieBindMessage(err))
	}

	review, err := h.reviews.Create(c.Request().Context(), user.ID, req.toInput())
	if err != nil {
		return failWith(c, err, "Server error while creating review")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Review added successfully",
		"review":  review,
	})
}

// Update godoc
// @Summary Replace a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body ReviewRequest true "Review data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "Review not found or no permission")
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, movieBindMessage(err))
	}

	review, err := h.reviews.Update(c.Request().Context(), user.ID, id, req.toInput())
	if err != nil {
		return failWith(c, err, "Server error while updating review")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Review updated successfully",
		"review":  review,
	})
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "Review not found or no permission")
	}

	if err := h.reviews.Delete(c.Request().Context(), user.ID, id); err != nil {
		return failWith(c, err, "Server error while deleting review")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Review deleted successfully",
	})
}

// MoveToReview godoc
// @Summary Convert a watchlist entry into a review
// @Description Copies the movie's fields into a new review, then deletes the
// @Description watchlist entry. The review is created before the movie is
// @Description deleted so a failure in between never loses the movie.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie ID"
// @Param request body MoveToReviewRequest true "Review fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /movies/{id}/move-to-review [post]
func (h *ReviewHandler) MoveToReview(c echo.Context) error {
	user, _ := auth.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, "Movie not found or you do not have permission to move it")
	}

	var req MoveToReviewRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	review, err := h.reviews.MoveToReview(c.Request().Context(), user.ID, id, service.MoveParams{
		RatingStars: req.RatingStars,
		ReviewText:  req.ReviewText,
		ReviewPros:  req.ReviewPros,
		ReviewCons:  req.ReviewCons,
		IsSpoiler:   req.IsSpoiler,
		Recommended: req.Recommended,
	})
	if err != nil {
		return failWith(c, err, "Server error while moving movie to reviews")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Movie moved to reviews successfully",
		"review":  review,
	})
}

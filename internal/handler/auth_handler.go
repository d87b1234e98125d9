package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"movievault/internal/auth"
	"movievault/internal/service"
)

// AuthHandler handles registration, login and logout endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	DOB       string `json:"DOB" validate:"required"`
	Gender    string `json:"gender" validate:"required,oneof=male female other"`
	Phone     string `json:"phone" validate:"required,len=10,numeric"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=30"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, registerValidationMessage(err))
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Date of birth must be a valid date")
	}

	_, err = h.authService.Register(c.Request().Context(), service.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       dob,
		Gender:    req.Gender,
		Phone:     req.Phone,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		return failWith(c, err, "Server error during registration")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User created successfully",
	})
}

// Login godoc
// @Summary Login and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Username and password are required")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return failWith(c, err, "Server error during login")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Login successful!",
		"sessionId": token,
		"user": echo.Map{
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
			"username":  user.Username,
		},
	})
}

// Logout godoc
// @Summary Revoke the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Logout succeeds regardless of whether the token was ever issued.
	_ = h.authService.Logout(c.Request().Context(), auth.ExtractToken(c))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// registerValidationMessage translates validator failures into the API's
// field-specific messages.
func registerValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "All fields are required"
	}
	fe := ve[0]
	if fe.Tag() == "required" {
		return "All fields are required"
	}
	switch fe.Field() {
	case "Gender":
		return "Gender must be male, female, or other"
	case "Phone":
		return "Phone number must be 10 digits"
	case "Email":
		return "Please enter a valid email address"
	case "Username":
		if fe.Tag() == "min" {
			return "Username must be at least 3 characters"
		}
		return "Username cannot be more than 30 characters"
	case "Password":
		return "Password must be at least 6 characters"
	case "FirstName":
		return "First name cannot be more than 50 characters"
	case "LastName":
		return "Last name cannot be more than 50 characters"
	}
	return "All fields are required"
}

// parseDOB accepts a bare date or a full RFC3339 timestamp.
func parseDOB(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

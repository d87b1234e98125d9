package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "movievault/internal/errors"
	"movievault/internal/model"
	"movievault/internal/service"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, params service.RegisterParams) (*model.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, model.UserSnapshot, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(model.UserSnapshot), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func postJSON(e *echo.Echo, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

const validRegisterBody = `{
	"firstName": "John",
	"lastName": "Doe",
	"DOB": "1990-03-14",
	"gender": "male",
	"phone": "5550001234",
	"email": "john.doe@example.com",
	"username": "johndoe",
	"password": "password123"
}`

func TestRegisterHandler_Success(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterParams")).
		Return(&model.User{Username: "johndoe"}, nil)

	rec := postJSON(newEcho(), NewAuthHandler(svc).Register, "/api/register", validRegisterBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"User created successfully"}`, rec.Body.String())
}

func TestRegisterHandler_ValidationMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		message string
	}{
		{
			name:    "missing field",
			mutate:  func(body map[string]interface{}) { delete(body, "firstName") },
			message: "All fields are required",
		},
		{
			name:    "bad gender",
			mutate:  func(body map[string]interface{}) { body["gender"] = "unknown" },
			message: "Gender must be male, female, or other",
		},
		{
			name:    "short phone",
			mutate:  func(body map[string]interface{}) { body["phone"] = "12345" },
			message: "Phone number must be 10 digits",
		},
		{
			name:    "bad email",
			mutate:  func(body map[string]interface{}) { body["email"] = "not-an-email" },
			message: "Please enter a valid email address",
		},
		{
			name:    "short username",
			mutate:  func(body map[string]interface{}) { body["username"] = "jd" },
			message: "Username must be at least 3 characters",
		},
		{
			name:    "short password",
			mutate:  func(body map[string]interface{}) { body["password"] = "12345" },
			message: "Password must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]interface{}
			assert.NoError(t, json.Unmarshal([]byte(validRegisterBody), &body))
			tt.mutate(body)
			payload, err := json.Marshal(body)
			assert.NoError(t, err)

			svc := new(MockAuthService)
			rec := postJSON(newEcho(), NewAuthHandler(svc).Register, "/api/register", string(payload))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]interface{}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.message, resp["message"])
			svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterHandler_Conflict(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUserExists)

	rec := postJSON(newEcho(), NewAuthHandler(svc).Register, "/api/register", validRegisterBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User with this email or username already exists")
}

func TestLoginHandler_Success(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "johndoe", "password123").
		Return("token-123", model.UserSnapshot{
			FirstName: "John",
			LastName:  "Doe",
			Email:     "john.doe@example.com",
			Username:  "johndoe",
		}, nil)

	rec := postJSON(newEcho(), NewAuthHandler(svc).Login, "/api/login",
		`{"username":"johndoe","password":"password123"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "token-123", resp["sessionId"])
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "johndoe", user["username"])
	assert.NotContains(t, user, "password")
}

func TestLoginHandler_MissingFields(t *testing.T) {
	svc := new(MockAuthService)

	rec := postJSON(newEcho(), NewAuthHandler(svc).Login, "/api/login", `{"username":"johndoe"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username and password are required")
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "johndoe", "wrong").
		Return("", model.UserSnapshot{}, apperrors.ErrInvalidCredentials)

	rec := postJSON(newEcho(), NewAuthHandler(svc).Login, "/api/login",
		`{"username":"johndoe","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLogoutHandler_AlwaysSucceeds(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Logout", mock.Anything, mock.Anything).Return(nil)

	e := newEcho()
	h := NewAuthHandler(svc)

	// With a token, without a token, and repeated: always the same answer.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
		rec := httptest.NewRecorder()
		_ = h.Logout(e.NewContext(req, rec))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Logged out successfully"}`, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	_ = h.Logout(e.NewContext(req, rec))
	assert.Equal(t, http.StatusOK, rec.Code)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffboard/statusboard/internal/api/metrics"
	"github.com/staffboard/statusboard/internal/core/domain"
	"github.com/staffboard/statusboard/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse carries the session token plus the one-line feedback
// message shown in the board's feedback slot.
type authResponse struct {
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Message string       `json:"message"`
}

type feedbackResponse struct {
	Message string `json:"message"`
}

// Register creates a new account and signs the viewer in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  feedbackResponse
// @Failure      409   {object}  feedbackResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, feedbackResponse{Message: "Sign Up Error: invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, feedbackResponse{Message: "Sign Up Error: " + err.Error()})
	}

	ctx := c.Request().Context()
	user, err := h.authService.Register(ctx, req.Email, req.Password, req.DisplayName, req.Role)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("register").Inc()
		status := http.StatusInternalServerError
		switch err {
		case domain.ErrUserExists:
			status = http.StatusConflict
		case domain.ErrInvalidCredentials:
			status = http.StatusBadRequest
		}
		return c.JSON(status, feedbackResponse{Message: "Sign Up Error: " + err.Error()})
	}

	// Sign-up establishes the session immediately, like a fresh sign-in.
	token, _, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusCreated, authResponse{User: user, Message: "Account created. Please sign in."})
	}

	return c.JSON(http.StatusCreated, authResponse{
		Token:   token,
		User:    user,
		Message: "Account created for " + user.Email + ".",
	})
}

// Login verifies credentials and returns a session token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  feedbackResponse
// @Failure      404   {object}  feedbackResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, feedbackResponse{Message: "Sign In Error: invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, feedbackResponse{Message: "Sign In Error: " + err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("login").Inc()
		status := http.StatusUnauthorized
		if err == domain.ErrUserNotFound {
			status = http.StatusNotFound
		}
		return c.JSON(status, feedbackResponse{Message: "Sign In Error: " + err.Error()})
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:   token,
		User:    user,
		Message: "Signed in as " + user.Email + ".",
	})
}

// Logout revokes the presented session token.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  feedbackResponse
// @Failure      401  {object}  feedbackResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, feedbackResponse{Message: "Sign Out Error: no active session"})
	}

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("logout").Inc()
		return c.JSON(http.StatusInternalServerError, feedbackResponse{Message: "Sign Out Error: " + err.Error()})
	}

	return c.JSON(http.StatusOK, feedbackResponse{Message: "Signed out."})
}

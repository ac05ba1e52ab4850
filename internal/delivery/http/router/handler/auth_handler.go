// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"whereto/internal/delivery/http/response"
	domainerrors "whereto/internal/domain/errors"
	"whereto/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// resetRequestedMessage is returned for every forgot-password request,
// whether or not the email matched an account. Revealing the difference
// would let callers probe which addresses are registered.
const resetRequestedMessage = "If an account with that email exists, a password reset link has been sent."

// AuthHandler holds dependencies for credential and reset handlers.
type AuthHandler struct {
	authUC  usecase.AuthUsecase
	resetUC usecase.PasswordResetUsecase
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUC usecase.AuthUsecase, resetUC usecase.PasswordResetUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUC:  authUC,
		resetUC: resetUC,
		logger:  logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Please provide all required fields")
	}

	output, err := h.authUC.CreateAccount(c.Request().Context(), &usecase.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// The password hash never leaves the service; only the claim does.
	return response.Success(c, http.StatusCreated, output.User.Claim(), "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles the credential verification request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Please provide a valid email and password")
	}

	output, err := h.authUC.Authenticate(c.Request().Context(), &usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Unknown email and wrong password answer identically; the
		// distinct kinds stay visible in server-side logs only.
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return domainerrors.ErrInvalidPassword
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user":  output.Claim,
		"token": output.SessionToken,
	}, "Login successful")
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword starts a password reset. The response is identical for
// known and unknown emails.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Please provide a valid email address")
	}

	if _, err := h.resetUC.Issue(c.Request().Context(), &usecase.IssueResetInput{Email: req.Email}); err != nil {
		// An unmatched email gets the same response as a dispatched
		// link, so the endpoint cannot be used to enumerate accounts.
		if !errors.Is(err, domainerrors.ErrUserNotFound) {
			return errors.WithStack(err)
		}
	}

	return response.Success(c, http.StatusOK, nil, resetRequestedMessage)
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResetPassword redeems a reset token and installs the new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Token and new password are required")
	}

	if err := h.resetUC.Consume(c.Request().Context(), &usecase.ConsumeResetInput{
		Token:       req.Token,
		NewPassword: req.Password,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password has been reset successfully")
}

type cancelResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CancelReset withdraws any pending reset for the email. The response is
// identical whether or not a reset was pending.
func (h *AuthHandler) CancelReset(c echo.Context) error {
	var req cancelResetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Please provide a valid email address")
	}

	if err := h.resetUC.Cancel(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Any pending password reset has been cancelled")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "whereto/internal/delivery/context"
	"whereto/internal/domain/entity"
	domainerrors "whereto/internal/domain/errors"
	"whereto/internal/domain/repository"
	"whereto/internal/domain/service"
	"whereto/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	store        repository.CredentialStore
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Store        repository.CredentialStore
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		store:        params.Store,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount registers a new account with a freshly hashed password.
func (srv *authService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*usecase.CreateAccountOutput, error) {
	srv.log(ctx).Info("Starting account creation", slog.String("email", input.Email))

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrMissingCredentials
	}

	if err := srv.hasher.ValidateStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during account creation", slog.String("email", input.Email))

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during account creation", slog.Any("error", err))

		return nil, err
	}

	user := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
	}

	if err := srv.store.Create(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to create account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.publishEvent(ctx, service.EventAccountCreated, user)

	srv.log(ctx).Debug("Account created", slog.Any("userID", user.ID))

	return &usecase.CreateAccountOutput{User: user}, nil
}

// Authenticate verifies an email/password pair and returns a signed session
// token. Missing input, unknown email and wrong password each map to their
// own error value; callers decide how much to reveal.
func (srv *authService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domainerrors.ErrMissingCredentials
	}

	user, err := srv.store.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to look up credentials")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidPassword
	}

	claim := user.Claim()

	token, err := srv.tokenService.GenerateSessionToken(claim)
	if err != nil {
		srv.log(ctx).Error("Failed to sign session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	return &usecase.AuthenticateOutput{
		Claim:        claim,
		SessionToken: token,
	}, nil
}

// GetProfile retrieves the account behind a session claim.
func (srv *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateProfile applies the non-nil fields of the input to the account.
func (srv *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := srv.store.UpdateProfile(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to update profile", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return user, nil
}

// publishEvent emits an auth event. Publishing is best-effort: a failed
// publish is logged and never surfaces to the caller.
func (srv *authService) publishEvent(ctx context.Context, eventType string, user *entity.User) {
	if srv.publisher == nil {
		return
	}

	event := &service.AuthEvent{
		Type:       eventType,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: srv.now().UTC(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
	}

	if err := srv.publisher.PublishAuthEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish auth event",
			slog.String("type", eventType),
			slog.Any("userID", user.ID),
			slog.Any("error", err),
		)
	}
}

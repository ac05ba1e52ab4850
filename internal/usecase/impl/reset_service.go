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

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// resetService implements the PasswordResetUsecase interface.
type resetService struct {
	store       repository.CredentialStore
	codec       service.ResetTokenCodec
	hasher      service.PasswordHasher
	notifier    service.Notifier
	linkBuilder service.ResetLinkBuilder
	publisher   service.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// ResetServiceParams holds dependencies for resetService, injected by Fx.
type ResetServiceParams struct {
	fx.In

	Store       repository.CredentialStore
	Codec       service.ResetTokenCodec
	Hasher      service.PasswordHasher
	Notifier    service.Notifier
	LinkBuilder service.ResetLinkBuilder
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewResetService is the constructor for resetService.
func NewResetService(params ResetServiceParams) usecase.PasswordResetUsecase {
	return &resetService{
		store:       params.Store,
		codec:       params.Codec,
		hasher:      params.Hasher,
		notifier:    params.Notifier,
		linkBuilder: params.LinkBuilder,
		publisher:   params.Publisher,
		logger:      params.Logger,
		now:         time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *resetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue starts a password reset for the given email. The fingerprint and
// expiry are persisted before the raw secret leaves this process; if the
// notifier fails to dispatch the link, the pending reset is rolled back so
// no unreachable tokens accumulate. An unknown email yields ErrUserNotFound;
// the boundary is responsible for answering it the same as a success.
func (srv *resetService) Issue(ctx context.Context, input *usecase.IssueResetInput) (*usecase.IssueResetOutput, error) {
	user, err := srv.store.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset requested for unknown email")

			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to look up account for reset")
	}

	token, err := srv.codec.Issue()
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue reset token")
	}

	// Persist first. A pending reset overwrites any previous one, so the
	// latest emailed link is always the one that works.
	if err := srv.store.SetPendingReset(ctx, user.ID, token.Fingerprint, token.ExpiresAt); err != nil {
		return nil, errors.Wrap(err, "failed to record pending reset")
	}

	resetURL := srv.linkBuilder.BuildResetURL(token.Secret)

	if err := srv.notifier.SendPasswordResetLink(ctx, user.Email, resetURL); err != nil {
		srv.log(ctx).Error("Failed to send reset link, rolling back pending reset",
			slog.Any("userID", user.ID), slog.Any("error", err))

		if clearErr := srv.store.ClearPendingReset(ctx, user.ID); clearErr != nil {
			srv.log(ctx).Error("Failed to roll back pending reset",
				slog.Any("userID", user.ID), slog.Any("error", clearErr))
		}

		return nil, domainerrors.ErrNotifyFailed.WrapMessage("failed to dispatch reset link")
	}

	srv.publishEvent(ctx, service.EventPasswordResetRequested, user)

	srv.log(ctx).Info("Password reset issued", slog.Any("userID", user.ID))

	return &usecase.IssueResetOutput{Issued: true}, nil
}

// Consume redeems a reset token and installs the new password. The token is
// validated before the new password, and the password before any mutation;
// a consumed token is cleared in the same statement that sets the hash, so
// it can never be redeemed twice.
func (srv *resetService) Consume(ctx context.Context, input *usecase.ConsumeResetInput) error {
	if input.Token == "" {
		return domainerrors.ErrInvalidOrExpiredToken
	}

	fingerprint := srv.codec.FingerprintOf(input.Token)

	user, err := srv.store.FindByResetFingerprint(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrInvalidOrExpiredToken
		}

		return errors.Wrap(err, "failed to look up reset token")
	}

	if !user.HasPendingReset() || user.ResetExpired(srv.now()) {
		return domainerrors.ErrInvalidOrExpiredToken
	}

	if err := srv.hasher.ValidateStrength(input.NewPassword); err != nil {
		return err
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	if err := srv.store.ResetPassword(ctx, user.ID, hashedPassword); err != nil {
		return errors.Wrap(err, "failed to apply password reset")
	}

	srv.publishEvent(ctx, service.EventPasswordResetComplete, user)

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", user.ID))

	return nil
}

// Cancel withdraws any pending reset for the email. Cancelling when no
// reset is pending, or for an unknown email, is a successful no-op.
func (srv *resetService) Cancel(ctx context.Context, email string) error {
	user, err := srv.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to look up account for cancel")
	}

	if !user.HasPendingReset() {
		return nil
	}

	if err := srv.store.ClearPendingReset(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to clear pending reset")
	}

	srv.log(ctx).Info("Pending password reset cancelled", slog.Any("userID", user.ID))

	return nil
}

// publishEvent emits an auth event. Publishing is best-effort and never
// fails the reset flow.
func (srv *resetService) publishEvent(ctx context.Context, eventType string, user *entity.User) {
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

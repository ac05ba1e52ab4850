// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"whereto/internal/domain/entity"
	domainerrors "whereto/internal/domain/errors"
	"whereto/internal/domain/repository"
	"whereto/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// credentialStore implements the repository.CredentialStore interface.
type credentialStore struct {
	db *gorm.DB
}

// NewCredentialStore is the constructor for credentialStore.
func NewCredentialStore(db *gorm.DB) repository.CredentialStore {
	return &credentialStore{db: db}
}

// FindByID retrieves a single credential record by its unique ID.
func (repo *credentialStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single credential record by email, compared as stored.
func (repo *credentialStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toUserDomain(&userM), nil
}

// FindByResetFingerprint retrieves the record holding the given pending-reset fingerprint.
func (repo *credentialStore) FindByResetFingerprint(ctx context.Context, fingerprint string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("reset_token_fingerprint = ?", fingerprint).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toUserDomain(&userM), nil
}

// Create persists a new credential record. The database enforces email uniqueness.
func (repo *credentialStore) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required account information")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateProfile modifies name, email and avatar of an existing record.
// The password hash and pending-reset columns are deliberately excluded.
func (repo *credentialStore) UpdateProfile(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":      user.Email,
			"name":       user.Name,
			"avatar_url": user.AvatarURL,
		})

	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyTaken.WrapMessage("email already in use")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update profile")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SetPendingReset records a reset fingerprint and expiry on the user in one
// UPDATE, overwriting any previous pending reset.
func (repo *credentialStore) SetPendingReset(ctx context.Context, id uuid.UUID, fingerprint string, expiry time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token_fingerprint": fingerprint,
			"reset_token_expiry":      expiry,
		})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to set pending reset")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// ClearPendingReset removes the fingerprint/expiry pair in one UPDATE.
// Clearing an already-clear record is a no-op, not an error.
func (repo *credentialStore) ClearPendingReset(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token_fingerprint": nil,
			"reset_token_expiry":      nil,
		})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear pending reset")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// ResetPassword sets the new password hash and clears the reset pair in a
// single UPDATE, so no intermediate state is ever visible.
func (repo *credentialStore) ResetPassword(ctx context.Context, id uuid.UUID, newPasswordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":           newPasswordHash,
			"reset_token_fingerprint": nil,
			"reset_token_expiry":      nil,
		})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to reset password")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                    data.ID,
		Email:                 data.Email,
		Name:                  data.Name,
		AvatarURL:             data.AvatarURL,
		PasswordHash:          data.PasswordHash,
		ResetTokenFingerprint: data.ResetTokenFingerprint,
		ResetTokenExpiry:      data.ResetTokenExpiry,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                    data.ID,
		Email:                 data.Email,
		Name:                  data.Name,
		AvatarURL:             data.AvatarURL,
		PasswordHash:          data.PasswordHash,
		ResetTokenFingerprint: data.ResetTokenFingerprint,
		ResetTokenExpiry:      data.ResetTokenExpiry,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}

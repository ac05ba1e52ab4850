package impl

import (
	"context"
	"testing"

	"whereto/internal/domain/entity"
	domainerrors "whereto/internal/domain/errors"
	"whereto/internal/domain/service"
	"whereto/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(store *memCredentialStore, publisher *fakePublisher) usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		Store:        store,
		Hasher:       &fakeHasher{},
		TokenService: &fakeTokenService{},
		Publisher:    publisher,
		Logger:       testLogger(),
	})
}

func TestAuthService_CreateAccount_Success(t *testing.T) {
	store := newMemCredentialStore()
	publisher := &fakePublisher{}
	svc := newTestAuthService(store, publisher)

	output, err := svc.CreateAccount(context.Background(), &usecase.CreateAccountInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, "alice@example.com", output.User.Email)
	assert.Equal(t, "hashed:password123", output.User.PasswordHash)
	assert.NotNil(t, store.getUser(output.User.ID))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, service.EventAccountCreated, publisher.events[0].Type)
	assert.Equal(t, output.User.ID, publisher.events[0].UserID)
}

func TestAuthService_CreateAccount_WeakPassword(t *testing.T) {
	store := newMemCredentialStore()
	svc := newTestAuthService(store, &fakePublisher{})

	_, err := svc.CreateAccount(context.Background(), &usecase.CreateAccountInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrWeakPassword)
	assert.Empty(t, store.users)
}

func TestAuthService_CreateAccount_MissingFields(t *testing.T) {
	store := newMemCredentialStore()
	svc := newTestAuthService(store, &fakePublisher{})

	inputs := []*usecase.CreateAccountInput{
		{Email: "alice@example.com", Password: "password123"},
		{Name: "Alice", Password: "password123"},
		{Name: "Alice", Email: "alice@example.com"},
	}
	for _, input := range inputs {
		_, err := svc.CreateAccount(context.Background(), input)
		assert.ErrorIs(t, err, domainerrors.ErrMissingCredentials)
	}
	assert.Empty(t, store.users)
}

func TestAuthService_CreateAccount_DuplicateEmail(t *testing.T) {
	store := newMemCredentialStore()
	store.addUser(&entity.User{Email: "alice@example.com", PasswordHash: "hashed:first"})
	svc := newTestAuthService(store, &fakePublisher{})

	_, err := svc.CreateAccount(context.Background(), &usecase.CreateAccountInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_CreateAccount_PublishFailureDoesNotFail(t *testing.T) {
	store := newMemCredentialStore()
	publisher := &fakePublisher{failErr: errors.New("broker down")}
	svc := newTestAuthService(store, publisher)

	output, err := svc.CreateAccount(context.Background(), &usecase.CreateAccountInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotNil(t, store.getUser(output.User.ID))
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	store := newMemCredentialStore()
	user := store.addUser(&entity.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "hashed:password123",
	})
	svc := newTestAuthService(store, &fakePublisher{})

	output, err := svc.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, user.ID, output.Claim.ID)
	assert.Equal(t, "alice@example.com", output.Claim.Email)
	assert.Equal(t, "session-token:alice@example.com", output.SessionToken)
}

func TestAuthService_Authenticate_MissingCredentials(t *testing.T) {
	svc := newTestAuthService(newMemCredentialStore(), &fakePublisher{})

	_, err := svc.Authenticate(context.Background(), &usecase.AuthenticateInput{Email: "alice@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredentials)

	_, err = svc.Authenticate(context.Background(), &usecase.AuthenticateInput{Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredentials)
}

func TestAuthService_Authenticate_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMemCredentialStore(), &fakePublisher{})

	_, err := svc.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	store := newMemCredentialStore()
	store.addUser(&entity.User{
		Email:        "alice@example.com",
		PasswordHash: "hashed:password123",
	})
	svc := newTestAuthService(store, &fakePublisher{})

	_, err := svc.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPassword)
}

func TestAuthService_GetProfile(t *testing.T) {
	store := newMemCredentialStore()
	user := store.addUser(&entity.User{Email: "alice@example.com", Name: "Alice"})
	svc := newTestAuthService(store, &fakePublisher{})

	got, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	store := newMemCredentialStore()
	user := store.addUser(&entity.User{Email: "alice@example.com", Name: "Alice"})
	svc := newTestAuthService(store, &fakePublisher{})

	newName := "Alice B"
	newAvatar := "https://cdn.example.com/a.png"
	got, err := svc.UpdateProfile(context.Background(), user.ID, &usecase.UpdateProfileInput{
		Name:      &newName,
		AvatarURL: &newAvatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)
	assert.Equal(t, newAvatar, got.AvatarURL)
	// Unchanged field stays as stored
	assert.Equal(t, "alice@example.com", got.Email)

	stored := store.getUser(user.ID)
	assert.Equal(t, "Alice B", stored.Name)
}

func TestAuthService_UpdateProfile_EmailTaken(t *testing.T) {
	store := newMemCredentialStore()
	store.addUser(&entity.User{Email: "bob@example.com"})
	alice := store.addUser(&entity.User{Email: "alice@example.com"})
	svc := newTestAuthService(store, &fakePublisher{})

	taken := "bob@example.com"
	_, err := svc.UpdateProfile(context.Background(), alice.ID, &usecase.UpdateProfileInput{Email: &taken})
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyTaken)
}

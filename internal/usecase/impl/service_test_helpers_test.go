package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"whereto/internal/domain/entity"
	domainerrors "whereto/internal/domain/errors"
	"whereto/internal/domain/repository"
	"whereto/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memCredentialStore is an in-memory CredentialStore with the same
// per-record atomicity semantics as the postgres implementation.
type memCredentialStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	createErr       error
	setPendingErr   error
	clearPendingErr error
	resetErr        error

	setPendingCalls   int
	clearPendingCalls int
	resetCalls        int
}

func newMemCredentialStore() *memCredentialStore {
	return &memCredentialStore{users: make(map[uuid.UUID]*entity.User)}
}

func (s *memCredentialStore) addUser(user *entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user

	return user
}

func (s *memCredentialStore) getUser(id uuid.UUID) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[id]; ok {
		copied := *user

		return &copied
	}

	return nil
}

func (s *memCredentialStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[id]; ok {
		copied := *user

		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (s *memCredentialStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *memCredentialStore) FindByResetFingerprint(_ context.Context, fingerprint string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ResetTokenFingerprint != nil && *user.ResetTokenFingerprint == fingerprint {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *memCredentialStore) Create(_ context.Context, user *entity.User) error {
	if s.createErr != nil {
		return s.createErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.users[user.ID] = &copied

	return nil
}

func (s *memCredentialStore) UpdateProfile(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}

	for id, other := range s.users {
		if id != user.ID && other.Email == user.Email {
			return domainerrors.ErrEmailAlreadyTaken
		}
	}

	existing.Email = user.Email
	existing.Name = user.Name
	existing.AvatarURL = user.AvatarURL

	return nil
}

func (s *memCredentialStore) SetPendingReset(_ context.Context, id uuid.UUID, fingerprint string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setPendingCalls++
	if s.setPendingErr != nil {
		return s.setPendingErr
	}

	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.ResetTokenFingerprint = &fingerprint
	user.ResetTokenExpiry = &expiry

	return nil
}

func (s *memCredentialStore) ClearPendingReset(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearPendingCalls++
	if s.clearPendingErr != nil {
		return s.clearPendingErr
	}

	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.ResetTokenFingerprint = nil
	user.ResetTokenExpiry = nil

	return nil
}

func (s *memCredentialStore) ResetPassword(_ context.Context, id uuid.UUID, newPasswordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetCalls++
	if s.resetErr != nil {
		return s.resetErr
	}

	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.PasswordHash = newPasswordHash
	user.ResetTokenFingerprint = nil
	user.ResetTokenExpiry = nil

	return nil
}

// fakeHasher is a deterministic PasswordHasher for service tests.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func (h *fakeHasher) ValidateStrength(password string) error {
	if len(password) < 6 {
		return domainerrors.ErrWeakPassword
	}

	return nil
}

// fakeResetCodec issues predictable secrets so tests can redeem them.
type fakeResetCodec struct {
	counter int
	ttl     time.Duration
	now     func() time.Time
}

func newFakeResetCodec(now func() time.Time) *fakeResetCodec {
	return &fakeResetCodec{ttl: time.Hour, now: now}
}

func (c *fakeResetCodec) Issue() (*service.ResetToken, error) {
	c.counter++
	secret := fmt.Sprintf("secret-%d", c.counter)

	return &service.ResetToken{
		Secret:      secret,
		Fingerprint: c.FingerprintOf(secret),
		ExpiresAt:   c.now().Add(c.ttl),
	}, nil
}

func (c *fakeResetCodec) FingerprintOf(secret string) string {
	return "fp(" + secret + ")"
}

func (c *fakeResetCodec) TTL() time.Duration {
	return c.ttl
}

// fakeNotifier records dispatched links and can simulate delivery failure.
type fakeNotifier struct {
	failErr error
	emails  []string
	urls    []string
}

func (n *fakeNotifier) SendPasswordResetLink(_ context.Context, email, resetURL string) error {
	if n.failErr != nil {
		return n.failErr
	}

	n.emails = append(n.emails, email)
	n.urls = append(n.urls, resetURL)

	return nil
}

type fakeLinkBuilder struct{}

func (fakeLinkBuilder) BuildResetURL(secret string) string {
	return "https://app.test/auth/reset-password?token=" + secret
}

// fakePublisher records published events; a non-nil failErr makes every
// publish fail so tests can assert best-effort behavior.
type fakePublisher struct {
	failErr error
	events  []*service.AuthEvent
}

func (p *fakePublisher) PublishAuthEvent(_ context.Context, event *service.AuthEvent) error {
	if p.failErr != nil {
		return p.failErr
	}

	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error {
	return nil
}

// fakeTokenService signs predictable session tokens.
type fakeTokenService struct {
	signErr error
}

func (t *fakeTokenService) GenerateSessionToken(claim *entity.IdentityClaim) (string, error) {
	if t.signErr != nil {
		return "", t.signErr
	}

	return "session-token:" + claim.Email, nil
}

func (t *fakeTokenService) ValidateSessionToken(string) (*service.SessionClaims, error) {
	return nil, errors.New("not implemented")
}

func (t *fakeTokenService) SessionTokenDuration() time.Duration {
	return 15 * time.Minute
}

package auth

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/pagination"
	"jobboard/internal/pkg/tfa"
	"jobboard/internal/pkg/validation"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUsers struct {
	byID map[uuid.UUID]user.User
}

func (m *mockUsers) Create(_ context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byID[u.ID] = u
	return u, nil
}

func (m *mockUsers) FindByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUsers) FindByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, repository.ErrNotFound
}

func (m *mockUsers) FindByGoogleID(_ context.Context, googleID string) (user.User, error) {
	for _, u := range m.byID {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return user.User{}, repository.ErrNotFound
}

func (m *mockUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUsers) List(context.Context, pagination.Params) (pagination.Page[user.User], error) {
	return pagination.Page[user.User]{}, nil
}

func (m *mockUsers) UpdateProfile(context.Context, uuid.UUID, *string) (user.User, error) {
	return user.User{}, nil
}

func (m *mockUsers) SetTFA(_ context.Context, id uuid.UUID, secret *string, enabled bool) error {
	u := m.byID[id]
	u.TFASecret, u.TFAEnabled = secret, enabled
	m.byID[id] = u
	return nil
}

func (m *mockUsers) LinkGoogle(_ context.Context, id uuid.UUID, googleID string) error {
	u := m.byID[id]
	u.GoogleID = &googleID
	m.byID[id] = u
	return nil
}

func (m *mockUsers) SetCVFileKey(context.Context, uuid.UUID, *string) error { return nil }
func (m *mockUsers) Delete(context.Context, uuid.UUID) error              { return nil }

type mockThrottle struct {
	counts map[string]int64
}

func (m *mockThrottle) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.counts[key]++
	return m.counts[key], nil
}

func (m *mockThrottle) Count(_ context.Context, key string) (int64, error) {
	return m.counts[key], nil
}

func (m *mockThrottle) Delete(_ context.Context, key string) error {
	delete(m.counts, key)
	return nil
}

func newTestService() (*Service, *mockUsers, *mockThrottle) {
	users := &mockUsers{byID: map[uuid.UUID]user.User{}}
	th := &mockThrottle{counts: map[string]int64{}}
	return NewService(users, th, tfa.New("jobboard-test"), 3, time.Minute, nil), users, th
}

func TestRegister(t *testing.T) {
	s, users, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Email: "nope", Password: "short"})
	require.Error(t, err)
	fields := validation.Fields(err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	u, err := s.Register(ctx, RegisterInput{Email: " Ada@Example.com ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)
	stored := users.byID[u.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))

	_, err = s.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "another one"})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestLogin_ThrottlesAfterMaxFailures(t *testing.T) {
	s, _, th := newTestService()
	ctx := context.Background()
	_, err := s.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err = s.Login(ctx, LoginInput{Email: "ada@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	th.counts = map[string]int64{}
	u, err := s.Login(ctx, LoginInput{Email: "ADA@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
}

func TestLogin_SuccessResetsCounter(t *testing.T) {
	s, _, th := newTestService()
	ctx := context.Background()
	_, err := s.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = s.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong password"})
	require.Error(t, err)
	_, err = s.Login(ctx, LoginInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Empty(t, th.counts)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s, _, _ := newTestService()
	_, err := s.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTFA_GenerateEnableVerifyDisable(t *testing.T) {
	s, users, _ := newTestService()
	ctx := context.Background()
	u, err := s.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.EnableTFA(ctx, u.ID, "000000"), ErrTFANotSetUp)

	sec, err := s.GenerateTFA(ctx, u.ID)
	require.NoError(t, err)
	assert.Contains(t, sec.URL, "otpauth://totp/")
	assert.False(t, users.byID[u.ID].TFAEnabled)

	assert.ErrorIs(t, s.EnableTFA(ctx, u.ID, "not-a-code"), tfa.ErrInvalidCode)

	code, err := totp.GenerateCode(sec.Secret, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, s.EnableTFA(ctx, u.ID, code))
	assert.True(t, users.byID[u.ID].TFAEnabled)

	logged, err := s.Login(ctx, LoginInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.True(t, logged.TFAEnabled)
	assert.Nil(t, logged.TFASecret)

	verified, err := s.VerifyTFA(ctx, u.ID, code)
	require.NoError(t, err)
	assert.Equal(t, u.ID, verified.ID)

	require.NoError(t, s.DisableTFA(ctx, u.ID, code))
	assert.False(t, users.byID[u.ID].TFAEnabled)
	assert.Nil(t, users.byID[u.ID].TFASecret)

	_, err = s.VerifyTFA(ctx, u.ID, code)
	assert.ErrorIs(t, err, ErrTFANotEnabled)
}

func TestFindOrCreateGoogle(t *testing.T) {
	s, users, _ := newTestService()
	ctx := context.Background()
	existing, err := s.Register(ctx, RegisterInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	linked, err := s.FindOrCreateGoogle(ctx, GoogleIdentity{Subject: "g-1", Email: "Ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)
	require.NotNil(t, users.byID[existing.ID].GoogleID)

	again, err := s.FindOrCreateGoogle(ctx, GoogleIdentity{Subject: "g-1", Email: "changed@example.com"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, again.ID)

	fresh, err := s.FindOrCreateGoogle(ctx, GoogleIdentity{Subject: "g-2", Email: "grace@example.com", Name: " Grace "})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, fresh.ID)
	assert.False(t, fresh.HasPassword())
	require.NotNil(t, fresh.FullName)
	assert.Equal(t, "Grace", *fresh.FullName)
	assert.Len(t, users.byID, 2)
}

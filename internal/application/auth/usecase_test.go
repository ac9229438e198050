package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/pkg/jwt"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

type memUsers struct {
	byEmail map[string]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{byEmail: map[string]*entity.User{}}
	for _, u := range users {
		m.byEmail[u.Email] = u
	}
	return m
}

func (m *memUsers) Create(u *entity.User) error { m.byEmail[u.Email] = u; return nil }

func (m *memUsers) GetByID(id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

func (m *memUsers) Update(u *entity.User) error { m.byEmail[u.Email] = u; return nil }

func (m *memUsers) List(int, int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(m.byEmail))
	for _, u := range m.byEmail {
		out = append(out, u)
	}
	return out, nil
}

type memEvents struct {
	items []*entity.SecurityEvent
}

func (m *memEvents) Create(e *entity.SecurityEvent) error {
	m.items = append(m.items, e)
	return nil
}

func (m *memEvents) ListRecent(int) ([]*entity.SecurityEvent, error) { return m.items, nil }

func (m *memEvents) byType(eventType string) []*entity.SecurityEvent {
	out := []*entity.SecurityEvent{}
	for _, e := range m.items {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

const testSecret = "test-secret-32-bytes-loooooooong"

func activeUser(t *testing.T) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           "u1",
		Email:        "owner@example.com",
		Name:         "Max Betreiber",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       "active",
	}
}

func authFixture(t *testing.T, users ...*entity.User) (*UseCase, *memEvents) {
	t.Helper()
	events := &memEvents{}
	uc := NewUseCase(
		newMemUsers(users...),
		events,
		NewLoginLimiter(3, time.Minute),
		logger.New(logger.Config{Env: "production", Level: "error"}),
		testSecret, "automaten-api", 60,
	)
	return uc, events
}

func TestLoginSuccess(t *testing.T) {
	uc, events := authFixture(t, activeUser(t))

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "Owner@Example.com ", Password: "correct horse",
	}, "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)

	userID, role, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleAdmin, role)

	require.Len(t, events.byType(eventLogin), 1)
}

func TestLoginWrongPassword(t *testing.T) {
	uc, events := authFixture(t, activeUser(t))

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "wrong",
	}, "10.0.0.1")
	assert.Equal(t, "INVALID_CREDENTIALS", domain.CodeOf(err))
	require.Len(t, events.byType(eventLoginFailed), 1)
}

func TestLoginUnknownOrInactiveUser(t *testing.T) {
	inactive := activeUser(t)
	inactive.Status = "inactive"
	uc, _ := authFixture(t, inactive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "correct horse",
	}, "10.0.0.1")
	assert.Equal(t, "INVALID_CREDENTIALS", domain.CodeOf(err))

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	}, "10.0.0.1")
	assert.Equal(t, "INVALID_CREDENTIALS", domain.CodeOf(err))
}

func TestLoginRateLimiting(t *testing.T) {
	uc, events := authFixture(t, activeUser(t))

	for i := 0; i < 3; i++ {
		_, err := uc.Login(context.Background(), dto.LoginRequest{
			Email: "owner@example.com", Password: "wrong",
		}, "10.0.0.9")
		assert.Equal(t, "INVALID_CREDENTIALS", domain.CodeOf(err))
	}

	// fourth attempt in the window is blocked even with correct credentials
	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "correct horse",
	}, "10.0.0.9")
	assert.Equal(t, "RATE_LIMITED", domain.CodeOf(err))
	require.Len(t, events.byType(eventRateLimited), 1)

	// a different IP is unaffected
	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "owner@example.com", Password: "correct horse",
	}, "10.0.0.10")
	assert.NoError(t, err)
}

func TestRegister(t *testing.T) {
	uc, events := authFixture(t, activeUser(t))

	created, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "New@Example.com", Name: "Neu", Password: "longenough", Role: entity.RoleOperator,
	}, "u1", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", created.Email)
	require.Len(t, events.byType(eventUserCreated), 1)

	// duplicate email
	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "new@example.com", Name: "Neu", Password: "longenough", Role: entity.RoleOperator,
	}, "u1", "10.0.0.1")
	assert.Equal(t, "EMAIL_EXISTS", domain.CodeOf(err))

	// bad role and short password
	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "x@example.com", Name: "X", Password: "longenough", Role: "root",
	}, "u1", "10.0.0.1")
	assert.Equal(t, "VALIDATION", domain.CodeOf(err))
	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "x@example.com", Name: "X", Password: "short", Role: entity.RoleOperator,
	}, "u1", "10.0.0.1")
	assert.Equal(t, "VALIDATION", domain.CodeOf(err))
}

func TestLoginLimiterWindowExpiry(t *testing.T) {
	l := NewLoginLimiter(2, 10*time.Millisecond)

	assert.True(t, l.Allow("ip"))
	assert.True(t, l.Allow("ip"))
	assert.False(t, l.Allow("ip"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, l.Allow("ip"), "window expired")
}

func TestLoginLimiterEvictsExpiredEntries(t *testing.T) {
	l := NewLoginLimiter(3, 10*time.Millisecond)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		assert.True(t, l.Allow(ip))
	}
	time.Sleep(15 * time.Millisecond)

	// one fresh attempt prunes every stale window, not just its own
	assert.True(t, l.Allow("10.0.0.4"))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.attempts, 1, "expired windows of other IPs are evicted")
	_, ok := l.attempts["10.0.0.4"]
	assert.True(t, ok)
}

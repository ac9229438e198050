// Package auth implements login, account management and the security log.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	"github.com/automaten-pro/automaten-api/pkg/jwt"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

// Security event types written by this package.
const (
	eventLogin       = "login"
	eventLoginFailed = "login_failed"
	eventRateLimited = "rate_limited"
	eventUserCreated = "user_created"
)

var validRoles = map[string]bool{
	entity.RoleOperator: true,
	entity.RoleManager:  true,
	entity.RoleAdmin:    true,
}

// UseCase handles authentication and the operator accounts.
type UseCase struct {
	userRepo   repository.UserRepository
	secRepo    repository.SecurityEventRepository
	limiter    *LoginLimiter
	log        *logger.Logger
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewUseCase builds the auth use case.
func NewUseCase(
	userRepo repository.UserRepository,
	secRepo repository.SecurityEventRepository,
	limiter *LoginLimiter,
	log *logger.Logger,
	jwtSecret, jwtIssuer string,
	expMinutes int,
) *UseCase {
	if expMinutes <= 0 {
		expMinutes = 480
	}
	return &UseCase{
		userRepo:   userRepo,
		secRepo:    secRepo,
		limiter:    limiter,
		log:        log,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		expMinutes: expMinutes,
	}
}

// Login verifies credentials and issues a token. Repeated failures from one
// IP are rate limited and land in the security log.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	if !uc.limiter.Allow(ip) {
		uc.event(eventRateLimited, "", ip, entity.SeverityWarning, "login attempts exceeded")
		return nil, domain.ErrRateLimited
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		uc.event(eventLoginFailed, "", ip, entity.SeverityWarning, "unknown or inactive account: "+email)
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		uc.event(eventLoginFailed, user.ID, ip, entity.SeverityWarning, "wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}

	uc.limiter.Reset(ip)
	uc.event(eventLogin, user.ID, ip, entity.SeverityInfo, "")
	return &dto.LoginResponse{Token: token, User: *userResponse(user)}, nil
}

// Register creates an operator account. Admin only, enforced by the router.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest, createdBy, ip string) (*dto.UserResponse, error) {
	if !validRoles[req.Role] || len(req.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.event(eventUserCreated, createdBy, ip, entity.SeverityInfo, "created "+email+" as "+req.Role)
	return userResponse(user), nil
}

// GetUser loads one account.
func (uc *UseCase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return userResponse(user), nil
}

// ListUsers pages through the accounts.
func (uc *UseCase) ListUsers(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *userResponse(u))
	}
	return out, nil
}

// ListSecurityEvents returns the latest security log rows.
func (uc *UseCase) ListSecurityEvents(ctx context.Context, limit int) ([]*entity.SecurityEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.secRepo.ListRecent(limit)
}

// RecordEvent writes an event from outside the package (permission denials in
// the HTTP layer).
func (uc *UseCase) RecordEvent(eventType, userID, ip, severity, detail string) {
	uc.event(eventType, userID, ip, severity, detail)
}

func (uc *UseCase) event(eventType, userID, ip, severity, detail string) {
	err := uc.secRepo.Create(&entity.SecurityEvent{
		ID:        uuid.New().String(),
		EventType: eventType,
		UserID:    userID,
		IP:        ip,
		Severity:  severity,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Error().Err(err).Str("event", eventType).Msg("security log write failed")
	}
}

func userResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

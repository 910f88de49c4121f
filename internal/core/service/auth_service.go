package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillforge/lms-platform/internal/api/metrics"
	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
)

// AuthService implements registration, login with device limiting, and token
// verification against live user state.
type AuthService struct {
	users     ports.UserRepository
	devices   ports.DeviceRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, devices ports.DeviceRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{users: users, devices: devices, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, &domain.ValidationError{Issues: registerIssues(name, email, password)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return token, created, nil
}

func registerIssues(name, email, password string) []string {
	var issues []string
	if name == "" {
		issues = append(issues, "name is required")
	}
	if email == "" {
		issues = append(issues, "email is required")
	}
	if password == "" {
		issues = append(issues, "password is required")
	}
	return issues
}

// Login verifies credentials first, then applies the device-limit policy, then
// registers the device and issues the token. Device policy never runs for bad
// credentials so it cannot be used to probe accounts.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if input.DeviceID != "" {
		if err := s.enforceDeviceLimit(ctx, user.ID, input); err != nil {
			return "", nil, err
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("device_id", input.DeviceID).Msg("login")
	return token, user, nil
}

// enforceDeviceLimit rejects logins from unknown devices once the active-device
// limit is reached; an already-registered device always gets through.
func (s *AuthService) enforceDeviceLimit(ctx context.Context, userID string, input ports.LoginInput) error {
	count, err := s.devices.CountActive(ctx, userID)
	if err != nil {
		return err
	}

	existing, err := s.devices.FindByDeviceID(ctx, userID, input.DeviceID)
	if err != nil && !errors.Is(err, domain.ErrDeviceNotFound) {
		return err
	}

	if existing == nil && count >= domain.DeviceLimit {
		metrics.DeviceRejectionsTotal.Inc()
		return &domain.DeviceLimitError{Limit: domain.DeviceLimit, Current: count}
	}

	now := time.Now().UTC()
	device := &domain.Device{
		UserID:    userID,
		DeviceID:  input.DeviceID,
		Name:      input.DeviceName,
		Active:    true,
		LastSeen:  now,
		CreatedAt: now,
	}
	if existing != nil {
		device.CreatedAt = existing.CreatedAt
		if device.Name == "" {
			device.Name = existing.Name
		}
	}
	return s.devices.Upsert(ctx, device)
}

// VerifyToken parses and validates the token, then resolves the current user
// record and re-checks the embedded email/role against it. A token issued
// before a role change is rejected rather than trusted.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if email != user.Email || role != user.Role {
		s.log.Warn().Str("user_id", user.ID).Msg("token claims no longer match user record")
		return nil, domain.ErrTokenInvalid
	}

	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

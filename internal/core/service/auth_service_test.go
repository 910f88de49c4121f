package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillforge/lms-platform/internal/core/domain"
	"github.com/skillforge/lms-platform/internal/core/ports"
)

func newAuthSvc(users *stubUserRepo, devices *stubDeviceRepo) *AuthService {
	return NewAuthService(users, devices, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubDeviceRepo{})

	token, user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubDeviceRepo{})

	_, _, err := svc.Register(context.Background(), "", "", "")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", verr.Issues)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubDeviceRepo{})

	if _, _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pass1234"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bobby", "bob@example.com", "other123"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubDeviceRepo{})

	if _, _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret99"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), ports.LoginInput{Email: "carol@example.com", Password: "s3cret99"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user == nil || user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("expected role %s, got %v", domain.RoleUser, claims["role"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubDeviceRepo{})

	_, _, _ = svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), ports.LoginInput{Email: "dave@example.com", Password: "badpass"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubDeviceRepo{})

	if _, _, err := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: "pass"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_DeviceLimit(t *testing.T) {
	devices := &stubDeviceRepo{}
	svc := newAuthSvc(newStubUserRepo(), devices)

	_, _, err := svc.Register(context.Background(), "Eve", "eve@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	login := func(deviceID string) error {
		_, _, err := svc.Login(context.Background(), ports.LoginInput{
			Email:    "eve@example.com",
			Password: "pass1234",
			DeviceID: deviceID,
		})
		return err
	}

	if err := login("laptop"); err != nil {
		t.Fatalf("first device rejected: %v", err)
	}
	if err := login("phone"); err != nil {
		t.Fatalf("second device rejected: %v", err)
	}

	err = login("tablet")
	var dlErr *domain.DeviceLimitError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected DeviceLimitError, got %v", err)
	}
	if dlErr.Limit != domain.DeviceLimit || dlErr.Current != 2 {
		t.Fatalf("unexpected limit payload: %+v", dlErr)
	}

	// a registered device still gets through at the limit
	if err := login("laptop"); err != nil {
		t.Fatalf("known device rejected at limit: %v", err)
	}
}

func TestAuthService_Login_DeactivatedDeviceFreesSlot(t *testing.T) {
	devices := &stubDeviceRepo{}
	users := newStubUserRepo()
	svc := newAuthSvc(users, devices)

	_, user, err := svc.Register(context.Background(), "Frank", "frank@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	login := func(deviceID string) error {
		_, _, err := svc.Login(context.Background(), ports.LoginInput{
			Email:    "frank@example.com",
			Password: "pass1234",
			DeviceID: deviceID,
		})
		return err
	}

	_ = login("laptop")
	_ = login("phone")
	if err := devices.Deactivate(context.Background(), user.ID, "phone"); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := login("tablet"); err != nil {
		t.Fatalf("expected login after deactivation, got %v", err)
	}
}

func TestAuthService_VerifyToken_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthSvc(users, &stubDeviceRepo{})

	token, created, err := svc.Register(context.Background(), "Grace", "grace@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthSvc(users, &stubDeviceRepo{})

	_, created, err := svc.Register(context.Background(), "Heidi", "heidi@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims := jwt.MapClaims{
		"id":    created.ID,
		"email": created.Email,
		"role":  created.Role,
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := svc.VerifyToken(context.Background(), expired); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_VerifyToken_WrongSecret(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubDeviceRepo{})

	claims := jwt.MapClaims{"id": "user_1", "exp": time.Now().Add(time.Hour).Unix()}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := svc.VerifyToken(context.Background(), forged); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_VerifyToken_StaleRole(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthSvc(users, &stubDeviceRepo{})

	token, created, err := svc.Register(context.Background(), "Ivan", "ivan@example.com", "pass1234")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// promote the user after the token was issued
	users.users[created.ID].Role = domain.RoleAdmin

	if _, err := svc.VerifyToken(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for stale claims, got %v", err)
	}
}

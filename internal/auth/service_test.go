package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/mazirhx/outreach-backend/pkg/auth"
	"github.com/mazirhx/outreach-backend/pkg/auth/session"
	"github.com/mazirhx/outreach-backend/pkg/config"
	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
	"github.com/mazirhx/outreach-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "outreach",
		ExpirationMinutes: 30,
	}
}

func TestServiceLoginIssuesTokenPair(t *testing.T) {
	password := "member-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "member@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
	}
	cfg := testJWTConfig()

	svc, sessions, err := buildTestService(user, enums.MembershipRoleMember, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s in claims, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.MembershipRoleMember {
		t.Fatalf("expected member role claim, got %s", claims.Role)
	}
	if resp.RefreshToken != "refresh-token" {
		t.Fatalf("expected stub refresh token, got %q", resp.RefreshToken)
	}
	if sessions.generatedID != claims.ID {
		t.Fatalf("session stored under %q but jti is %q", sessions.generatedID, claims.ID)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("expected user payload in response")
	}
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "member@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		IsActive:     true,
	}

	svc, _, err := buildTestService(user, enums.MembershipRoleMember, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginRejectsInactiveUser(t *testing.T) {
	password := "inactive-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "inactive@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     false,
	}

	svc, _, err := buildTestService(user, enums.MembershipRoleMember, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginRequiresMembership(t *testing.T) {
	password := "no-role"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "no-role@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsActive:     true,
	}

	svc, err := newTestService(
		stubUserRepo{user: user},
		stubMembershipsRepo{err: gorm.ErrRecordNotFound},
		&stubSessionManager{refreshToken: "refresh-token"},
		testJWTConfig(),
	)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	assertUnauthorized(t, err)
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	oldAccessID := session.NewAccessID()
	newAccessID := session.NewAccessID()

	accessToken, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   enums.MembershipRoleAdmin,
		JTI:    oldAccessID,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	sessions := &stubSessionManager{
		rotateAccessID: newAccessID,
		rotateToken:    "rotated-refresh",
	}
	svc, err := newTestService(stubUserRepo{}, stubMembershipsRepo{}, sessions, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "old-refresh",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if sessions.rotatedFrom != oldAccessID {
		t.Fatalf("expected rotation from %q, got %q", oldAccessID, sessions.rotatedFrom)
	}
	if resp.RefreshToken != "rotated-refresh" {
		t.Fatalf("expected rotated refresh token, got %q", resp.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated access token: %v", err)
	}
	if claims.ID != newAccessID {
		t.Fatalf("expected jti %q, got %q", newAccessID, claims.ID)
	}
	if claims.UserID != userID || claims.Role != enums.MembershipRoleAdmin {
		t.Fatalf("expected identity claims to carry over, got %s/%s", claims.UserID, claims.Role)
	}
}

func TestServiceRefreshRejectsInvalidRefreshToken(t *testing.T) {
	cfg := testJWTConfig()
	accessToken, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.MembershipRoleMember,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	sessions := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc, err := newTestService(stubUserRepo{}, stubMembershipsRepo{}, sessions, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "bogus",
	})
	assertUnauthorized(t, err)
}

func TestServiceRefreshRejectsGarbageAccessToken(t *testing.T) {
	svc, err := newTestService(stubUserRepo{}, stubMembershipsRepo{}, &stubSessionManager{}, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "refresh",
	})
	assertUnauthorized(t, err)
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessionManager{}
	svc, err := newTestService(stubUserRepo{}, stubMembershipsRepo{}, sessions, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	accessID := session.NewAccessID()
	if err := svc.Logout(context.Background(), accessID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revokedID != accessID {
		t.Fatalf("expected revoke for %q, got %q", accessID, sessions.revokedID)
	}

	assertUnauthorized(t, svc.Logout(context.Background(), "  "))
}

func buildTestService(user *models.User, role enums.MembershipRole, jwtCfg config.JWTConfig) (Service, *stubSessionManager, error) {
	sessions := &stubSessionManager{refreshToken: "refresh-token"}
	membership := &models.Membership{
		ID:     uuid.New(),
		UserID: user.ID,
		Role:   role,
	}
	svc, err := newTestService(stubUserRepo{user: user}, stubMembershipsRepo{membership: membership}, sessions, jwtCfg)
	return svc, sessions, err
}

func newTestService(users stubUserRepo, memberships stubMembershipsRepo, sessions *stubSessionManager, jwtCfg config.JWTConfig) (Service, error) {
	return NewService(ServiceParams{
		UserRepo:        users,
		MembershipsRepo: memberships,
		SessionManager:  sessions,
		JWTConfig:       jwtCfg,
	})
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected unauthorized error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubMembershipsRepo struct {
	membership *models.Membership
	err        error
}

func (s stubMembershipsRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Membership, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.membership == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.membership, nil
}

type stubSessionManager struct {
	refreshToken   string
	generatedID    string
	rotatedFrom    string
	rotateAccessID string
	rotateToken    string
	rotateErr      error
	revokedID      string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generatedID = accessID
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotatedFrom = oldAccessID
	return s.rotateAccessID, s.rotateToken, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revokedID = accessID
	return nil
}

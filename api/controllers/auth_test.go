package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	internalauth "github.com/mazirhx/outreach-backend/internal/auth"
	pkgAuth "github.com/mazirhx/outreach-backend/pkg/auth"
	"github.com/mazirhx/outreach-backend/pkg/auth/session"
	"github.com/mazirhx/outreach-backend/pkg/config"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
)

type stubAuthService struct {
	loginReq     *internalauth.LoginRequest
	loginResult  *internalauth.LoginResponse
	refreshReq   *internalauth.RefreshRequest
	refreshResp  *internalauth.RefreshResponse
	loggedOutJTI string
	err          error
}

func (s *stubAuthService) Login(ctx context.Context, req internalauth.LoginRequest) (*internalauth.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.loginReq = &req
	return s.loginResult, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, req internalauth.RefreshRequest) (*internalauth.RefreshResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.refreshReq = &req
	return s.refreshResp, nil
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	if s.err != nil {
		return s.err
	}
	s.loggedOutJTI = accessID
	return nil
}

func TestAuthLoginDecodesBody(t *testing.T) {
	svc := &stubAuthService{loginResult: &internalauth.LoginResponse{AccessToken: "at", RefreshToken: "rt"}}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.loginReq == nil || svc.loginReq.Email != "a@b.com" {
		t.Fatalf("expected decoded login request, got %+v", svc.loginReq)
	}
}

func TestAuthLoginRejectsInvalidBody(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.loginReq != nil {
		t.Fatalf("service must not be called on invalid body")
	}
}

func TestAuthLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRefreshCombinesHeaderAndBody(t *testing.T) {
	svc := &stubAuthService{refreshResp: &internalauth.RefreshResponse{AccessToken: "new-at", RefreshToken: "new-rt"}}
	handler := AuthRefresh(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"rt"}`))
	req.Header.Set("Authorization", "Bearer stale-access-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.refreshReq == nil {
		t.Fatal("expected refresh request to be captured")
	}
	if svc.refreshReq.AccessToken != "stale-access-token" || svc.refreshReq.RefreshToken != "rt" {
		t.Fatalf("unexpected refresh request %+v", svc.refreshReq)
	}
}

func TestAuthRefreshRequiresBearerToken(t *testing.T) {
	handler := AuthRefresh(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"rt"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthLogoutRevokesTokenSession(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "outreach", ExpirationMinutes: 30}
	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.MembershipRoleMember,
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	svc := &stubAuthService{}
	handler := AuthLogout(svc, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.loggedOutJTI != accessID {
		t.Fatalf("expected logout for %q, got %q", accessID, svc.loggedOutJTI)
	}
}

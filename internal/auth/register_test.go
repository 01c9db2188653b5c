package auth

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mazirhx/outreach-backend/internal/memberships"
	"github.com/mazirhx/outreach-backend/internal/users"
	"github.com/mazirhx/outreach-backend/pkg/config"
	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
	"github.com/mazirhx/outreach-backend/pkg/security"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newRegisterTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Membership{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func newRegisterService(t *testing.T, conn *gorm.DB) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             gormTxRunner{db: conn},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc
}

func TestRegisterCreatesUserWithMemberRole(t *testing.T) {
	conn := newRegisterTestDB(t)
	svc := newRegisterService(t, conn)
	ctx := context.Background()

	fullName := "Jamie Rivera"
	dto, err := svc.Register(ctx, RegisterRequest{
		Email:    "Jamie@Example.COM ",
		Password: "Secret123!",
		FullName: &fullName,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if dto.Email != "jamie@example.com" {
		t.Fatalf("expected lowercased email, got %q", dto.Email)
	}
	if dto.FullName == nil || *dto.FullName != fullName {
		t.Fatalf("expected full name to be stored")
	}

	user, err := users.NewRepository(conn).FindByEmail(ctx, "jamie@example.com")
	if err != nil {
		t.Fatalf("lookup created user: %v", err)
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
	valid, err := security.VerifyPassword("Secret123!", user.PasswordHash)
	if err != nil || !valid {
		t.Fatalf("expected stored hash to verify, valid=%v err=%v", valid, err)
	}

	membership, err := memberships.NewRepository(conn).GetByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("lookup membership: %v", err)
	}
	if membership.Role != enums.MembershipRoleMember {
		t.Fatalf("expected member role, got %s", membership.Role)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	conn := newRegisterTestDB(t)
	svc := newRegisterService(t, conn)
	ctx := context.Background()

	req := RegisterRequest{Email: "dup@example.com", Password: "Secret123!"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(ctx, req)
	if err == nil {
		t.Fatalf("expected conflict on duplicate email")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}

	user, err := users.NewRepository(conn).FindByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("lookup user: %v", err)
	}
	var count int64
	if err := conn.Model(&models.Membership{}).
		Where("user_id = ?", user.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count memberships: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single membership, got %d", count)
	}
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	svc := newRegisterService(t, newRegisterTestDB(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "  ", Password: "Secret123!"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing email, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterRequest{Email: "someone@example.com", Password: ""})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing password, got %v", err)
	}
}

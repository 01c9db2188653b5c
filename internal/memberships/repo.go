package memberships

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
)

// Repository exposes membership persistence operations. A user holds at most
// one membership, enforced by the unique index on user_id.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByUser retrieves the user's membership.
func (r *Repository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// Create persists a new membership record.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, role enums.MembershipRole) (*models.Membership, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid membership role %q", role)
	}

	membership := &models.Membership{
		ID:     uuid.New(),
		UserID: userID,
		Role:   role,
	}
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// UserHasRole reports whether the user holds one of the provided roles.
func (r *Repository) UserHasRole(ctx context.Context, userID uuid.UUID, roles ...enums.MembershipRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("user_id = ? AND role IN ?", userID, roles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

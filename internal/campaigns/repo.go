package campaigns

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazirhx/outreach-backend/pkg/db/models"
)

// Repository handles campaign persistence. Every query is scoped by the
// owning user id.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to campaign operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new campaign row.
func (r *Repository) Create(ctx context.Context, dto CreateCampaignDTO) (*models.Campaign, error) {
	campaign := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

// FindByID loads a campaign owned by userID. Campaigns belonging to other
// users surface as gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ListByUser returns the user's campaigns, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Recent returns up to limit of the user's newest campaigns.
func (r *Repository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// CountByUser counts the user's campaigns.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves the provided campaign.
func (r *Repository) Update(ctx context.Context, campaign *models.Campaign) error {
	if campaign == nil {
		return fmt.Errorf("campaign is required")
	}
	return r.db.WithContext(ctx).Save(campaign).Error
}

// Delete removes the campaign row only. Uploaded lead rows keep their
// campaign_id and are never touched here.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Campaign{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

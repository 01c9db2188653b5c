package leads

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	"github.com/mazirhx/outreach-backend/pkg/pagination"
)

// activeStatuses are the uploaded-lead states still being worked by the
// automation pipeline.
var activeStatuses = []enums.LeadStatus{
	enums.LeadStatusPending,
	enums.LeadStatusCalled,
	enums.LeadStatusContacted,
}

// ListFilter narrows an uploaded-lead listing. All fields are optional.
type ListFilter struct {
	CampaignID *uuid.UUID
	Status     *enums.LeadStatus
	Query      string
	Limit      int
	Cursor     *pagination.Cursor
}

// Repository handles uploaded_leads persistence plus read-only access to the
// externally written leads table. Every query is scoped by the owning user.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to lead operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// BulkInsert persists all rows in a single transaction. Either every row
// lands or none do.
func (r *Repository) BulkInsert(ctx context.Context, rows []models.UploadedLead) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// List returns the user's uploaded leads, newest first, honouring the filter.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.UploadedLead, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")

	if filter.CampaignID != nil {
		q = q.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.Where(
			"name LIKE ? OR phone LIKE ? OR email LIKE ? OR company_name LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Cursor != nil {
		q = q.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt, filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var rows []models.UploadedLead
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByUser counts every uploaded lead the user owns.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UploadedLead{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByUser counts the user's uploaded leads still in flight.
func (r *Repository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UploadedLead{}).
		Where("user_id = ? AND status IN ?", userID, activeStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCampaign counts uploaded leads attached to the given campaign id,
// regardless of whether the campaign row still exists.
func (r *Repository) CountByCampaign(ctx context.Context, userID, campaignID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UploadedLead{}).
		Where("user_id = ? AND campaign_id = ?", userID, campaignID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListBooked returns the user's externally booked leads, newest first.
func (r *Repository) ListBooked(ctx context.Context, userID uuid.UUID) ([]models.Lead, error) {
	var rows []models.Lead
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountBooked counts the user's externally booked leads.
func (r *Repository) CountBooked(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

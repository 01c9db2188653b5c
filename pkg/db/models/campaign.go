package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mazirhx/outreach-backend/pkg/enums"
)

// Campaign is an outreach campaign owned by a single user.
type Campaign struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Avatar      *string              `gorm:"column:avatar"`
	Offer       *string              `gorm:"column:offer"`
	CalendarURL *string              `gorm:"column:calendar_url"`
	Goal        *string              `gorm:"column:goal"`
	Status      enums.CampaignStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

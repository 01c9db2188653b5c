package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a row written back by the external automation pipeline once
// outreach has produced a result. This service only ever reads it.
type Lead struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CampaignID uuid.UUID `gorm:"column:campaign_id;type:uuid;not null;index"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Name       *string   `gorm:"column:name"`
	Phone      *string   `gorm:"column:phone"`
	Status     *string   `gorm:"column:status"`
	BookingURL *string   `gorm:"column:booking_url"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

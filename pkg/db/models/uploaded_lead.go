package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mazirhx/outreach-backend/pkg/enums"
)

// UploadedLead is a lead row ingested from a CSV upload. Rows survive the
// deletion of the campaign they were uploaded under.
type UploadedLead struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	CampaignID      uuid.UUID        `gorm:"column:campaign_id;type:uuid;not null;index"`
	Name            *string          `gorm:"column:name"`
	Phone           *string          `gorm:"column:phone"`
	Email           *string          `gorm:"column:email"`
	CompanyName     *string          `gorm:"column:company_name"`
	JobTitle        *string          `gorm:"column:job_title"`
	SourceURL       *string          `gorm:"column:source_url"`
	SourcePlatform  *string          `gorm:"column:source_platform"`
	Status          enums.LeadStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	BookingURL      *string          `gorm:"column:booking_url"`
	VapiCallID      *string          `gorm:"column:vapi_call_id"`
	TwilioSMSStatus *string          `gorm:"column:twilio_sms_status"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
}

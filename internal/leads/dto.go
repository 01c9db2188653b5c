package leads

import (
	"time"

	"github.com/google/uuid"

	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
)

// UploadedLeadDTO exposes an ingested lead row in API responses.
type UploadedLeadDTO struct {
	ID              uuid.UUID        `json:"id"`
	CampaignID      uuid.UUID        `json:"campaign_id"`
	Name            *string          `json:"name,omitempty"`
	Phone           *string          `json:"phone,omitempty"`
	Email           *string          `json:"email,omitempty"`
	CompanyName     *string          `json:"company_name,omitempty"`
	JobTitle        *string          `json:"job_title,omitempty"`
	SourceURL       *string          `json:"source_url,omitempty"`
	SourcePlatform  *string          `json:"source_platform,omitempty"`
	Status          enums.LeadStatus `json:"status"`
	BookingURL      *string          `json:"booking_url,omitempty"`
	VapiCallID      *string          `json:"vapi_call_id,omitempty"`
	TwilioSMSStatus *string          `json:"twilio_sms_status,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// BookedLeadDTO exposes a row produced by the external automation pipeline.
type BookedLeadDTO struct {
	ID         uuid.UUID `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	Name       *string   `json:"name,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Status     *string   `json:"status,omitempty"`
	BookingURL *string   `json:"booking_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// IngestResultDTO summarizes a completed CSV ingestion.
type IngestResultDTO struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	LeadsCount int       `json:"leads_count"`
}

// LeadPageDTO is a cursor-paginated slice of uploaded leads.
type LeadPageDTO struct {
	Leads      []UploadedLeadDTO `json:"leads"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

// FromUploadedModel maps a persisted uploaded lead into a DTO.
func FromUploadedModel(m *models.UploadedLead) *UploadedLeadDTO {
	if m == nil {
		return nil
	}
	return &UploadedLeadDTO{
		ID:              m.ID,
		CampaignID:      m.CampaignID,
		Name:            m.Name,
		Phone:           m.Phone,
		Email:           m.Email,
		CompanyName:     m.CompanyName,
		JobTitle:        m.JobTitle,
		SourceURL:       m.SourceURL,
		SourcePlatform:  m.SourcePlatform,
		Status:          m.Status,
		BookingURL:      m.BookingURL,
		VapiCallID:      m.VapiCallID,
		TwilioSMSStatus: m.TwilioSMSStatus,
		CreatedAt:       m.CreatedAt,
	}
}

// FromBookedModel maps a persisted lead into a DTO.
func FromBookedModel(m *models.Lead) *BookedLeadDTO {
	if m == nil {
		return nil
	}
	return &BookedLeadDTO{
		ID:         m.ID,
		CampaignID: m.CampaignID,
		Name:       m.Name,
		Phone:      m.Phone,
		Status:     m.Status,
		BookingURL: m.BookingURL,
		CreatedAt:  m.CreatedAt,
	}
}

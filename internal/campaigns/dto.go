package campaigns

import (
	"time"

	"github.com/google/uuid"

	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
)

// CampaignDTO exposes safe campaign data in API responses.
type CampaignDTO struct {
	ID          uuid.UUID            `json:"id"`
	Avatar      *string              `json:"avatar,omitempty"`
	Offer       *string              `json:"offer,omitempty"`
	CalendarURL *string              `json:"calendar_url,omitempty"`
	Goal        *string              `json:"goal,omitempty"`
	Status      enums.CampaignStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CreateCampaignDTO holds creation-time data for a new campaign.
type CreateCampaignDTO struct {
	UserID      uuid.UUID
	Avatar      *string
	Offer       *string
	CalendarURL *string
	Goal        *string
	Status      *enums.CampaignStatus
}

// FromModel maps the persisted campaign into a DTO.
func FromModel(m *models.Campaign) *CampaignDTO {
	if m == nil {
		return nil
	}
	return &CampaignDTO{
		ID:          m.ID,
		Avatar:      m.Avatar,
		Offer:       m.Offer,
		CalendarURL: m.CalendarURL,
		Goal:        m.Goal,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from creation DTO, supplying defaults.
func (c CreateCampaignDTO) ToModel() *models.Campaign {
	model := &models.Campaign{
		ID:          uuid.New(),
		UserID:      c.UserID,
		Avatar:      c.Avatar,
		Offer:       c.Offer,
		CalendarURL: c.CalendarURL,
		Goal:        c.Goal,
		Status:      enums.CampaignStatusDraft,
	}
	if c.Status != nil {
		model.Status = *c.Status
	}
	return model
}

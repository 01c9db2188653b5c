package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazirhx/outreach-backend/pkg/automation"
	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
	"github.com/mazirhx/outreach-backend/pkg/logger"
	"github.com/mazirhx/outreach-backend/pkg/metrics"
)

type campaignRepository interface {
	Create(ctx context.Context, dto CreateCampaignDTO) (*models.Campaign, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Campaign, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type campaignNotifier interface {
	CampaignCreated(ctx context.Context, payload automation.CampaignCreatedPayload) error
}

// Service exposes campaign operations.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]CampaignDTO, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*CampaignDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateCampaignInput) (*CampaignDTO, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateCampaignInput) (*CampaignDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo    campaignRepository
	sink    campaignNotifier
	metrics *metrics.OutreachMetrics
	logg    *logger.Logger
}

// NewService builds a campaign service with the provided repository and sink.
func NewService(repo campaignRepository, sink campaignNotifier, m *metrics.OutreachMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("campaign repository required")
	}
	if sink == nil {
		return nil, fmt.Errorf("automation sink required")
	}
	return &service{repo: repo, sink: sink, metrics: m, logg: logg}, nil
}

// CreateCampaignInput captures the allowed fields for creation.
type CreateCampaignInput struct {
	Avatar      *string
	Offer       *string
	CalendarURL *string
	Goal        *string
	Status      *enums.CampaignStatus
}

// UpdateCampaignInput captures the allowed campaign fields for mutation.
type UpdateCampaignInput struct {
	Avatar      *string
	Offer       *string
	CalendarURL *string
	Goal        *string
	Status      *enums.CampaignStatus
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]CampaignDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
	}
	dtos := make([]CampaignDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*CampaignDTO, error) {
	campaign, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
	}
	return FromModel(campaign), nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateCampaignInput) (*CampaignDTO, error) {
	if input.Offer == nil || strings.TrimSpace(*input.Offer) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offer is required")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid campaign status")
	}

	campaign, err := s.repo.Create(ctx, CreateCampaignDTO{
		UserID:      userID,
		Avatar:      input.Avatar,
		Offer:       input.Offer,
		CalendarURL: input.CalendarURL,
		Goal:        input.Goal,
		Status:      input.Status,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create campaign")
	}

	// The campaign row is committed. A sink failure is logged and counted
	// but never surfaced to the caller.
	s.notifyCreated(ctx, campaign)

	return FromModel(campaign), nil
}

func (s *service) notifyCreated(ctx context.Context, campaign *models.Campaign) {
	err := s.sink.CampaignCreated(ctx, automation.CampaignCreatedPayload{
		CampaignID: campaign.ID,
		UserID:     campaign.UserID,
		Offer:      campaign.Offer,
		Goal:       campaign.Goal,
	})
	if err != nil {
		s.metrics.IncSinkFailure("campaign_created")
		if s.logg != nil {
			ctx = s.logg.WithCampaignID(ctx, campaign.ID.String())
			s.logg.Warn(ctx, fmt.Sprintf("campaign created webhook failed: %v", err))
		}
		return
	}
	s.metrics.IncSinkSuccess("campaign_created")
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateCampaignInput) (*CampaignDTO, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid campaign status")
	}

	campaign, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
	}

	if input.Avatar != nil {
		campaign.Avatar = cloneStringPtr(input.Avatar)
	}
	if input.Offer != nil {
		campaign.Offer = cloneStringPtr(input.Offer)
	}
	if input.CalendarURL != nil {
		campaign.CalendarURL = cloneStringPtr(input.CalendarURL)
	}
	if input.Goal != nil {
		campaign.Goal = cloneStringPtr(input.Goal)
	}
	if input.Status != nil {
		campaign.Status = *input.Status
	}

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update campaign")
	}
	return FromModel(campaign), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete campaign")
	}
	return nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}

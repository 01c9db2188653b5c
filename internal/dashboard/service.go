package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mazirhx/outreach-backend/internal/campaigns"
	"github.com/mazirhx/outreach-backend/pkg/db/models"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
)

const recentCampaignLimit = 5

type campaignReader interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Campaign, error)
}

type leadCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountBooked(ctx context.Context, userID uuid.UUID) (int64, error)
}

// OverviewDTO is the aggregate served to the dashboard screen.
type OverviewDTO struct {
	TotalCampaigns  int64                   `json:"total_campaigns"`
	TotalLeads      int64                   `json:"total_leads"`
	BookedLeads     int64                   `json:"booked_leads"`
	ActiveLeads     int64                   `json:"active_leads"`
	RecentCampaigns []campaigns.CampaignDTO `json:"recent_campaigns"`
}

// Service exposes the dashboard aggregate.
type Service interface {
	Overview(ctx context.Context, userID uuid.UUID) (*OverviewDTO, error)
}

type service struct {
	campaigns campaignReader
	leads     leadCounter
}

// NewService builds a dashboard service over campaign and lead readers.
func NewService(campaignsRepo campaignReader, leadsRepo leadCounter) (Service, error) {
	if campaignsRepo == nil {
		return nil, fmt.Errorf("campaign reader required")
	}
	if leadsRepo == nil {
		return nil, fmt.Errorf("lead counter required")
	}
	return &service{campaigns: campaignsRepo, leads: leadsRepo}, nil
}

// Overview fans out the four independent counts plus the recent-campaign
// fetch concurrently and assembles the aggregate.
func (s *service) Overview(ctx context.Context, userID uuid.UUID) (*OverviewDTO, error) {
	var dto OverviewDTO
	var recent []models.Campaign

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.campaigns.CountByUser(gctx, userID)
		dto.TotalCampaigns = count
		return err
	})
	g.Go(func() error {
		count, err := s.leads.CountByUser(gctx, userID)
		dto.TotalLeads = count
		return err
	})
	g.Go(func() error {
		count, err := s.leads.CountBooked(gctx, userID)
		dto.BookedLeads = count
		return err
	})
	g.Go(func() error {
		count, err := s.leads.CountActiveByUser(gctx, userID)
		dto.ActiveLeads = count
		return err
	})
	g.Go(func() error {
		rows, err := s.campaigns.Recent(gctx, userID, recentCampaignLimit)
		recent = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dashboard stats")
	}

	dto.RecentCampaigns = make([]campaigns.CampaignDTO, 0, len(recent))
	for i := range recent {
		dto.RecentCampaigns = append(dto.RecentCampaigns, *campaigns.FromModel(&recent[i]))
	}
	return &dto, nil
}

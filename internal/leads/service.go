package leads

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
	"github.com/mazirhx/outreach-backend/pkg/pagination"
)

type campaignFinder interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Campaign, error)
}

type leadRepository interface {
	BulkInsert(ctx context.Context, rows []models.UploadedLead) error
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.UploadedLead, error)
	ListBooked(ctx context.Context, userID uuid.UUID) ([]models.Lead, error)
}

type uploadNotifier interface {
	LeadsUploaded(ctx context.Context, payload automation.LeadsUploadedPayload) error
}

// Service exposes lead ingestion and listing operations.
type Service interface {
	Ingest(ctx context.Context, userID, campaignID uuid.UUID, csv string) (*IngestResultDTO, error)
	List(ctx context.Context, userID uuid.UUID, input ListLeadsInput) (*LeadPageDTO, error)
	ListBooked(ctx context.Context, userID uuid.UUID) ([]BookedLeadDTO, error)
}

type service struct {
	repo      leadRepository
	campaigns campaignFinder
	sink      uploadNotifier
	metrics   *metrics.OutreachMetrics
	logg      *logger.Logger
}

// NewService builds a lead service with the provided dependencies.
func NewService(repo leadRepository, campaigns campaignFinder, sink uploadNotifier, m *metrics.OutreachMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("lead repository required")
	}
	if campaigns == nil {
		return nil, fmt.Errorf("campaign finder required")
	}
	if sink == nil {
		return nil, fmt.Errorf("automation sink required")
	}
	return &service{repo: repo, campaigns: campaigns, sink: sink, metrics: m, logg: logg}, nil
}

// ListLeadsInput narrows and pages an uploaded-lead listing.
type ListLeadsInput struct {
	CampaignID *uuid.UUID
	Status     *enums.LeadStatus
	Query      string
	Limit      int
	Cursor     string
}

// Ingest parses the CSV payload and persists every row in one batch. The
// whole batch fails together. The automation sink is notified only after the
// rows are committed and its failure never undoes the write.
func (s *service) Ingest(ctx context.Context, userID, campaignID uuid.UUID, csv string) (*IngestResultDTO, error) {
	campaign, err := s.campaigns.FindByID(ctx, userID, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
	}

	rows := ParseCSV(csv, userID, campaign.ID)
	if len(rows) == 0 {
		return &IngestResultDTO{CampaignID: campaign.ID, LeadsCount: 0}, nil
	}

	if err := s.repo.BulkInsert(ctx, rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("persist lead batch of %d rows", len(rows)))
	}
	s.metrics.AddLeadsIngested(campaign.ID.String(), len(rows))

	s.notifyUploaded(ctx, campaign.ID, userID, len(rows))

	return &IngestResultDTO{CampaignID: campaign.ID, LeadsCount: len(rows)}, nil
}

func (s *service) notifyUploaded(ctx context.Context, campaignID, userID uuid.UUID, count int) {
	err := s.sink.LeadsUploaded(ctx, automation.LeadsUploadedPayload{
		CampaignID: campaignID,
		UserID:     userID,
		LeadsCount: count,
	})
	if err != nil {
		s.metrics.IncSinkFailure("leads_uploaded")
		if s.logg != nil {
			ctx = s.logg.WithCampaignID(ctx, campaignID.String())
			s.logg.Warn(ctx, fmt.Sprintf("leads uploaded webhook failed: %v", err))
		}
		return
	}
	s.metrics.IncSinkSuccess("leads_uploaded")
}

func (s *service) List(ctx context.Context, userID uuid.UUID, input ListLeadsInput) (*LeadPageDTO, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lead status")
	}
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	rows, err := s.repo.List(ctx, userID, ListFilter{
		CampaignID: input.CampaignID,
		Status:     input.Status,
		Query:      strings.TrimSpace(input.Query),
		Limit:      pagination.LimitWithBuffer(input.Limit),
		Cursor:     cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list uploaded leads")
	}

	page := &LeadPageDTO{Leads: make([]UploadedLeadDTO, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[limit-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
	}
	for i := range rows {
		page.Leads = append(page.Leads, *FromUploadedModel(&rows[i]))
	}
	return page, nil
}

func (s *service) ListBooked(ctx context.Context, userID uuid.UUID) ([]BookedLeadDTO, error) {
	rows, err := s.repo.ListBooked(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list booked leads")
	}
	dtos := make([]BookedLeadDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromBookedModel(&rows[i]))
	}
	return dtos, nil
}

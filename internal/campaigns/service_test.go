package campaigns

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazirhx/outreach-backend/pkg/automation"
	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, &stubNotifier{}, nil, nil)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewServiceRequiresSink(t *testing.T) {
	_, err := NewService(&stubCampaignRepo{}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error creating service without sink")
	}
}

func TestServiceGetNotOwned(t *testing.T) {
	repo := &stubCampaignRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, &stubNotifier{})

	_, gotErr := svc.Get(context.Background(), uuid.New(), uuid.New())
	if gotErr == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceListMapsRows(t *testing.T) {
	userID := uuid.New()
	repo := &stubCampaignRepo{
		list: []models.Campaign{*baseCampaign(userID), *baseCampaign(userID)},
	}
	svc := newTestService(t, repo, &stubNotifier{})

	dtos, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("list campaigns: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(dtos))
	}
}

func TestServiceCreateNotifiesSink(t *testing.T) {
	repo := &stubCampaignRepo{}
	sink := &stubNotifier{}
	svc := newTestService(t, repo, sink)

	offer := "demo offer"
	dto, err := svc.Create(context.Background(), uuid.New(), CreateCampaignInput{Offer: &offer})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if dto.Status != enums.CampaignStatusDraft {
		t.Fatalf("expected default draft status, got %s", dto.Status)
	}
	if sink.campaignCalls != 1 {
		t.Fatalf("expected one sink call, got %d", sink.campaignCalls)
	}
	if sink.lastCampaign.CampaignID != dto.ID {
		t.Fatalf("sink payload campaign mismatch")
	}
	if sink.lastCampaign.Offer == nil || *sink.lastCampaign.Offer != offer {
		t.Fatalf("sink payload offer mismatch: %v", sink.lastCampaign.Offer)
	}
}

func TestServiceCreateSucceedsWhenSinkFails(t *testing.T) {
	repo := &stubCampaignRepo{}
	sink := &stubNotifier{err: errors.New("sink down")}
	svc := newTestService(t, repo, sink)

	offer := "demo offer"
	dto, err := svc.Create(context.Background(), uuid.New(), CreateCampaignInput{Offer: &offer})
	if err != nil {
		t.Fatalf("create should not fail on sink error: %v", err)
	}
	if dto == nil || dto.ID == uuid.Nil {
		t.Fatal("expected persisted campaign despite sink failure")
	}
}

func TestServiceCreateRejectsInvalidStatus(t *testing.T) {
	svc := newTestService(t, &stubCampaignRepo{}, &stubNotifier{})

	offer := "demo offer"
	bad := enums.CampaignStatus("archived")
	_, gotErr := svc.Create(context.Background(), uuid.New(), CreateCampaignInput{Offer: &offer, Status: &bad})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceCreateRequiresOffer(t *testing.T) {
	svc := newTestService(t, &stubCampaignRepo{}, &stubNotifier{})

	blank := "   "
	for _, input := range []CreateCampaignInput{{}, {Offer: &blank}} {
		_, gotErr := svc.Create(context.Background(), uuid.New(), input)
		if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", gotErr)
		}
	}
}

func TestServiceUpdatePartial(t *testing.T) {
	userID := uuid.New()
	campaign := baseCampaign(userID)
	repo := &stubCampaignRepo{campaign: campaign}
	svc := newTestService(t, repo, &stubNotifier{})

	goal := "book 20 calls"
	status := enums.CampaignStatusActive
	dto, err := svc.Update(context.Background(), userID, campaign.ID, UpdateCampaignInput{
		Goal:   &goal,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("update campaign: %v", err)
	}
	if dto.Goal == nil || *dto.Goal != goal {
		t.Fatalf("expected goal updated, got %v", dto.Goal)
	}
	if dto.Status != enums.CampaignStatusActive {
		t.Fatalf("expected active status, got %s", dto.Status)
	}
	if dto.Offer == nil || *dto.Offer != "original offer" {
		t.Fatalf("untouched field should survive, got %v", dto.Offer)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	repo := &stubCampaignRepo{deleteErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, &stubNotifier{})

	gotErr := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func newTestService(t *testing.T, repo campaignRepository, sink campaignNotifier) Service {
	t.Helper()
	svc, err := NewService(repo, sink, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseCampaign(userID uuid.UUID) *models.Campaign {
	offer := "original offer"
	return &models.Campaign{
		ID:        uuid.New(),
		UserID:    userID,
		Offer:     &offer,
		Status:    enums.CampaignStatusDraft,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

type stubCampaignRepo struct {
	campaign  *models.Campaign
	list      []models.Campaign
	findErr   error
	listErr   error
	updateErr error
	deleteErr error
	created   *models.Campaign
}

func (s *stubCampaignRepo) Create(ctx context.Context, dto CreateCampaignDTO) (*models.Campaign, error) {
	s.created = dto.ToModel()
	return s.created, nil
}

func (s *stubCampaignRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Campaign, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.campaign, nil
}

func (s *stubCampaignRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	return s.list, s.listErr
}

func (s *stubCampaignRepo) Update(ctx context.Context, campaign *models.Campaign) error {
	return s.updateErr
}

func (s *stubCampaignRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.deleteErr
}

type stubNotifier struct {
	err           error
	campaignCalls int
	lastCampaign  automation.CampaignCreatedPayload
}

func (s *stubNotifier) CampaignCreated(ctx context.Context, payload automation.CampaignCreatedPayload) error {
	s.campaignCalls++
	s.lastCampaign = payload
	return s.err
}

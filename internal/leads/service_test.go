package leads

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

func TestIngestUnknownCampaignIsNotFound(t *testing.T) {
	svc := newTestService(t, &stubLeadRepo{}, &stubCampaignFinder{err: gorm.ErrRecordNotFound}, &stubUploadNotifier{})

	_, gotErr := svc.Ingest(context.Background(), uuid.New(), uuid.New(), "name\nAda")
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestIngestPersistsBatchAndNotifies(t *testing.T) {
	userID := uuid.New()
	campaign := &models.Campaign{ID: uuid.New(), UserID: userID}
	repo := &stubLeadRepo{}
	sink := &stubUploadNotifier{}
	svc := newTestService(t, repo, &stubCampaignFinder{campaign: campaign}, sink)

	result, err := svc.Ingest(context.Background(), userID, campaign.ID, "name,phone\nAda,555-0100\nLin,555-0101")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.LeadsCount != 2 {
		t.Fatalf("expected 2 leads, got %d", result.LeadsCount)
	}
	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 rows persisted, got %d", len(repo.inserted))
	}
	if sink.calls != 1 {
		t.Fatalf("expected one sink call, got %d", sink.calls)
	}
	if sink.last.CampaignID != campaign.ID || sink.last.LeadsCount != 2 {
		t.Fatalf("unexpected sink payload %+v", sink.last)
	}
}

func TestIngestBatchFailureIsAtomic(t *testing.T) {
	userID := uuid.New()
	campaign := &models.Campaign{ID: uuid.New(), UserID: userID}
	repo := &stubLeadRepo{insertErr: errors.New("constraint violation")}
	sink := &stubUploadNotifier{}
	svc := newTestService(t, repo, &stubCampaignFinder{campaign: campaign}, sink)

	_, gotErr := svc.Ingest(context.Background(), userID, campaign.ID, "name\nAda\nLin")
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
	if sink.calls != 0 {
		t.Fatal("sink must not fire for a failed batch")
	}
}

func TestIngestEmptyCSVSkipsNotification(t *testing.T) {
	userID := uuid.New()
	campaign := &models.Campaign{ID: uuid.New(), UserID: userID}
	repo := &stubLeadRepo{}
	sink := &stubUploadNotifier{}
	svc := newTestService(t, repo, &stubCampaignFinder{campaign: campaign}, sink)

	result, err := svc.Ingest(context.Background(), userID, campaign.ID, "name,phone\n")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.LeadsCount != 0 {
		t.Fatalf("expected 0 leads, got %d", result.LeadsCount)
	}
	if len(repo.inserted) != 0 {
		t.Fatal("nothing should be persisted for header-only input")
	}
	if sink.calls != 0 {
		t.Fatal("sink must not fire for an empty ingestion")
	}
}

func TestIngestSucceedsWhenSinkFails(t *testing.T) {
	userID := uuid.New()
	campaign := &models.Campaign{ID: uuid.New(), UserID: userID}
	repo := &stubLeadRepo{}
	sink := &stubUploadNotifier{err: errors.New("sink down")}
	svc := newTestService(t, repo, &stubCampaignFinder{campaign: campaign}, sink)

	result, err := svc.Ingest(context.Background(), userID, campaign.ID, "name\nAda")
	if err != nil {
		t.Fatalf("ingest should not fail on sink error: %v", err)
	}
	if result.LeadsCount != 1 {
		t.Fatalf("expected 1 lead, got %d", result.LeadsCount)
	}
	if len(repo.inserted) != 1 {
		t.Fatal("persisted rows must survive sink failure")
	}
}

func TestListRejectsInvalidStatus(t *testing.T) {
	svc := newTestService(t, &stubLeadRepo{}, &stubCampaignFinder{}, &stubUploadNotifier{})

	bad := enums.LeadStatus("won")
	_, gotErr := svc.List(context.Background(), uuid.New(), ListLeadsInput{Status: &bad})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestListRejectsMalformedCursor(t *testing.T) {
	svc := newTestService(t, &stubLeadRepo{}, &stubCampaignFinder{}, &stubUploadNotifier{})

	_, gotErr := svc.List(context.Background(), uuid.New(), ListLeadsInput{Cursor: "not-base64!"})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestListPaginatesWithNextCursor(t *testing.T) {
	rows := make([]models.UploadedLead, 26)
	now := time.Now()
	for i := range rows {
		rows[i] = models.UploadedLead{
			ID:         uuid.New(),
			Status:     enums.LeadStatusPending,
			CreatedAt:  now.Add(-time.Duration(i) * time.Minute),
			CampaignID: uuid.New(),
		}
	}
	repo := &stubLeadRepo{list: rows}
	svc := newTestService(t, repo, &stubCampaignFinder{}, &stubUploadNotifier{})

	page, err := svc.List(context.Background(), uuid.New(), ListLeadsInput{})
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(page.Leads) != 25 {
		t.Fatalf("expected default page size 25, got %d", len(page.Leads))
	}
	if page.NextCursor == nil {
		t.Fatal("expected next cursor for overflowing page")
	}
	if page.Leads[24].ID != rows[24].ID {
		t.Fatal("page should be trimmed to the limit in order")
	}
}

func TestListLastPageHasNoCursor(t *testing.T) {
	repo := &stubLeadRepo{list: []models.UploadedLead{{ID: uuid.New(), Status: enums.LeadStatusPending}}}
	svc := newTestService(t, repo, &stubCampaignFinder{}, &stubUploadNotifier{})

	page, err := svc.List(context.Background(), uuid.New(), ListLeadsInput{})
	if err != nil {
		t.Fatalf("list leads: %v", err)
	}
	if len(page.Leads) != 1 || page.NextCursor != nil {
		t.Fatalf("expected single row and no cursor, got %d rows cursor=%v", len(page.Leads), page.NextCursor)
	}
}

func TestListBooked(t *testing.T) {
	booked := []models.Lead{{ID: uuid.New(), CampaignID: uuid.New(), UserID: uuid.New()}}
	repo := &stubLeadRepo{booked: booked}
	svc := newTestService(t, repo, &stubCampaignFinder{}, &stubUploadNotifier{})

	dtos, err := svc.ListBooked(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list booked: %v", err)
	}
	if len(dtos) != 1 || dtos[0].ID != booked[0].ID {
		t.Fatalf("unexpected booked leads %+v", dtos)
	}
}

func newTestService(t *testing.T, repo leadRepository, campaigns campaignFinder, sink uploadNotifier) Service {
	t.Helper()
	svc, err := NewService(repo, campaigns, sink, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubLeadRepo struct {
	inserted  []models.UploadedLead
	insertErr error
	list      []models.UploadedLead
	listErr   error
	booked    []models.Lead
	bookedErr error
}

func (s *stubLeadRepo) BulkInsert(ctx context.Context, rows []models.UploadedLead) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, rows...)
	return nil
}

func (s *stubLeadRepo) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.UploadedLead, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	rows := s.list
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	return rows, nil
}

func (s *stubLeadRepo) ListBooked(ctx context.Context, userID uuid.UUID) ([]models.Lead, error) {
	return s.booked, s.bookedErr
}

type stubCampaignFinder struct {
	campaign *models.Campaign
	err      error
}

func (s *stubCampaignFinder) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Campaign, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.campaign, nil
}

type stubUploadNotifier struct {
	err   error
	calls int
	last  automation.LeadsUploadedPayload
}

func (s *stubUploadNotifier) LeadsUploaded(ctx context.Context, payload automation.LeadsUploadedPayload) error {
	s.calls++
	s.last = payload
	return s.err
}

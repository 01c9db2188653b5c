package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mazirhx/outreach-backend/pkg/config"
	"github.com/mazirhx/outreach-backend/pkg/logger"
)

// Notifier is the outbound surface services use to signal the external
// automation pipeline. Failures are reported, never retried here.
type Notifier interface {
	CampaignCreated(ctx context.Context, payload CampaignCreatedPayload) error
	LeadsUploaded(ctx context.Context, payload LeadsUploadedPayload) error
}

// CampaignCreatedPayload announces a new campaign to the pipeline.
type CampaignCreatedPayload struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	UserID     uuid.UUID `json:"user_id"`
	Offer      *string   `json:"offer,omitempty"`
	Goal       *string   `json:"goal,omitempty"`
}

// LeadsUploadedPayload tells the pipeline a CSV batch has been persisted.
type LeadsUploadedPayload struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	UserID     uuid.UUID `json:"user_id"`
	LeadsCount int       `json:"leads_count"`
}

// Client posts JSON webhooks to the configured automation endpoints.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	campaignPath   string
	leadUploadPath string
	logg           *logger.Logger
}

// NewClient builds a webhook client from configuration. A client with an
// empty base URL is valid; its calls become no-ops.
func NewClient(cfg config.AutomationConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base != "" {
		if _, err := url.Parse(base); err != nil {
			return nil, fmt.Errorf("parsing automation base url: %w", err)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(base, "/"),
		campaignPath:   cfg.CampaignPath,
		leadUploadPath: cfg.LeadUploadPath,
		logg:           logg,
	}, nil
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// CampaignCreated posts the campaign-created webhook.
func (c *Client) CampaignCreated(ctx context.Context, payload CampaignCreatedPayload) error {
	return c.post(ctx, c.campaignPath, payload)
}

// LeadsUploaded posts the lead-batch webhook.
func (c *Client) LeadsUploaded(ctx context.Context, payload LeadsUploadedPayload) error {
	return c.post(ctx, c.leadUploadPath, payload)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	if !c.Enabled() {
		if c.logg != nil {
			c.logg.Info(ctx, "automation sink not configured, skipping dispatch")
		}
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding automation payload: %w", err)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building automation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting to automation sink: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("automation sink responded %d for %s", resp.StatusCode, path)
	}
	return nil
}

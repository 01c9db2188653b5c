package leads

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
)

// leadSetter writes a single CSV cell into an uploaded lead row.
type leadSetter func(lead *models.UploadedLead, value string)

// headerSetters maps recognized header names to their field setters.
// Headers outside this table are ignored.
var headerSetters = map[string]leadSetter{
	"name":            func(l *models.UploadedLead, v string) { l.Name = &v },
	"phone":           func(l *models.UploadedLead, v string) { l.Phone = &v },
	"email":           func(l *models.UploadedLead, v string) { l.Email = &v },
	"company_name":    func(l *models.UploadedLead, v string) { l.CompanyName = &v },
	"job_title":       func(l *models.UploadedLead, v string) { l.JobTitle = &v },
	"source_url":      func(l *models.UploadedLead, v string) { l.SourceURL = &v },
	"source_platform": func(l *models.UploadedLead, v string) { l.SourcePlatform = &v },
}

// ParseCSV turns raw CSV text into uploaded lead rows stamped with the owner
// and target campaign. The first line is the header row; header names are
// lowercased and trimmed. Data cells are split on commas with no quoting or
// escaping, so quoted fields containing commas will misalign.
// Header-only or empty input yields an empty slice.
func ParseCSV(input string, userID, campaignID uuid.UUID) []models.UploadedLead {
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return []models.UploadedLead{}
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}

	rows := []models.UploadedLead{}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ",")

		lead := models.UploadedLead{
			UserID:     userID,
			CampaignID: campaignID,
			Status:     enums.LeadStatusPending,
		}
		for i, header := range headers {
			if i >= len(values) {
				break
			}
			setter, ok := headerSetters[header]
			if !ok {
				continue
			}
			value := strings.TrimSpace(values[i])
			if value == "" {
				continue
			}
			setter(&lead, value)
		}
		rows = append(rows, lead)
	}
	return rows
}

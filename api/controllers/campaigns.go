package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mazirhx/outreach-backend/api/responses"
	"github.com/mazirhx/outreach-backend/api/validators"
	"github.com/mazirhx/outreach-backend/internal/campaigns"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
	"github.com/mazirhx/outreach-backend/pkg/logger"
)

type campaignCreateRequest struct {
	Avatar      *string `json:"avatar,omitempty"`
	Offer       *string `json:"offer" validate:"required,min=1"`
	CalendarURL *string `json:"calendar_url,omitempty" validate:"omitempty,url"`
	Goal        *string `json:"goal,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type campaignUpdateRequest struct {
	Avatar      *string `json:"avatar,omitempty"`
	Offer       *string `json:"offer,omitempty" validate:"omitempty,min=1"`
	CalendarURL *string `json:"calendar_url,omitempty" validate:"omitempty,url"`
	Goal        *string `json:"goal,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func parseCampaignStatus(raw *string) (*enums.CampaignStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := enums.ParseCampaignStatus(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid campaign status")
	}
	return &status, nil
}

func campaignIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "campaignId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid campaign id")
	}
	return id, nil
}

// CampaignList returns every campaign owned by the caller, newest first.
func CampaignList(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CampaignGet fetches one campaign owned by the caller.
func CampaignGet(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := campaignIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CampaignCreate persists a campaign and notifies the automation sink.
func CampaignCreate(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body campaignCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := parseCampaignStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), userID, campaigns.CreateCampaignInput{
			Avatar:      body.Avatar,
			Offer:       body.Offer,
			CalendarURL: body.CalendarURL,
			Goal:        body.Goal,
			Status:      status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CampaignUpdate applies a partial update to a campaign owned by the caller.
func CampaignUpdate(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := campaignIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body campaignUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := parseCampaignStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), userID, id, campaigns.UpdateCampaignInput{
			Avatar:      body.Avatar,
			Offer:       body.Offer,
			CalendarURL: body.CalendarURL,
			Goal:        body.Goal,
			Status:      status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CampaignDelete removes the campaign row. Uploaded leads are left in place.
func CampaignDelete(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := campaignIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

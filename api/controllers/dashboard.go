package controllers

import (
	"net/http"

	"github.com/mazirhx/outreach-backend/api/responses"
	"github.com/mazirhx/outreach-backend/internal/dashboard"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
	"github.com/mazirhx/outreach-backend/pkg/logger"
)

// DashboardOverview aggregates the caller's campaign and lead counters.
func DashboardOverview(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Overview(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

package controllers

import (
	"context"
	"net/http"

	"github.com/mazirhx/outreach-backend/api/responses"
	"github.com/mazirhx/outreach-backend/internal/users"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
	"github.com/mazirhx/outreach-backend/pkg/logger"
)

type userLister interface {
	ListWithRoles(ctx context.Context) ([]users.UserWithRoleDTO, error)
}

// AdminUsersList returns every registered user with their workspace role.
func AdminUsersList(repo userLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user repository unavailable"))
			return
		}

		result, err := repo.ListWithRoles(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users"))
			return
		}

		responses.WriteSuccess(w, result)
	}
}

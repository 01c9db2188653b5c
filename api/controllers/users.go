package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazirhx/outreach-backend/api/middleware"
	"github.com/mazirhx/outreach-backend/api/responses"
	"github.com/mazirhx/outreach-backend/internal/users"
	"github.com/mazirhx/outreach-backend/pkg/db/models"
	"github.com/mazirhx/outreach-backend/pkg/enums"
	pkgerrors "github.com/mazirhx/outreach-backend/pkg/errors"
	"github.com/mazirhx/outreach-backend/pkg/logger"
)

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// UsersMe returns the caller's profile plus the role carried in their token.
func UsersMe(repo userFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user repository unavailable"))
			return
		}

		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := repo.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "user not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user"))
			return
		}

		dto := users.FromModel(user)
		payload := users.UserWithRoleDTO{UserDTO: *dto}
		if role, err := enums.ParseMembershipRole(middleware.RoleFromContext(r.Context())); err == nil {
			payload.Role = role
		}

		responses.WriteSuccess(w, payload)
	}
}

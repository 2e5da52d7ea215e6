package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopkartio/shopkart-backend/api/middleware"
	"github.com/shopkartio/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartio/shopkart-backend/pkg/errors"
)

// actorFromContext resolves the authenticated actor seeded by the auth
// middleware.
func actorFromContext(ctx context.Context) (uuid.UUID, enums.Role, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	role, err := enums.ParseRole(middleware.RoleFromContext(ctx))
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid role")
	}
	return userID, role, nil
}

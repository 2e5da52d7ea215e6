package catalog

import (
	"github.com/google/uuid"

	"github.com/shopkartio/shopkart-backend/pkg/db/models"
	"github.com/shopkartio/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartio/shopkart-backend/pkg/errors"
)

// CanMutate decides whether the actor may change or remove the listing.
// Sellers own their listings; admins may touch anything. The check runs
// before any repo write.
func CanMutate(actorID uuid.UUID, role enums.Role, product *models.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if role == enums.RoleAdmin {
		return nil
	}
	if role == enums.RoleSeller && product.SellerID == actorID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "not the owner of this listing")
}

// CanCreate decides whether the actor may publish new listings.
func CanCreate(role enums.Role) error {
	if role == enums.RoleSeller || role == enums.RoleAdmin {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "only sellers can publish listings")
}

package controllers

import (
	"net/http"

	"github.com/shopkartio/shopkart-backend/api/middleware"
	"github.com/shopkartio/shopkart-backend/api/responses"
	"github.com/shopkartio/shopkart-backend/api/validators"
	"github.com/shopkartio/shopkart-backend/internal/cart"
	"github.com/shopkartio/shopkart-backend/internal/checkout"
	"github.com/shopkartio/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartio/shopkart-backend/pkg/errors"
	"github.com/shopkartio/shopkart-backend/pkg/logger"
	"github.com/shopkartio/shopkart-backend/pkg/types"
)

type checkoutRequest struct {
	ShippingAddress types.ShippingAddress `json:"shipping_address" validate:"required"`
	PaymentMethod   string                `json:"payment_method" validate:"required"`
}

// Checkout turns the caller's cart into orders. The cart is cleared
// only after the orders are committed.
func Checkout(svc checkout.Service, store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, _, err := actorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(body.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "payment method"))
			return
		}

		state, err := store.Get(r.Context(), userID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), checkout.Buyer{
			ID:    userID,
			Email: middleware.EmailFromContext(r.Context()),
		}, checkout.Input{
			Lines:           state.Items,
			ShippingAddress: body.ShippingAddress,
			PaymentMethod:   method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Clear(r.Context(), userID.String()); err != nil && logg != nil {
			// Orders are committed; a stale cart is an inconvenience,
			// not a failure.
			logg.Error(r.Context(), "checkout.cart_clear_failed", err)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

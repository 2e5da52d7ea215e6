package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/shopkartio/shopkart-backend/internal/cart"
	"github.com/shopkartio/shopkart-backend/internal/catalog"
	"github.com/shopkartio/shopkart-backend/internal/checkout/helpers"
	"github.com/shopkartio/shopkart-backend/internal/orders"
	"github.com/shopkartio/shopkart-backend/pkg/config"
	"github.com/shopkartio/shopkart-backend/pkg/db/models"
	"github.com/shopkartio/shopkart-backend/pkg/enums"
	pkgerrors "github.com/shopkartio/shopkart-backend/pkg/errors"
	"github.com/shopkartio/shopkart-backend/pkg/gateway"
	"github.com/shopkartio/shopkart-backend/pkg/metrics"
	"github.com/shopkartio/shopkart-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Buyer identifies the purchasing user.
type Buyer struct {
	ID    uuid.UUID
	Email string
}

// Input carries everything a checkout attempt needs besides the buyer.
type Input struct {
	Lines           []cart.Line
	ShippingAddress types.ShippingAddress
	PaymentMethod   enums.PaymentMethod
}

// Result reports the orders a successful checkout created.
type Result struct {
	CheckoutID uuid.UUID   `json:"checkout_id"`
	OrderIDs   []uuid.UUID `json:"order_ids"`
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, buyer Buyer, input Input) (*Result, error)
}

type service struct {
	tx          txRunner
	catalogRepo *catalog.Repository
	ordersRepo  *orders.Repository
	charger     gateway.Charger
	metrics     *metrics.CheckoutMetrics
	placeholder string
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	catalogRepo *catalog.Repository,
	ordersRepo *orders.Repository,
	charger gateway.Charger,
	checkoutMetrics *metrics.CheckoutMetrics,
	catalogCfg config.CatalogConfig,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if charger == nil {
		return nil, fmt.Errorf("payment charger required")
	}
	return &service{
		tx:          tx,
		catalogRepo: catalogRepo,
		ordersRepo:  ordersRepo,
		charger:     charger,
		metrics:     checkoutMetrics,
		placeholder: catalogCfg.PlaceholderImage,
	}, nil
}

// Execute re-verifies every cart line, captures online payment upfront,
// and creates one pending order per seller inside a single transaction.
// Any failure persists nothing and voids whatever charge was already
// captured; the caller clears the cart only on success.
func (s *service) Execute(ctx context.Context, buyer Buyer, input Input) (*Result, error) {
	started := time.Now()
	result, err := s.execute(ctx, buyer, input)
	s.observe(result, err, time.Since(started))
	return result, err
}

func (s *service) execute(ctx context.Context, buyer Buyer, input Input) (*Result, error) {
	if buyer.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}
	if missing := input.ShippingAddress.Validate(); missing != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("shipping address missing %s", missing))
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	verified, err := s.verifyLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	checkoutID := uuid.New()
	paymentStatus := enums.PaymentStatusUnpaid
	var paymentRef *string
	if input.PaymentMethod.IsOnline() {
		ref, err := s.capturePayment(ctx, checkoutID, buyer, input.PaymentMethod, verified)
		if err != nil {
			return nil, err
		}
		paymentStatus = enums.PaymentStatusPaid
		paymentRef = ref
	}

	groups := helpers.GroupBySeller(verified)
	orderIDs := make([]uuid.UUID, 0, len(groups))

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalogRepo := s.catalogRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		for _, group := range groups {
			items := make([]models.OrderLineItem, 0, len(group.Lines))
			for _, line := range group.Lines {
				ok, err := catalogRepo.DecrementStock(ctx, line.ProductID, line.Quantity)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
				}
				if !ok {
					return pkgerrors.New(pkgerrors.CodeInsufficientStock,
						fmt.Sprintf("stock for %q changed during checkout", line.Name)).
						WithDetails(map[string]any{"product_id": line.ProductID})
				}
				items = append(items, models.OrderLineItem{
					ProductID: line.ProductID,
					Name:      line.Name,
					UnitPrice: line.UnitPrice,
					Quantity:  line.Quantity,
					Image:     line.Image,
					LineTotal: line.LineTotal(),
				})
			}

			order, err := ordersRepo.Create(ctx, &models.Order{
				CheckoutID:      checkoutID,
				BuyerID:         buyer.ID,
				BuyerEmail:      buyer.Email,
				SellerID:        group.SellerID,
				Total:           helpers.GroupTotal(group.Lines),
				Status:          enums.OrderStatusPending,
				ShippingAddress: input.ShippingAddress,
				PaymentMethod:   input.PaymentMethod,
				PaymentStatus:   paymentStatus,
				PaymentRef:      paymentRef,
				Items:           items,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
			}
			orderIDs = append(orderIDs, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, s.releasePayment(ctx, paymentRef, err)
	}

	return &Result{CheckoutID: checkoutID, OrderIDs: orderIDs}, nil
}

// releasePayment voids a captured charge after the order transaction
// rolled back, so the buyer is not left paid for nothing. A failed void
// is reported alongside the original failure.
func (s *service) releasePayment(ctx context.Context, paymentRef *string, txErr error) error {
	if paymentRef == nil || *paymentRef == "" {
		return txErr
	}
	if voidErr := s.charger.Void(ctx, *paymentRef); voidErr != nil {
		return multierr.Append(txErr,
			pkgerrors.Wrap(pkgerrors.CodeDependency, voidErr, "voiding captured payment").
				WithDetails(map[string]any{"payment_ref": *paymentRef}))
	}
	return txErr
}

// verifyLines re-reads every product and checks availability and stock.
// All lines are inspected before reporting so the buyer sees every
// problem at once.
func (s *service) verifyLines(ctx context.Context, lines []cart.Line) ([]helpers.VerifiedLine, error) {
	var combined error
	verified := make([]helpers.VerifiedLine, 0, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			combined = multierr.Append(combined, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("invalid quantity for %q", line.Name)))
			continue
		}

		product, err := s.catalogRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				combined = multierr.Append(combined, pkgerrors.New(pkgerrors.CodeProductUnavailable,
					fmt.Sprintf("%q is no longer available", line.Name)).
					WithDetails(map[string]any{"product_id": line.ProductID}))
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		if product.Quantity < line.Quantity {
			combined = multierr.Append(combined, pkgerrors.New(pkgerrors.CodeInsufficientStock,
				fmt.Sprintf("only %d of %q in stock", product.Quantity, product.Name)).
				WithDetails(map[string]any{
					"product_id": product.ID,
					"available":  product.Quantity,
					"requested":  line.Quantity,
				}))
			continue
		}

		verified = append(verified, helpers.VerifiedLine{
			ProductID: product.ID,
			SellerID:  product.SellerID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Image:     catalog.PrimaryImage(product, s.placeholder),
			Quantity:  line.Quantity,
		})
	}

	if combined != nil {
		return nil, combined
	}
	return verified, nil
}

// capturePayment charges the grand total before anything is written.
func (s *service) capturePayment(ctx context.Context, checkoutID uuid.UUID, buyer Buyer, method enums.PaymentMethod, lines []helpers.VerifiedLine) (*string, error) {
	charge, err := s.charger.Charge(ctx, gateway.ChargeRequest{
		CheckoutID: checkoutID.String(),
		Amount:     helpers.GrandTotal(lines),
		Method:     method,
		BuyerEmail: buyer.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway")
	}

	switch charge.Status {
	case gateway.ChargeSucceeded:
		ref := charge.Reference
		return &ref, nil
	case gateway.ChargeCanceled:
		return nil, pkgerrors.New(pkgerrors.CodePaymentCanceled, "payment was cancelled")
	default:
		return nil, pkgerrors.New(pkgerrors.CodePaymentFailed, "payment was declined")
	}
}

func (s *service) observe(result *Result, err error, took time.Duration) {
	label := "success"
	if err != nil {
		label = "error"
		if typed := pkgerrors.As(err); typed != nil {
			switch typed.Code() {
			case pkgerrors.CodeProductUnavailable:
				label = "product_unavailable"
			case pkgerrors.CodeInsufficientStock:
				label = "insufficient_stock"
			case pkgerrors.CodePaymentFailed, pkgerrors.CodePaymentCanceled:
				label = "payment"
			case pkgerrors.CodeValidation:
				label = "validation"
			}
		}
	}
	s.metrics.ObserveAttempt(label, took)
	if err == nil && result != nil {
		s.metrics.AddOrdersCreated(len(result.OrderIDs))
	}
}

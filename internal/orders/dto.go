package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopkartio/shopkart-backend/pkg/db/models"
	"github.com/shopkartio/shopkart-backend/pkg/enums"
	"github.com/shopkartio/shopkart-backend/pkg/types"
)

// LineItemDTO is one product snapshot inside an order.
type LineItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderDTO is the transport shape for orders.
type OrderDTO struct {
	ID              uuid.UUID             `json:"id"`
	CheckoutID      uuid.UUID             `json:"checkout_id"`
	BuyerID         uuid.UUID             `json:"buyer_id"`
	BuyerEmail      string                `json:"buyer_email"`
	SellerID        uuid.UUID             `json:"seller_id"`
	Total           decimal.Decimal       `json:"total"`
	Status          enums.OrderStatus     `json:"status"`
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	PaymentMethod   enums.PaymentMethod   `json:"payment_method"`
	PaymentStatus   enums.PaymentStatus   `json:"payment_status"`
	Items           []LineItemDTO         `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// UpdateStatusRequest carries the requested transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FromModel converts a persisted order into its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]LineItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Image:     item.Image,
			LineTotal: item.LineTotal,
		})
	}
	return &OrderDTO{
		ID:              o.ID,
		CheckoutID:      o.CheckoutID,
		BuyerID:         o.BuyerID,
		BuyerEmail:      o.BuyerEmail,
		SellerID:        o.SellerID,
		Total:           o.Total,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

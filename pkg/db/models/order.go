package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopkartio/shopkart-backend/pkg/enums"
	"github.com/shopkartio/shopkart-backend/pkg/types"
)

// Order is the per-seller order produced by a checkout. A checkout that
// spans N sellers creates N orders sharing one CheckoutID.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CheckoutID      uuid.UUID             `gorm:"column:checkout_id;type:uuid;not null;index"`
	BuyerID         uuid.UUID             `gorm:"column:buyer_id;type:uuid;not null;index"`
	BuyerEmail      string                `gorm:"column:buyer_email;not null"`
	SellerID        uuid.UUID             `gorm:"column:seller_id;type:uuid;not null;index"`
	Total           decimal.Decimal       `gorm:"column:total;type:numeric(12,2);not null"`
	Status          enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending'"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	PaymentMethod   enums.PaymentMethod   `gorm:"column:payment_method;type:text;not null;default:'cod'"`
	PaymentStatus   enums.PaymentStatus   `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	PaymentRef      *string               `gorm:"column:payment_ref"`
	Items           []OrderLineItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

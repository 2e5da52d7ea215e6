package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a seller listing.
//
// Price is a minor-unit-agnostic decimal: the storefront displays it as-is
// and never converts to integer cents. Images holds the gallery in display
// order; LegacyImage carries the single-image column older listings were
// created with. Callers must not read either directly; catalog.NormalizeImage
// resolves the fallback chain once at the repository boundary.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID    uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null;default:0"`
	Images      pq.StringArray  `gorm:"column:images;type:text[]"`
	LegacyImage *string         `gorm:"column:image"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a buyer-authored product review.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	UserEmail string    `gorm:"column:user_email;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Text      string    `gorm:"column:text;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkartio/shopkart-backend/pkg/db/models"
	pkgerrors "github.com/shopkartio/shopkart-backend/pkg/errors"
)

// ReviewDTO is the transport shape for product reviews.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AddReviewInput captures the payload for posting a review.
type AddReviewInput struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text"`
}

// ProductReviews bundles the listing with the aggregate rating.
type ProductReviews struct {
	Reviews       []ReviewDTO `json:"reviews"`
	AverageRating float64     `json:"average_rating"`
}

// Service exposes review operations.
type Service interface {
	Add(ctx context.Context, productID, userID uuid.UUID, userEmail string, input AddReviewInput) (*ReviewDTO, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) (*ProductReviews, error)
}

type repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     repository
	products productFinder
}

// NewService constructs a reviews service instance.
func NewService(repo repository, products productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Add(ctx context.Context, productID, userID uuid.UUID, userEmail string, input AddReviewInput) (*ReviewDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	created, err := s.repo.Create(ctx, &models.Review{
		ProductID: productID,
		UserID:    userID,
		UserEmail: strings.ToLower(strings.TrimSpace(userEmail)),
		Rating:    input.Rating,
		Text:      strings.TrimSpace(input.Text),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}
	return toDTO(created), nil
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) (*ProductReviews, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	avg, err := s.repo.AverageRating(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "average rating")
	}

	dtos := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		dtos = append(dtos, *toDTO(&reviews[i]))
	}
	return &ProductReviews{Reviews: dtos, AverageRating: avg}, nil
}

func toDTO(r *models.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	return &ReviewDTO{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserEmail: r.UserEmail,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}

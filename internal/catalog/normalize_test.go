package catalog

import (
	"testing"

	"github.com/lib/pq"

	"github.com/shopkartio/shopkart-backend/pkg/db/models"
)

const testPlaceholder = "https://placehold.co/500x500?text=No+Image"

func TestPrimaryImagePrefersImagesArray(t *testing.T) {
	legacy := "https://cdn.example.com/legacy.jpg"
	product := &models.Product{
		Images:      pq.StringArray{"https://cdn.example.com/first.jpg", "https://cdn.example.com/second.jpg"},
		LegacyImage: &legacy,
	}

	if got := PrimaryImage(product, testPlaceholder); got != "https://cdn.example.com/first.jpg" {
		t.Fatalf("expected first image, got %q", got)
	}
}

func TestPrimaryImageSkipsBlankEntries(t *testing.T) {
	product := &models.Product{
		Images: pq.StringArray{"  ", "", "https://cdn.example.com/real.jpg"},
	}

	if got := PrimaryImage(product, testPlaceholder); got != "https://cdn.example.com/real.jpg" {
		t.Fatalf("expected first non-blank image, got %q", got)
	}
}

func TestPrimaryImageFallsBackToLegacyColumn(t *testing.T) {
	legacy := "https://cdn.example.com/legacy.jpg"
	product := &models.Product{LegacyImage: &legacy}

	if got := PrimaryImage(product, testPlaceholder); got != legacy {
		t.Fatalf("expected legacy image, got %q", got)
	}
}

func TestPrimaryImagePlaceholderWhenNothingSet(t *testing.T) {
	blank := "   "
	cases := []*models.Product{
		nil,
		{},
		{Images: pq.StringArray{}},
		{LegacyImage: &blank},
	}
	for _, product := range cases {
		if got := PrimaryImage(product, testPlaceholder); got != testPlaceholder {
			t.Fatalf("expected placeholder for %+v, got %q", product, got)
		}
	}
}

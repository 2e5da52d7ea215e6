package catalog

import (
	"strings"

	"github.com/shopkartio/shopkart-backend/pkg/db/models"
)

// PrimaryImage resolves the display image for a product. Listings written
// by older clients carried a single image column instead of the images
// array, so the fallback chain is images[0], then the legacy column, then
// the configured placeholder.
func PrimaryImage(product *models.Product, placeholder string) string {
	if product != nil {
		for _, candidate := range product.Images {
			if img := strings.TrimSpace(candidate); img != "" {
				return img
			}
		}
		if product.LegacyImage != nil {
			if img := strings.TrimSpace(*product.LegacyImage); img != "" {
				return img
			}
		}
	}
	return placeholder
}

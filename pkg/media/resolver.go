package media

import (
	"strings"

	"github.com/namas-shop/namas-backend/pkg/config"
	"github.com/namas-shop/namas-backend/pkg/db/models"
)

// DefaultCustomBraceletKey is auto-assigned to customized bracelets created
// without an explicit image.
const DefaultCustomBraceletKey = "product_images/CustomizedBracelet_default.webp"

// Resolver turns stored object keys into public URLs. Image bytes live in an
// external store; this service only hands out locations.
type Resolver struct {
	baseURL string
}

func NewResolver(cfg config.MediaConfig) *Resolver {
	base := cfg.BaseURL
	if base == "" {
		base = "/media/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Resolver{baseURL: base}
}

// URL resolves a single object key.
func (r *Resolver) URL(key string) string {
	if key == "" {
		return ""
	}
	return r.baseURL + strings.TrimPrefix(key, "/")
}

// ProductURLs resolves every image attached to the product, in stored order.
func (r *Resolver) ProductURLs(images []models.ProductImage) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		if img.Key == "" {
			continue
		}
		urls = append(urls, r.URL(img.Key))
	}
	return urls
}

// FirstProductURL returns the primary image URL, or nil when the product has
// no images (order snapshots store null in that case).
func (r *Resolver) FirstProductURL(images []models.ProductImage) *string {
	for _, img := range images {
		if img.Key == "" {
			continue
		}
		url := r.URL(img.Key)
		return &url
	}
	return nil
}

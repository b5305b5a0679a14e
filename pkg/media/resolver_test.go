package media

import (
	"testing"

	"github.com/namas-shop/namas-backend/pkg/config"
	"github.com/namas-shop/namas-backend/pkg/db/models"
)

func TestResolverURL(t *testing.T) {
	r := NewResolver(config.MediaConfig{BaseURL: "https://cdn.example.com/media"})

	if got := r.URL("product_images/a.webp"); got != "https://cdn.example.com/media/product_images/a.webp" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := r.URL("/product_images/a.webp"); got != "https://cdn.example.com/media/product_images/a.webp" {
		t.Fatalf("expected leading slash stripped, got %q", got)
	}
	if got := r.URL(""); got != "" {
		t.Fatalf("expected empty key to resolve empty, got %q", got)
	}
}

func TestResolverDefaultBase(t *testing.T) {
	r := NewResolver(config.MediaConfig{})
	if got := r.URL("x.webp"); got != "/media/x.webp" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestResolverProductURLs(t *testing.T) {
	r := NewResolver(config.MediaConfig{BaseURL: "/media/"})

	images := []models.ProductImage{
		{Key: "product_images/one.webp"},
		{Key: ""},
		{Key: "product_images/two.webp"},
	}

	urls := r.ProductURLs(images)
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
	if urls[0] != "/media/product_images/one.webp" || urls[1] != "/media/product_images/two.webp" {
		t.Fatalf("unexpected urls %v", urls)
	}
}

func TestResolverFirstProductURL(t *testing.T) {
	r := NewResolver(config.MediaConfig{BaseURL: "/media/"})

	if got := r.FirstProductURL(nil); got != nil {
		t.Fatalf("expected nil for no images, got %v", *got)
	}

	first := r.FirstProductURL([]models.ProductImage{
		{Key: ""},
		{Key: "product_images/primary.webp"},
	})
	if first == nil || *first != "/media/product_images/primary.webp" {
		t.Fatalf("unexpected first url %v", first)
	}
}

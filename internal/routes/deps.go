package routes

import (
	"net/http"

	"github.com/tbraaten/idun/internal/handler/api"
)

// StorefrontDeps contains dependencies for the storefront API routes
type StorefrontDeps struct {
	ProductHandler  *api.ProductHandler
	CartHandler     *api.CartHandler
	CheckoutHandler *api.CheckoutHandler
}

// WebhookDeps contains dependencies for webhook routes
type WebhookDeps struct {
	StripeHandler http.HandlerFunc
}

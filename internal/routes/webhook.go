package routes

import (
	"github.com/tbraaten/idun/internal/router"
)

// RegisterWebhookRoutes registers payment provider webhook endpoints.
// These are called by Stripe, not by browsers, and authenticate via
// signature verification rather than cookies.
func RegisterWebhookRoutes(r *router.Router, deps WebhookDeps) {
	r.Post("/webhooks/stripe", deps.StripeHandler)
}

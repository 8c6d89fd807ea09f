package routes

import (
	"github.com/tbraaten/idun/internal/router"
)

// RegisterStorefrontRoutes registers the public storefront API: the
// catalog, the session cart, and checkout.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog
	r.Get("/products", deps.ProductHandler.List)
	r.Get("/products/{id}", deps.ProductHandler.Get)

	// Cart. The cart is identified by a cookie, so there is no ID in
	// these paths.
	r.Get("/cart", deps.CartHandler.View)
	r.Post("/cart/items", deps.CartHandler.AddItem)
	r.Patch("/cart/items/{id}", deps.CartHandler.UpdateItem)
	r.Delete("/cart/items/{id}", deps.CartHandler.RemoveItem)
	r.Delete("/cart", deps.CartHandler.Empty)

	// Checkout
	r.Post("/checkout/payment-intent", deps.CheckoutHandler.CreatePaymentIntent)
	r.Post("/checkout/bookings", deps.CheckoutHandler.CreateBooking)
}

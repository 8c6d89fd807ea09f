// Package cookie provides session cookie helpers. The cart reference
// lives in a long-lived HttpOnly cookie; everything else about the cart
// stays server-side.
package cookie

import (
	"net/http"
	"time"
)

// CartCookieName stores the visitor's cart ID.
const CartCookieName = "idun_cart"

// CartCookieMaxAge keeps the cart reference for 30 days.
const CartCookieMaxAge = int(30 * 24 * time.Hour / time.Second)

// Config holds cookie configuration.
type Config struct {
	// Secure determines whether cookies require HTTPS.
	// Should be true in production, false in development.
	Secure bool
}

// NewConfig creates a new cookie configuration.
func NewConfig(secure bool) *Config {
	return &Config{Secure: secure}
}

// SetSession sets a session cookie.
//
// The cookie is set with:
//   - Path: "/" (available on all paths)
//   - HttpOnly: true (not accessible via JavaScript)
//   - SameSite: Lax (sent on top-level navigations)
//   - Secure: based on config
func (c *Config) SetSession(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession removes a session cookie by setting MaxAge to -1.
func (c *Config) ClearSession(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetCart stores the cart ID in the cart cookie.
func (c *Config) SetCart(w http.ResponseWriter, cartID string) {
	c.SetSession(w, CartCookieName, cartID, CartCookieMaxAge)
}

// ClearCart removes the cart cookie.
func (c *Config) ClearCart(w http.ResponseWriter) {
	c.ClearSession(w, CartCookieName)
}

// Get retrieves a cookie value from the request.
// Returns empty string if cookie not found.
func Get(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

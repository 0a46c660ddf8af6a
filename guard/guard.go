// Package guard redirects requests based only on the presence of a backend
// session cookie. It never validates the token.
package guard

import (
	"context"
	"net/http"
	"slices"
	"strings"
)

// CookieNames are the backend session cookies, in lookup order.
var CookieNames = []string{"access_token_admin_dev", "access_token_admin"}

// AuthPages are the pages a signed in admin is sent away from.
var AuthPages = []string{"/", "/login", "/register", "/signup"}

const (
	// ProtectedPrefix is the path prefix that requires a session cookie.
	ProtectedPrefix = "/dashboard"
	DashboardPath   = "/dashboard"
	LoginPath       = "/login"
)

// Decision is the outcome of the guard for a request.
type Decision int

const (
	Pass Decision = iota
	RedirectDashboard
	RedirectLogin
)

// Token returns the first non empty session cookie of r.
func Token(r *http.Request) string {
	for _, name := range CookieNames {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// Decide applies the guard rules to a path given whether a session cookie
// is present.
func Decide(path string, hasToken bool) Decision {
	switch {
	case hasToken && slices.Contains(AuthPages, path):
		return RedirectDashboard
	case !hasToken && strings.HasPrefix(path, ProtectedPrefix):
		return RedirectLogin
	default:
		return Pass
	}
}

type tokenKey struct{}

// TokenFromContext returns the session cookie value the guard let through.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Middleware redirects requests according to Decide. Requests that pass
// carry the session token in their context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := Token(r)
		switch Decide(r.URL.Path, token != "") {
		case RedirectDashboard:
			http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
			return
		case RedirectLogin:
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		if token != "" {
			r = r.WithContext(context.WithValue(r.Context(), tokenKey{}, token))
		}
		next.ServeHTTP(w, r)
	})
}

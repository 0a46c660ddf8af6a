package web

import (
	"context"
	"net/http"

	"github.com/collabhub/admin-console/backend"
	"github.com/collabhub/admin-console/guard"
	"github.com/collabhub/admin-console/internal"
	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/state"
	"go.vocdoni.io/dvote/log"
)

// pageUI gives the listing controller its presentation capabilities for the
// duration of one request. Confirmations are answered by the confirm=yes
// form field; without it the prompt is kept so the handler can render a
// confirmation page.
type pageUI struct {
	w         http.ResponseWriter
	session   *listing.Session
	secure    bool
	confirmed bool
	prompt    string
	navigated string
}

func (u *pageUI) Confirm(_ context.Context, prompt string) (bool, error) {
	if u.confirmed {
		return true, nil
	}
	u.prompt = prompt
	return false, nil
}

func (u *pageUI) Alert(msg string) {
	u.session.Alert(msg)
}

// Navigate records the first navigation of the request. Navigating to the
// login page also clears the session cookies, otherwise the guard would
// send the browser straight back to the dashboard.
func (u *pageUI) Navigate(path string) {
	if u.navigated != "" {
		return
	}
	u.navigated = path
	if path == guard.LoginPath {
		clearSessionCookies(u.w, u.secure)
	}
}

type uiKey struct{}

// UnauthorizedHook sends the admin whose request is carried by ctx back to
// the login page. It is meant to be installed on the backend client with
// backend.WithUnauthorizedHook.
func UnauthorizedHook(ctx context.Context) {
	ui, ok := ctx.Value(uiKey{}).(*pageUI)
	if !ok {
		return
	}
	log.Infow("backend session rejected, signing out")
	ui.Navigate(guard.LoginPath)
}

// request bundles the per request collaborators of a dashboard handler.
type request struct {
	ctx     context.Context
	key     string
	session *listing.Session
	ui      *pageUI
	ctrl    *listing.Controller
}

// newRequest resolves the admin session of r. The backend session cookies
// travel in the returned context.
func (s *Server) newRequest(w http.ResponseWriter, r *http.Request) (*request, error) {
	key := internal.SessionKey(guard.TokenFromContext(r.Context()))
	session, err := s.registry.Get(r.Context(), key)
	if err != nil {
		return nil, err
	}
	ui := &pageUI{
		w:         w,
		session:   session,
		secure:    s.secureCookies,
		confirmed: r.PostFormValue("confirm") == "yes",
	}
	ctx := backend.WithCredentials(context.WithValue(r.Context(), uiKey{}, ui), sessionCookies(r))
	return &request{
		ctx:     ctx,
		key:     key,
		session: session,
		ui:      ui,
		ctrl:    listing.New(s.backend, session, ui, s.audit),
	}, nil
}

// redirect ends a request with a redirect to target, unless the controller
// navigated elsewhere. Leaving for the login page ends the admin session.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, req *request, target string) {
	if req.ui.navigated != "" {
		target = req.ui.navigated
		if target == guard.LoginPath {
			s.endSession(req)
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) endSession(req *request) {
	if err := req.session.Store.Dispatch(req.ctx, state.Logout{}); err != nil {
		log.Warnw("failed to clear console state", "error", err)
	}
	s.registry.Drop(req.key)
}

// sessionCookies returns the backend session cookies sent by the browser.
func sessionCookies(r *http.Request) []*http.Cookie {
	var out []*http.Cookie
	for _, name := range guard.CookieNames {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return out
}

// relayCookies hands the backend cookies to the browser, scoped to the
// console. It returns the session token the guard will read from them.
func relayCookies(w http.ResponseWriter, cookies []*http.Cookie, secure bool) string {
	values := make(map[string]string)
	for _, c := range cookies {
		http.SetCookie(w, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     "/",
			Expires:  c.Expires,
			MaxAge:   c.MaxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		if c.MaxAge >= 0 {
			values[c.Name] = c.Value
		}
	}
	for _, name := range guard.CookieNames {
		if v := values[name]; v != "" {
			return v
		}
	}
	return ""
}

func clearSessionCookies(w http.ResponseWriter, secure bool) {
	for _, name := range guard.CookieNames {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

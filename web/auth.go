package web

import (
	stderrors "errors"
	"net/http"

	"github.com/collabhub/admin-console/backend"
	"github.com/collabhub/admin-console/errors"
	"github.com/collabhub/admin-console/guard"
	"github.com/collabhub/admin-console/internal"
	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/state"
	"github.com/collabhub/admin-console/validator"
	"go.vocdoni.io/dvote/log"
)

// Messages shown around the session lifecycle.
const (
	loginSucceeded    = "Login successful!"
	registerSucceeded = "Registration successful!"
	registerFailed    = "Registration failed"
	loginFailed       = "Login failed"
)

type authPage struct {
	basePage
	Error    string
	Fields   map[string]string
	Email    string
	FullName string
}

func (s *Server) landingHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, landingPage, newBase(r, nil))
}

func (s *Server) termsHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, termsPage, newBase(r, nil))
}

func (s *Server) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	var alerts []string
	if r.URL.Query().Get("registered") != "" {
		alerts = append(alerts, registerSucceeded)
	}
	s.render(w, http.StatusOK, loginPage, authPage{basePage: newBase(r, alerts)})
}

func (s *Server) signupPageHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, signupPage, authPage{basePage: newBase(r, nil)})
}

// formFailure renders page again with the validation messages of err, or
// answers with a coded error when the form could not be read at all.
func (s *Server) formFailure(w http.ResponseWriter, r *http.Request, name string, page authPage, err error) {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		if coded, ok := err.(errors.Error); ok {
			coded.Write(w)
			return
		}
		errors.ErrInvalidFormData.WithErr(err).Write(w)
		return
	}
	page.basePage = newBase(r, nil)
	page.Fields = verrs.Messages()
	s.render(w, http.StatusBadRequest, name, page)
}

// loginHandler signs an admin in. The backend session cookies are handed to
// the browser and the identity is stored in the console state of that
// session.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	form := &validator.LoginForm{}
	if err := s.validator.DecodeForm(r, form); err != nil {
		s.formFailure(w, r, loginPage, authPage{Email: form.Email}, err)
		return
	}
	identity, cookies, err := s.backend.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		msg := backend.MessageOf(err)
		if msg == "" {
			msg = loginFailed
		}
		if listing.Classify(err) == listing.KindUnknown {
			log.Warnw("login failed", "email", form.Email, "error", err)
		}
		s.render(w, http.StatusUnauthorized, loginPage, authPage{
			basePage: newBase(r, nil),
			Error:    msg,
			Email:    form.Email,
		})
		return
	}
	token := relayCookies(w, cookies, s.secureCookies)
	if token == "" {
		log.Warnw("backend login answered without a session cookie", "email", form.Email)
		errors.ErrBackendUnavailable.With("no session cookie in login answer").Write(w)
		return
	}
	session, err := s.registry.Get(r.Context(), internal.SessionKey(token))
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	email := identity.CompanyEmail
	if email == "" {
		email = identity.Email
	}
	if err := session.Store.Dispatch(r.Context(), state.Login{User: state.User{
		FullName: identity.FullName,
		Email:    email,
	}}); err != nil {
		log.Warnw("failed to persist login", "error", err)
	}
	session.Alert(loginSucceeded)
	log.Infow("admin signed in", "email", email)
	http.Redirect(w, r, guard.DashboardPath, http.StatusSeeOther)
}

// signupHandler registers a new admin and sends them to the login page.
func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	form := &validator.SignupForm{}
	if err := s.validator.DecodeForm(r, form); err != nil {
		s.formFailure(w, r, signupPage, authPage{Email: form.Email, FullName: form.FullName}, err)
		return
	}
	err := s.backend.Register(r.Context(), &backend.RegisterRequest{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		msg := backend.MessageOf(err)
		if msg == "" {
			msg = registerFailed
		}
		log.Warnw("registration failed", "email", form.Email, "error", err)
		s.render(w, http.StatusBadRequest, signupPage, authPage{
			basePage: newBase(r, nil),
			Error:    msg,
			Email:    form.Email,
			FullName: form.FullName,
		})
		return
	}
	log.Infow("admin registered", "email", form.Email)
	http.Redirect(w, r, guard.LoginPath+"?registered=1", http.StatusSeeOther)
}

// logoutHandler ends the admin session on the backend and in the console.
// The browser is signed out even when the backend call fails.
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if guard.TokenFromContext(r.Context()) == "" {
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
		return
	}
	req, err := s.newRequest(w, r)
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	cookies, err := s.backend.Logout(req.ctx)
	if err != nil {
		log.Warnw("backend logout failed", "error", err)
	}
	relayCookies(w, cookies, s.secureCookies)
	req.ui.Navigate(guard.LoginPath)
	s.redirect(w, r, req, guard.LoginPath)
}

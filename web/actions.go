package web

import (
	stderrors "errors"
	"net/http"

	"github.com/collabhub/admin-console/errors"
	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/modals"
	"github.com/collabhub/admin-console/validator"
	"go.vocdoni.io/dvote/log"
)

type confirmView struct {
	basePage
	Confirmation modals.Confirmation
}

// actionDone finishes a row action. Refused actions are reported as coded
// errors; the outcome of every action that reached the backend was already
// queued as an alert and the admin goes back to the dashboard.
func (s *Server) actionDone(w http.ResponseWriter, r *http.Request, req *request, err error) {
	switch {
	case err == nil:
	case stderrors.Is(err, listing.ErrNotFound):
		errors.ErrRecordNotFound.Write(w)
		return
	case stderrors.Is(err, listing.ErrInvalidArgument):
		errors.ErrMalformedURLParam.WithErr(err).Write(w)
		return
	case stderrors.Is(err, listing.ErrDeletionNotRequested),
		stderrors.Is(err, listing.ErrVideoNotPending),
		stderrors.Is(err, listing.ErrPaymentInFlight),
		stderrors.Is(err, listing.ErrVideoInFlight):
		errors.ErrActionConflict.WithErr(err).Write(w)
		return
	case stderrors.Is(err, listing.ErrCancelled):
		log.Debugw("action not confirmed", "path", r.URL.Path)
	default:
		log.Debugw("action failed", "path", r.URL.Path, "error", err)
	}
	s.redirect(w, r, req, currentURL(req.session))
}

// confirm renders the confirmation page of the pending action when the
// controller asked for one.
func (s *Server) confirm(w http.ResponseWriter, r *http.Request, req *request, fields map[string]string) bool {
	if req.ui.prompt == "" || req.ui.confirmed {
		return false
	}
	s.render(w, http.StatusOK, confirmPage, confirmView{
		basePage: newBase(r, nil),
		Confirmation: modals.Confirmation{
			Prompt:     req.ui.prompt,
			Action:     r.URL.Path,
			Fields:     fields,
			CancelHref: currentURL(req.session),
		},
	})
	return true
}

func (s *Server) verifyCreatorHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := escapedParam(r, "id")
	if !ok {
		errors.ErrMalformedURLParam.With("missing creator id").Write(w)
		return
	}
	req, err := s.newRequest(w, r)
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	s.actionDone(w, r, req, req.ctrl.VerifyCreatorAccount(req.ctx, id))
}

// verifyBrandHandler sends the verification email of a brand. Brands are
// verified by company email, not by id.
func (s *Server) verifyBrandHandler(w http.ResponseWriter, r *http.Request) {
	form := &validator.BrandVerifyForm{}
	if err := s.validator.DecodeForm(r, form); err != nil {
		errors.ErrInvalidFormData.WithErr(err).Write(w)
		return
	}
	req, err := s.newRequest(w, r)
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	s.actionDone(w, r, req, req.ctrl.VerifyBrandAccount(req.ctx, form.Email))
}

func (s *Server) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	userType, ok := escapedParam(r, "userType")
	if !ok || (userType != listing.UserTypeCreator && userType != listing.UserTypeBrand) {
		errors.ErrMalformedURLParam.Withf("invalid user type %q", userType).Write(w)
		return
	}
	id, ok := escapedParam(r, "id")
	if !ok {
		errors.ErrMalformedURLParam.With("missing account id").Write(w)
		return
	}
	req, err := s.newRequest(w, r)
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	err = req.ctrl.DeleteAccount(req.ctx, id, userType)
	if stderrors.Is(err, listing.ErrCancelled) && s.confirm(w, r, req, nil) {
		return
	}
	s.actionDone(w, r, req, err)
}

func (s *Server) videoStatusHandler(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := escapedParam(r, "id")
	if !ok {
		errors.ErrMalformedURLParam.With("missing creator id").Write(w)
		return
	}
	videoID, ok := escapedParam(r, "videoID")
	if !ok {
		errors.ErrMalformedURLParam.With("missing video id").Write(w)
		return
	}
	form := &validator.VideoStatusForm{}
	if err := s.validator.DecodeForm(r, form); err != nil {
		errors.ErrInvalidFormData.WithErr(err).Write(w)
		return
	}
	req, err := s.newRequest(w, r)
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	s.actionDone(w, r, req, req.ctrl.SetVideoStatus(req.ctx, creatorID, videoID, form.Status))
}

func (s *Server) paymentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := escapedParam(r, "id")
	if !ok {
		errors.ErrMalformedURLParam.With("missing collaboration id").Write(w)
		return
	}
	req, err := s.newRequest(w, r)
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	amount := r.PostFormValue("amount")
	err = req.ctrl.MarkPaymentDone(req.ctx, id, amount)
	if stderrors.Is(err, listing.ErrCancelled) && !req.ui.confirmed {
		if collab, found := req.session.Store.State().Collaboration(id); found {
			conf := modals.NewPaymentConfirmation(collab, amount, r.URL.Path, currentURL(req.session))
			s.render(w, http.StatusOK, confirmPage, confirmView{basePage: newBase(r, nil), Confirmation: conf})
			return
		}
	}
	s.actionDone(w, r, req, err)
}

// Package listing coordinates the dashboard listings: it turns filter state
// into backend fetches, commits the mapped results to the session's state
// store, paginates them and dispatches the row actions. Every successful
// mutation is reconciled by refetching the affected listing; nothing is
// updated optimistically.
package listing

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/collabhub/admin-console/audit"
	"github.com/collabhub/admin-console/backend"
	"go.vocdoni.io/dvote/log"
)

// LoginPath is where the browser is sent when the session is no longer
// accepted by the backend.
const LoginPath = "/login"

// Backend is the subset of the platform backend used by the listings.
type Backend interface {
	Creators(ctx context.Context, query url.Values) (*backend.CreatorsResponse, error)
	Brands(ctx context.Context, query url.Values) (*backend.BrandsResponse, error)
	Collaborations(ctx context.Context) (*backend.CollaborationsResponse, error)
	VerifyCreator(ctx context.Context, id string) error
	VerifyBrand(ctx context.Context, companyEmail string) error
	SetVideoStatus(ctx context.Context, profileID, videoID, status string) error
	PaymentDone(ctx context.Context, collaborationID string) error
	DeleteAccount(ctx context.Context, id, userType string) error
	Logout(ctx context.Context) ([]*http.Cookie, error)
}

// Confirmer asks the admin to confirm a destructive action. Implementations
// must not block on user input: when no answer is available yet they return
// false and arrange for the question to be shown.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Notifier shows a message to the admin.
type Notifier interface {
	Alert(msg string)
}

// Navigator moves the admin to another page.
type Navigator interface {
	Navigate(path string)
}

// UI groups the capabilities the controller needs from the presentation
// layer.
type UI interface {
	Confirmer
	Notifier
	Navigator
}

var (
	// ErrSuperseded is returned by a fetch whose result was discarded
	// because a newer fetch of the same listing started after it.
	ErrSuperseded = errors.New("fetch superseded by a newer one")
	// ErrNotFound is returned when an action targets a record that is not in
	// the current listing.
	ErrNotFound = errors.New("record not found in the current listing")
	// ErrCancelled is returned when the admin did not confirm an action.
	ErrCancelled = errors.New("action not confirmed")
	// ErrDeletionNotRequested is returned when deleting an account whose
	// owner did not ask for it.
	ErrDeletionNotRequested = errors.New("account deletion was not requested")
	// ErrVideoNotPending is returned when moderating a video that was
	// already moderated.
	ErrVideoNotPending = errors.New("video is not pending moderation")
	// ErrPaymentInFlight is returned when a payment is already being marked
	// as done.
	ErrPaymentInFlight = errors.New("another payment is in progress")
	// ErrVideoInFlight is returned when a video moderation is already in
	// progress.
	ErrVideoInFlight = errors.New("another video moderation is in progress")
	// ErrInvalidArgument is returned for unknown statuses or user types.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Kind classifies a backend failure.
type Kind int

const (
	KindNone Kind = iota
	// KindUnauthorized is a 401; the backend client already sent the admin
	// to the login page.
	KindUnauthorized
	// KindForbidden is a 403.
	KindForbidden
	// KindValidation is any other 4xx, usually with a message to show.
	KindValidation
	// KindUnknown covers transport failures and 5xx answers.
	KindUnknown
)

// Classify returns the kind of err.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	switch status := backend.StatusOf(err); {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindUnknown
	}
}

// AuditTimeout bounds the publication of one audit event.
const AuditTimeout = 5 * time.Second

// Controller runs listing operations for one admin session on behalf of one
// request. It is cheap to create.
type Controller struct {
	backend Backend
	session *Session
	ui      UI
	audit   audit.Publisher
	now     func() time.Time
}

// New creates a controller. A nil publisher disables audit events.
func New(b Backend, session *Session, ui UI, publisher audit.Publisher) *Controller {
	if publisher == nil {
		publisher = audit.Nop{}
	}
	return &Controller{
		backend: b,
		session: session,
		ui:      ui,
		audit:   publisher,
		now:     time.Now,
	}
}

// Session returns the listing session the controller works on.
func (c *Controller) Session() *Session {
	return c.session
}

// alertFailure shows the outcome of a failed action. 4xx answers show the
// server message when there is one.
func (c *Controller) alertFailure(err error, fallback string) {
	switch Classify(err) {
	case KindUnauthorized:
		// the unauthorized hook already navigated away
		return
	case KindForbidden, KindValidation:
		if msg := backend.MessageOf(err); msg != "" {
			c.ui.Alert(msg)
			return
		}
	default:
		log.Warnw("backend call failed", "error", err)
	}
	c.ui.Alert(fallback)
}

// publish records an accepted mutation once the listing has been
// reconciled. The event outlives the request, bounded by AuditTimeout.
func (c *Controller) publish(ctx context.Context, action, targetID string, attrs map[string]string) {
	admin := c.session.Store.State().Session.User.Email
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), AuditTimeout)
	defer cancel()
	if err := c.audit.Publish(ctx, audit.NewEvent(action, admin, targetID, attrs)); err != nil {
		log.Warnw("failed to publish audit event", "action", action, "target", targetID, "error", err)
	}
}

package listing

import (
	"context"
	"fmt"

	"github.com/collabhub/admin-console/audit"
	"github.com/collabhub/admin-console/internal"
	"github.com/collabhub/admin-console/state"
	"go.vocdoni.io/dvote/log"
)

// Account types accepted by DeleteAccount.
const (
	UserTypeCreator = "creator"
	UserTypeBrand   = "brand"
)

// DeletePrompt is the confirmation asked before deleting an account.
const DeletePrompt = "Are you sure you want to delete this account?"

// PaymentPrompt returns the confirmation asked before marking a payment done.
func PaymentPrompt(amount string) string {
	return fmt.Sprintf("Are you sure you want to mark the payment of $%s as done?", amount)
}

// VerifyCreatorAccount marks a creator as verified and refetches creators.
func (c *Controller) VerifyCreatorAccount(ctx context.Context, id string) error {
	if _, ok := c.session.Store.State().Creator(id); !ok {
		return ErrNotFound
	}
	if err := c.backend.VerifyCreator(ctx, id); err != nil {
		c.alertFailure(err, "Failed to verify account. Please try again.")
		return err
	}
	c.ui.Alert("Creator account verified successfully.")
	c.refetchAfterMutation(ctx, state.TabCreators)
	c.publish(ctx, audit.ActionVerifyCreator, id, nil)
	return nil
}

// VerifyBrandAccount sends the verification email of the brand registered
// with companyEmail and refetches brands. Brands are verified by company
// email, not by id.
func (c *Controller) VerifyBrandAccount(ctx context.Context, companyEmail string) error {
	var brand *state.Brand
	for _, b := range c.session.Store.State().Brands {
		if b.CompanyEmail == companyEmail {
			brand = &b
			break
		}
	}
	if brand == nil || companyEmail == "" {
		return ErrNotFound
	}
	if err := c.backend.VerifyBrand(ctx, companyEmail); err != nil {
		c.alertFailure(err, "Failed to verify brand. Please try again.")
		return err
	}
	c.ui.Alert(fmt.Sprintf("Verification email sent to %s.", companyEmail))
	c.refetchAfterMutation(ctx, state.TabBrands)
	c.publish(ctx, audit.ActionVerifyBrand, brand.ID, map[string]string{"companyEmail": companyEmail})
	return nil
}

// deletionRequested looks the account up in the current listing and returns
// whether its owner asked for deletion.
func (c *Controller) deletionRequested(id, userType string) (bool, error) {
	st := c.session.Store.State()
	switch userType {
	case UserTypeCreator:
		cr, ok := st.Creator(id)
		if !ok {
			return false, ErrNotFound
		}
		return internal.IsYes(cr.RequestToDeleteAccount), nil
	case UserTypeBrand:
		b, ok := st.Brand(id)
		if !ok {
			return false, ErrNotFound
		}
		return internal.IsYes(b.RequestToDeleteAccount), nil
	}
	return false, fmt.Errorf("%w: user type %q", ErrInvalidArgument, userType)
}

// DeleteAccount deletes a creator or brand account after confirmation. It
// never reaches the backend unless the account owner requested the deletion;
// the flag is checked again after the confirmation.
func (c *Controller) DeleteAccount(ctx context.Context, id, userType string) error {
	requested, err := c.deletionRequested(id, userType)
	if err != nil {
		return err
	}
	if !requested {
		return ErrDeletionNotRequested
	}
	ok, err := c.ui.Confirm(ctx, DeletePrompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	if requested, err = c.deletionRequested(id, userType); err != nil {
		return err
	} else if !requested {
		return ErrDeletionNotRequested
	}

	if err := c.backend.DeleteAccount(ctx, id, userType); err != nil {
		c.alertFailure(err, "Failed to delete account. Please try again.")
		return err
	}
	c.ui.Alert("Account deleted successfully.")
	tab := state.TabCreators
	if userType == UserTypeBrand {
		tab = state.TabBrands
	}
	c.refetchAfterMutation(ctx, tab)
	c.publish(ctx, audit.ActionDeleteAccount, id, map[string]string{"userType": userType})
	return nil
}

var videoVerbs = map[string]string{
	state.VideoApproved: "approve",
	state.VideoDeclined: "decline",
}

// SetVideoStatus approves or declines a pending video of a creator. The
// backend is keyed by the creator's profile id. On success the creators are
// refetched so the video list shows the new status.
func (c *Controller) SetVideoStatus(ctx context.Context, creatorID, videoID, status string) error {
	verb, ok := videoVerbs[status]
	if !ok {
		return fmt.Errorf("%w: video status %q", ErrInvalidArgument, status)
	}
	creator, ok := c.session.Store.State().Creator(creatorID)
	if !ok || creator.Profile == nil {
		return ErrNotFound
	}
	var video *state.Video
	for i := range creator.Profile.Videos {
		if creator.Profile.Videos[i].ID == videoID {
			video = &creator.Profile.Videos[i]
			break
		}
	}
	if video == nil {
		return ErrNotFound
	}
	if video.Status != state.VideoPending {
		return ErrVideoNotPending
	}
	if !c.session.claimVideo(videoID) {
		return ErrVideoInFlight
	}
	err := c.backend.SetVideoStatus(ctx, creator.Profile.ID, videoID, status)
	c.session.releaseVideo(videoID)
	if err != nil {
		c.alertFailure(err, fmt.Sprintf("Failed to %s video. Please try again.", verb))
		return err
	}
	c.ui.Alert(fmt.Sprintf("Video %s successfully.", status))
	c.refetchAfterMutation(ctx, state.TabCreators)
	c.publish(ctx, audit.ActionVideoStatus, videoID, map[string]string{
		"creatorId": creatorID,
		"profileId": creator.Profile.ID,
		"status":    status,
	})
	return nil
}

// MarkPaymentDone marks the payment of a collaboration as done after
// confirmation. Only one payment can be in flight for the whole listing;
// a second one is rejected without asking. The amount of the stored
// collaboration wins over the given one, which is only used when the record
// carries none.
func (c *Controller) MarkPaymentDone(ctx context.Context, collabID, amount string) error {
	if c.session.PayingID() != "" {
		return ErrPaymentInFlight
	}
	collab, ok := c.session.Store.State().Collaboration(collabID)
	if !ok {
		return ErrNotFound
	}
	if collab.Amount != "" {
		amount = collab.Amount
	}
	confirmed, err := c.ui.Confirm(ctx, PaymentPrompt(amount))
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrCancelled
	}
	if !c.session.claimPayment(collabID) {
		return ErrPaymentInFlight
	}
	err = c.backend.PaymentDone(ctx, collabID)
	c.session.releasePayment(collabID)
	if err != nil {
		c.alertFailure(err, "Failed to mark payment as done. Please try again.")
		return err
	}
	c.ui.Alert("Payment marked as done.")
	c.refetchAfterMutation(ctx, state.TabCollaborations)
	c.publish(ctx, audit.ActionPaymentDone, collabID, map[string]string{"amount": amount})
	return nil
}

// SetActiveTab selects tab, closes any open modal and fetches the tab.
func (c *Controller) SetActiveTab(ctx context.Context, tab state.Tab) error {
	if _, ok := state.ParseTab(string(tab)); !ok {
		return fmt.Errorf("%w: tab %q", ErrInvalidArgument, tab)
	}
	if err := c.session.Store.Dispatch(ctx, state.SetActiveTab{Tab: tab}); err != nil {
		log.Warnw("failed to persist active tab", "error", err)
	}
	c.CloseModal()
	return c.refetch(ctx, tab)
}

// ResetFilters restores the default filters of tab and moves it back to
// the first page. The listing is fetched again only when refetch is set;
// otherwise fetches still in flight are superseded so their results for the
// old filters are dropped.
func (c *Controller) ResetFilters(ctx context.Context, tab state.Tab, refetch bool) error {
	switch tab {
	case state.TabCreators:
		if refetch {
			return c.FetchCreators(ctx, DefaultCreatorFilters())
		}
	case state.TabBrands:
		if refetch {
			return c.FetchBrands(ctx, DefaultBrandFilters())
		}
	default:
		return nil
	}
	c.session.resetFilters(tab)
	return nil
}

// SetPage moves tab to page, clamped to the known page range. Server
// paginated listings are fetched again; locally paginated ones only change
// the visible slice.
func (c *Controller) SetPage(ctx context.Context, tab state.Tab, page int) error {
	c.session.mu.Lock()
	p := c.session.pages[tab]
	page = p.Clamp(page)
	if page == p.Page {
		c.session.mu.Unlock()
		return nil
	}
	if !p.Server {
		p.Page = page
		c.session.pages[tab] = p
		c.session.mu.Unlock()
		return nil
	}
	creators, brands := c.session.creatorFilters, c.session.brandFilters
	c.session.mu.Unlock()

	switch tab {
	case state.TabCreators:
		creators.Page = page
		return c.FetchCreators(ctx, creators)
	case state.TabBrands:
		brands.Page = page
		return c.FetchBrands(ctx, brands)
	}
	return nil
}

// NextPage moves tab one page forward when there is a next page.
func (c *Controller) NextPage(ctx context.Context, tab state.Tab) error {
	p := c.session.Pagination(tab)
	if !p.HasNext() {
		return nil
	}
	return c.SetPage(ctx, tab, p.Page+1)
}

// PrevPage moves tab one page back when there is a previous page.
func (c *Controller) PrevPage(ctx context.Context, tab state.Tab) error {
	p := c.session.Pagination(tab)
	if !p.HasPrev() {
		return nil
	}
	return c.SetPage(ctx, tab, p.Page-1)
}

// OpenModal opens the detail view kind over the record id of tab.
func (c *Controller) OpenModal(tab state.Tab, id string, kind ModalKind) error {
	if _, ok := ParseModalKind(tab, string(kind)); !ok {
		return fmt.Errorf("%w: modal %q on %s", ErrInvalidArgument, kind, tab)
	}
	st := c.session.Store.State()
	found := false
	switch tab {
	case state.TabCreators:
		cr, ok := st.Creator(id)
		found = ok && cr.Profile != nil
	case state.TabCollaborations:
		_, found = st.Collaboration(id)
	}
	if !found {
		return ErrNotFound
	}
	c.session.mu.Lock()
	c.session.modal = &Modal{Kind: kind, Tab: tab, RecordID: id}
	c.session.mu.Unlock()
	return nil
}

// CloseModal closes the open detail view.
func (c *Controller) CloseModal() {
	c.session.mu.Lock()
	c.session.modal = nil
	c.session.mu.Unlock()
}

// Creators returns the creators on the current page.
func (c *Controller) Creators() ([]state.Creator, Pagination) {
	p := c.session.Pagination(state.TabCreators)
	return pageOf(c.session.Store.State().Creators, p), p
}

// Brands returns the brands on the current page.
func (c *Controller) Brands() ([]state.Brand, Pagination) {
	p := c.session.Pagination(state.TabBrands)
	return pageOf(c.session.Store.State().Brands, p), p
}

// Collaborations returns the collaborations on the current page.
func (c *Controller) Collaborations() ([]state.Collaboration, Pagination) {
	p := c.session.Pagination(state.TabCollaborations)
	return pageOf(c.session.Store.State().Collaborations, p), p
}

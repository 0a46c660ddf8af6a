package listing

import (
	"context"
	"errors"

	"github.com/collabhub/admin-console/state"
	"go.vocdoni.io/dvote/log"
)

// GenericFailure is shown when a failure carries no message of its own.
const GenericFailure = "Something went wrong. Please try again."

// FetchCreators fetches the creators matching f and replaces the creators
// collection with the result.
func (c *Controller) FetchCreators(ctx context.Context, f CreatorFilters) error {
	f = f.Normalize()
	gen := c.session.begin(state.TabCreators, func(s *Session) { s.creatorFilters = f })
	resp, err := c.backend.Creators(ctx, f.Query())
	if err != nil {
		return c.fetchFailed(ctx, state.TabCreators, gen, err)
	}
	creators := make([]state.Creator, 0, len(resp.Data))
	for _, raw := range resp.Data {
		creators = append(creators, mapCreator(raw))
	}
	return c.session.apply(ctx, state.TabCreators, gen, func(s *Session) state.Action {
		if p, ok := serverPagination(resp.OtherInfo, f.Page); ok {
			s.pages[state.TabCreators] = p
		} else {
			s.pages[state.TabCreators] = localPagination(len(creators), f.Page)
		}
		if resp.OtherInfo != nil {
			s.cities = resp.OtherInfo.Cities
		}
		return state.SetCreators{Creators: creators}
	})
}

// FetchBrands fetches the brands matching f and replaces the brands
// collection with the result.
func (c *Controller) FetchBrands(ctx context.Context, f BrandFilters) error {
	f = f.Normalize()
	gen := c.session.begin(state.TabBrands, func(s *Session) { s.brandFilters = f })
	resp, err := c.backend.Brands(ctx, f.Query())
	if err != nil {
		return c.fetchFailed(ctx, state.TabBrands, gen, err)
	}
	brands := make([]state.Brand, 0, len(resp.Data))
	for _, raw := range resp.Data {
		brands = append(brands, mapBrand(raw))
	}
	return c.session.apply(ctx, state.TabBrands, gen, func(s *Session) state.Action {
		if p, ok := serverPagination(resp.OtherInfo, f.Page); ok {
			s.pages[state.TabBrands] = p
		} else {
			s.pages[state.TabBrands] = localPagination(len(brands), f.Page)
		}
		return state.SetBrands{Brands: brands}
	})
}

// FetchCollaborations fetches every collaboration. The listing is paginated
// locally and keeps its current page when still in range.
func (c *Controller) FetchCollaborations(ctx context.Context) error {
	gen := c.session.begin(state.TabCollaborations, nil)
	resp, err := c.backend.Collaborations(ctx)
	if err != nil {
		return c.fetchFailed(ctx, state.TabCollaborations, gen, err)
	}
	now := c.now()
	collabs := make([]state.Collaboration, 0, len(resp.Data))
	for _, raw := range resp.Data {
		collabs = append(collabs, mapCollaboration(raw, now))
	}
	return c.session.apply(ctx, state.TabCollaborations, gen, func(s *Session) state.Action {
		page := max(s.pages[state.TabCollaborations].Page, 1)
		s.pages[state.TabCollaborations] = localPagination(len(collabs), page)
		return state.SetCollaborations{Collaborations: collabs}
	})
}

// Refresh fetches the active tab with its current filters.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refetch(ctx, c.session.Store.State().ActiveTab)
}

func (c *Controller) refetch(ctx context.Context, tab state.Tab) error {
	creators, brands := c.session.Filters()
	switch tab {
	case state.TabBrands:
		return c.FetchBrands(ctx, brands)
	case state.TabCollaborations:
		return c.FetchCollaborations(ctx)
	default:
		return c.FetchCreators(ctx, creators)
	}
}

// refetchAfterMutation reconciles a listing after an accepted mutation. Its
// failures were already handled by the fetch path.
func (c *Controller) refetchAfterMutation(ctx context.Context, tab state.Tab) {
	if err := c.refetch(ctx, tab); err != nil && !errors.Is(err, ErrSuperseded) {
		log.Debugw("refetch after mutation failed", "tab", tab, "error", err)
	}
}

// fetchFailed handles a failed fetch of tab. Failures of superseded fetches
// are dropped like their results would have been.
func (c *Controller) fetchFailed(ctx context.Context, tab state.Tab, gen uint64, err error) error {
	if !c.session.isCurrent(tab, gen) {
		return ErrSuperseded
	}
	switch Classify(err) {
	case KindUnauthorized:
		log.Debugw("listing fetch unauthorized", "tab", tab)
	case KindForbidden:
		log.Infow("listing fetch forbidden, signing out", "tab", tab)
		c.ForceLogout(ctx)
	default:
		log.Warnw("listing fetch failed", "tab", tab, "error", err)
		c.alertFailure(err, GenericFailure)
	}
	return err
}

// ForceLogout invalidates the session on the backend, clears the local state
// and sends the admin to the login page.
func (c *Controller) ForceLogout(ctx context.Context) {
	if _, err := c.backend.Logout(ctx); err != nil {
		log.Warnw("backend logout failed", "error", err)
	}
	if err := c.session.Store.Dispatch(ctx, state.Logout{}); err != nil {
		log.Warnw("failed to clear console state", "error", err)
	}
	c.session.mu.Lock()
	c.session.reset()
	c.session.mu.Unlock()
	c.ui.Navigate(LoginPath)
}

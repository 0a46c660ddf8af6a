package web

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/collabhub/admin-console/errors"
	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/modals"
	"github.com/collabhub/admin-console/state"
	"github.com/collabhub/admin-console/table"
	"go.vocdoni.io/dvote/log"
)

type tabLink struct {
	Title  string
	Href   string
	Active bool
}

type dashboardView struct {
	basePage
	User           state.User
	Tab            state.Tab
	Title          string
	Tabs           []tabLink
	CreatorFilters listing.CreatorFilters
	BrandFilters   listing.BrandFilters
	Cities         []string
	Table          table.Table
	PrevHref       string
	NextHref       string
	ResetHref      string
	CloseHref      string
	Profile        *modals.Profile
	Videos         *modals.VideoList
	Campaign       *modals.Campaign
	CollabVideos   *modals.CollabVideos
}

// dashboardURL returns the dashboard address of tab carrying the current
// filters and page of the session, so redirects keep the admin's view.
func dashboardURL(session *listing.Session, tab state.Tab, page int) string {
	q := url.Values{}
	creators, brands := session.Filters()
	switch tab {
	case state.TabCreators:
		q = creators.Query()
	case state.TabBrands:
		q = brands.Query()
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	} else if p := session.Pagination(tab); p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	q.Set("tab", string(tab))
	return dashboardEndpoint + "?" + q.Encode()
}

// currentURL is the dashboard address of the active tab of the session.
func currentURL(session *listing.Session) string {
	return dashboardURL(session, session.Store.State().ActiveTab, 0)
}

// dashboardHandler lists a tab. The filters and the page come from the
// query string; every visit fetches the listing again.
func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.newRequest(w, r)
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	q := r.URL.Query()
	tab := req.session.Store.State().ActiveTab
	if raw := q.Get("tab"); raw != "" {
		parsed, ok := state.ParseTab(raw)
		if !ok {
			errors.ErrInvalidTab.With(raw).Write(w)
			return
		}
		tab = parsed
	}
	if tab != req.session.Store.State().ActiveTab {
		if err := req.session.Store.Dispatch(req.ctx, state.SetActiveTab{Tab: tab}); err != nil {
			log.Warnw("failed to persist active tab", "error", err)
		}
		req.ctrl.CloseModal()
	}
	if q.Has("close") {
		req.ctrl.CloseModal()
	}

	switch {
	case q.Has("reset"):
		err = req.ctrl.ResetFilters(req.ctx, tab, true)
	case tab == state.TabCreators:
		err = req.ctrl.FetchCreators(req.ctx, listing.CreatorFiltersFromQuery(q))
	case tab == state.TabBrands:
		err = req.ctrl.FetchBrands(req.ctx, listing.BrandFiltersFromQuery(q))
	default:
		if err = req.ctrl.FetchCollaborations(req.ctx); err == nil {
			if page, convErr := strconv.Atoi(q.Get("page")); convErr == nil {
				err = req.ctrl.SetPage(req.ctx, tab, page)
			}
		}
	}
	if err != nil && !stderrors.Is(err, listing.ErrSuperseded) {
		log.Debugw("dashboard fetch failed", "tab", tab, "error", err)
	}
	if req.ui.navigated != "" {
		s.redirect(w, r, req, req.ui.navigated)
		return
	}
	s.render(w, http.StatusOK, dashboardPage, s.dashboardView(r, req, tab))
}

// dashboardView builds the page of tab from the session state. A listing
// whose fetch failed still shows its previous records.
func (s *Server) dashboardView(r *http.Request, req *request, tab state.Tab) dashboardView {
	st := req.session.Store.State()
	creators, brands := req.session.Filters()
	view := dashboardView{
		basePage:       newBase(r, req.session.TakeAlerts()),
		User:           st.Session.User,
		Tab:            tab,
		Title:          tab.Title(),
		CreatorFilters: creators,
		BrandFilters:   brands,
		Cities:         req.session.Cities(),
		ResetHref:      dashboardEndpoint + "?" + url.Values{"tab": {string(tab)}, "reset": {"1"}}.Encode(),
		CloseHref:      dashboardURL(req.session, tab, 0) + "&close=1",
	}
	for _, t := range state.Tabs {
		view.Tabs = append(view.Tabs, tabLink{
			Title:  t.Title(),
			Href:   dashboardEndpoint + "?tab=" + string(t),
			Active: t == tab,
		})
	}
	switch tab {
	case state.TabCreators:
		rows, p := req.ctrl.Creators()
		view.Table = table.Creators(rows, p)
	case state.TabBrands:
		rows, p := req.ctrl.Brands()
		view.Table = table.Brands(rows, p)
	default:
		rows, p := req.ctrl.Collaborations()
		view.Table = table.Collaborations(rows, p, req.session.PayingID())
	}
	view.PrevHref = dashboardURL(req.session, tab, view.Table.Pager.PrevPage)
	view.NextHref = dashboardURL(req.session, tab, view.Table.Pager.NextPage)

	modal, open := req.session.Modal()
	if !open || modal.Tab != tab {
		return view
	}
	switch modal.Kind {
	case listing.ModalProfile:
		if c, ok := st.Creator(modal.RecordID); ok {
			p := modals.NewProfile(c)
			view.Profile = &p
		}
	case listing.ModalVideos:
		if c, ok := st.Creator(modal.RecordID); ok {
			v := modals.NewVideoList(c, req.session.VideoLoadingID(), table.VideoStatusPath)
			view.Videos = &v
		}
	case listing.ModalCampaign:
		if c, ok := st.Collaboration(modal.RecordID); ok {
			v := modals.NewCampaign(c)
			view.Campaign = &v
		}
	case listing.ModalCollabVideos:
		if c, ok := st.Collaboration(modal.RecordID); ok {
			v := modals.NewCollabVideos(c)
			view.CollabVideos = &v
		}
	}
	return view
}

// modalHandler opens a detail view over a record of the current listing and
// goes back to the dashboard, which renders it.
func (s *Server) modalHandler(w http.ResponseWriter, r *http.Request) {
	rawTab, _ := escapedParam(r, "tab")
	tab, ok := state.ParseTab(rawTab)
	if !ok {
		errors.ErrInvalidTab.With(rawTab).Write(w)
		return
	}
	id, ok := escapedParam(r, "id")
	if !ok {
		errors.ErrMalformedURLParam.With("missing record id").Write(w)
		return
	}
	rawKind, _ := escapedParam(r, "modal")
	kind, ok := listing.ParseModalKind(tab, rawKind)
	if !ok {
		errors.ErrInvalidModal.With(rawKind).Write(w)
		return
	}
	req, err := s.newRequest(w, r)
	if err != nil {
		errors.ErrStateStorage.WithErr(err).Write(w)
		return
	}
	if tab != req.session.Store.State().ActiveTab {
		if err := req.session.Store.Dispatch(req.ctx, state.SetActiveTab{Tab: tab}); err != nil {
			log.Warnw("failed to persist active tab", "error", err)
		}
	}
	if err := req.ctrl.OpenModal(tab, id, kind); err != nil {
		if stderrors.Is(err, listing.ErrNotFound) {
			errors.ErrRecordNotFound.With(id).Write(w)
			return
		}
		errors.ErrInvalidModal.WithErr(err).Write(w)
		return
	}
	http.Redirect(w, r, dashboardURL(req.session, tab, 0), http.StatusSeeOther)
}

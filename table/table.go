// Package table derives what the dashboard tables show from the current page
// of a listing: visible columns, cells, row actions and the pager.
package table

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/collabhub/admin-console/internal"
	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/state"
)

// Column is a table header.
type Column struct {
	Key    string
	Header string
}

// Button is a row action. Post buttons submit a form to Href with Fields;
// the others are plain links.
type Button struct {
	Label    string
	Href     string
	Post     bool
	Disabled bool
	Danger   bool
	Fields   map[string]string
}

// Cell is one table cell. Image, when set, is shown instead of Text.
type Cell struct {
	Text    string
	Image   string
	Buttons []Button
}

// Row is one record of the table.
type Row struct {
	ID    string
	Cells []Cell
}

// Pager holds the pagination controls.
type Pager struct {
	Page         int
	TotalPages   int
	TotalCount   int
	PrevDisabled bool
	NextDisabled bool
	PrevPage     int
	NextPage     int
}

// Table is a rendered listing page.
type Table struct {
	Tab     state.Tab
	Columns []Column
	Rows    []Row
	Pager   Pager
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// NewPager builds the pager of p. Prev is disabled on the first page and
// Next on the last one; targets never leave [1, TotalPages].
func NewPager(p listing.Pagination) Pager {
	pg := Pager{
		Page:         max(p.Page, 1),
		TotalPages:   max(p.TotalPages, 1),
		TotalCount:   p.TotalCount,
		PrevDisabled: !p.HasPrev(),
		NextDisabled: !p.HasNext(),
	}
	pg.PrevPage = max(pg.Page-1, 1)
	pg.NextPage = min(pg.Page+1, pg.TotalPages)
	return pg
}

// Row action paths.
func VerifyCreatorPath(id string) string {
	return "/dashboard/creators/" + url.PathEscape(id) + "/verify"
}

const VerifyBrandPath = "/dashboard/brands/verify"

func DeleteAccountPath(userType, id string) string {
	return "/dashboard/accounts/" + url.PathEscape(userType) + "/" + url.PathEscape(id) + "/delete"
}

func VideoStatusPath(creatorID, videoID string) string {
	return "/dashboard/creators/" + url.PathEscape(creatorID) + "/videos/" + url.PathEscape(videoID) + "/status"
}

func PaymentPath(collabID string) string {
	return "/dashboard/collaborations/" + url.PathEscape(collabID) + "/payment"
}

func ModalPath(tab state.Tab, id string, kind listing.ModalKind) string {
	return "/dashboard/" + string(tab) + "/" + url.PathEscape(id) + "/" + string(kind)
}

func serial(p listing.Pagination, i int) string {
	return strconv.Itoa((max(p.Page, 1)-1)*listing.PageSize + i + 1)
}

func text(s string) Cell {
	return Cell{Text: s}
}

func deleteButton(userType, id, requested string) Button {
	return Button{
		Label:    "Delete",
		Href:     DeleteAccountPath(userType, id),
		Post:     true,
		Danger:   true,
		Disabled: !internal.IsYes(requested),
	}
}

var creatorColumns = []Column{
	{Key: "profileIcon", Header: "Profile"},
	{Key: "name", Header: "Name"},
	{Key: "email", Header: "Email"},
	{Key: "isProfileCompleted", Header: "Profile Completed"},
	{Key: "isEmailVerified", Header: "Email Verified"},
	{Key: "isAccountVerified", Header: "Account Verified"},
	{Key: "requestToDeleteAccount", Header: "Delete Requested"},
	{Key: "profile", Header: "Profile Data"},
	{Key: "videos", Header: "Videos"},
	{Key: "action", Header: ""},
}

// Creators builds the creators table.
func Creators(rows []state.Creator, p listing.Pagination) Table {
	t := Table{Tab: state.TabCreators, Columns: creatorColumns, Pager: NewPager(p)}
	for _, cr := range rows {
		verified := text("Verified")
		if !internal.IsYes(cr.IsAccountVerified) {
			verified = Cell{Buttons: []Button{{Label: "Verify", Href: VerifyCreatorPath(cr.ID), Post: true}}}
		}
		var profile, videos Cell
		if cr.Profile != nil {
			profile.Buttons = []Button{{Label: "View Profile", Href: ModalPath(state.TabCreators, cr.ID, listing.ModalProfile)}}
			videos.Buttons = []Button{{
				Label: fmt.Sprintf("Videos (%d)", len(cr.Profile.Videos)),
				Href:  ModalPath(state.TabCreators, cr.ID, listing.ModalVideos),
			}}
		}
		t.Rows = append(t.Rows, Row{ID: cr.ID, Cells: []Cell{
			{Image: cr.ProfileIcon},
			text(cr.Name),
			text(cr.Email),
			text(cr.IsProfileCompleted),
			text(cr.IsEmailVerified),
			verified,
			text(cr.RequestToDeleteAccount),
			profile,
			videos,
			{Buttons: []Button{deleteButton(listing.UserTypeCreator, cr.ID, cr.RequestToDeleteAccount)}},
		}})
	}
	return t
}

var brandColumns = []Column{
	{Key: "sn", Header: "S/N"},
	{Key: "profileIcon", Header: "Logo"},
	{Key: "companyName", Header: "Brand Name"},
	{Key: "name", Header: "Name"},
	{Key: "companyEmail", Header: "Email"},
	{Key: "companyWebsite", Header: "Company Website"},
	{Key: "isAccountVerified", Header: "Account Verified"},
	{Key: "requestToDeleteAccount", Header: "Delete Requested"},
	{Key: "action", Header: ""},
}

// Brands builds the brands table. The verify action is keyed by the
// company email.
func Brands(rows []state.Brand, p listing.Pagination) Table {
	t := Table{Tab: state.TabBrands, Columns: brandColumns, Pager: NewPager(p)}
	for i, b := range rows {
		verified := text("Verified")
		if !internal.IsYes(b.IsAccountVerified) {
			verified = Cell{Buttons: []Button{{
				Label:    "Verify",
				Href:     VerifyBrandPath,
				Post:     true,
				Disabled: b.CompanyEmail == "",
				Fields:   map[string]string{"email": b.CompanyEmail},
			}}}
		}
		t.Rows = append(t.Rows, Row{ID: b.ID, Cells: []Cell{
			text(serial(p, i)),
			{Image: b.ProfileIcon},
			text(b.CompanyName),
			text(b.Name),
			text(b.CompanyEmail),
			text(b.CompanyWebsite),
			verified,
			text(b.RequestToDeleteAccount),
			{Buttons: []Button{deleteButton(listing.UserTypeBrand, b.ID, b.RequestToDeleteAccount)}},
		}})
	}
	return t
}

// payable reports whether a payment status still allows marking it done.
func payable(status string) bool {
	return status != "" && status != "Done" && status != "Cancelled"
}

// Collaborations builds the collaborations table. The Payment Status column
// is shown only when a row of the current page carries a payment status.
// While a payment is in flight every Mark Done button is disabled.
func Collaborations(rows []state.Collaboration, p listing.Pagination, payingID string) Table {
	withPayment := false
	for _, c := range rows {
		if c.PaymentStatus != "" {
			withPayment = true
			break
		}
	}
	t := Table{Tab: state.TabCollaborations, Pager: NewPager(p)}
	t.Columns = []Column{
		{Key: "sn", Header: "S/N"},
		{Key: "campaignName", Header: "Campaign"},
		{Key: "brandName", Header: "Brand"},
		{Key: "brandEmail", Header: "Brand Email"},
		{Key: "creatorName", Header: "Creator"},
		{Key: "status", Header: "Status"},
		{Key: "createdAt", Header: "Created"},
		{Key: "campaign", Header: "Campaign Details"},
		{Key: "videos", Header: "Videos"},
	}
	if withPayment {
		t.Columns = append(t.Columns,
			Column{Key: "paymentStatus", Header: "Payment Status"},
			Column{Key: "payment", Header: "Payment"},
		)
	}
	for i, c := range rows {
		var campaign Cell
		if c.Campaign != nil {
			campaign.Buttons = []Button{{Label: "View Campaign", Href: ModalPath(state.TabCollaborations, c.ID, listing.ModalCampaign)}}
		}
		cells := []Cell{
			text(serial(p, i)),
			text(c.CampaignName),
			text(c.BrandName),
			text(c.BrandEmail),
			text(c.CreatorName),
			text(c.Status),
			text(c.CreatedAt),
			campaign,
			{Buttons: []Button{{
				Label: fmt.Sprintf("Videos (%d)", len(c.Videos)),
				Href:  ModalPath(state.TabCollaborations, c.ID, listing.ModalCollabVideos),
			}}},
		}
		if withPayment {
			var pay Cell
			if payable(c.PaymentStatus) {
				label := "Mark Done"
				if payingID == c.ID {
					label = "Processing..."
				}
				pay.Buttons = []Button{{
					Label:    label,
					Href:     PaymentPath(c.ID),
					Post:     true,
					Disabled: payingID != "",
					Fields:   map[string]string{"amount": c.Amount},
				}}
			}
			cells = append(cells, text(c.PaymentStatus), pay)
		}
		t.Rows = append(t.Rows, Row{ID: c.ID, Cells: cells})
	}
	return t
}

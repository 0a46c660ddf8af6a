package table

import (
	"testing"

	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/state"
	qt "github.com/frankban/quicktest"
)

func headers(t Table) []string {
	var out []string
	for _, c := range t.Columns {
		out = append(out, c.Header)
	}
	return out
}

func TestPager(t *testing.T) {
	c := qt.New(t)

	first := NewPager(listing.Pagination{Page: 1, TotalPages: 3})
	c.Assert(first.PrevDisabled, qt.IsTrue)
	c.Assert(first.NextDisabled, qt.IsFalse)
	c.Assert(first.PrevPage, qt.Equals, 1)
	c.Assert(first.NextPage, qt.Equals, 2)

	last := NewPager(listing.Pagination{Page: 3, TotalPages: 3})
	c.Assert(last.PrevDisabled, qt.IsFalse)
	c.Assert(last.NextDisabled, qt.IsTrue)
	c.Assert(last.NextPage, qt.Equals, 3)

	// before the first fetch nothing can be paged
	none := NewPager(listing.Pagination{})
	c.Assert(none.PrevDisabled, qt.IsTrue)
	c.Assert(none.NextDisabled, qt.IsTrue)
	c.Assert(none.Page, qt.Equals, 1)
}

func TestPaymentColumnFollowsPageContent(t *testing.T) {
	c := qt.New(t)
	p := listing.Pagination{Page: 1, TotalPages: 2}

	without := Collaborations([]state.Collaboration{{ID: "a"}, {ID: "b"}}, p, "")
	c.Assert(headers(without), qt.Not(qt.Contains), "Payment Status")
	c.Assert(without.Rows[0].Cells, qt.HasLen, len(without.Columns))

	with := Collaborations([]state.Collaboration{{ID: "a"}, {ID: "b", PaymentStatus: "Pending", Amount: "50"}}, p, "")
	c.Assert(headers(with), qt.Contains, "Payment Status")
	c.Assert(with.Rows[0].Cells, qt.HasLen, len(with.Columns))

	pay := with.Rows[1].Cells[len(with.Columns)-1].Buttons
	c.Assert(pay, qt.HasLen, 1)
	c.Assert(pay[0].Href, qt.Equals, "/dashboard/collaborations/b/payment")
	c.Assert(pay[0].Fields["amount"], qt.Equals, "50")
	c.Assert(pay[0].Disabled, qt.IsFalse)
	// rows without a payment status have no payment action
	c.Assert(with.Rows[0].Cells[len(with.Columns)-1].Buttons, qt.HasLen, 0)
}

func TestPaymentButtonsWhileInFlight(t *testing.T) {
	c := qt.New(t)
	rows := []state.Collaboration{
		{ID: "a", PaymentStatus: "Pending"},
		{ID: "b", PaymentStatus: "Under Process"},
		{ID: "c", PaymentStatus: "Done"},
	}
	tbl := Collaborations(rows, listing.Pagination{Page: 1, TotalPages: 1}, "a")
	last := len(tbl.Columns) - 1

	a := tbl.Rows[0].Cells[last].Buttons[0]
	c.Assert(a.Label, qt.Equals, "Processing...")
	c.Assert(a.Disabled, qt.IsTrue)
	b := tbl.Rows[1].Cells[last].Buttons[0]
	c.Assert(b.Label, qt.Equals, "Mark Done")
	c.Assert(b.Disabled, qt.IsTrue)
	c.Assert(tbl.Rows[2].Cells[last].Buttons, qt.HasLen, 0)
}

func TestCreatorRows(t *testing.T) {
	c := qt.New(t)
	rows := []state.Creator{
		{ID: "c1", Name: "Alice", IsAccountVerified: "No", RequestToDeleteAccount: "No",
			Profile: &state.Profile{Videos: []state.Video{{ID: "v1"}}}},
		{ID: "c2", Name: "Bob", IsAccountVerified: "Yes", RequestToDeleteAccount: "Yes"},
	}
	tbl := Creators(rows, listing.Pagination{Page: 1, TotalPages: 1})
	c.Assert(tbl.Columns, qt.HasLen, 10)

	alice := tbl.Rows[0].Cells
	c.Assert(alice[5].Buttons[0].Href, qt.Equals, "/dashboard/creators/c1/verify")
	c.Assert(alice[7].Buttons[0].Href, qt.Equals, "/dashboard/creators/c1/profile")
	c.Assert(alice[8].Buttons[0].Label, qt.Equals, "Videos (1)")
	c.Assert(alice[9].Buttons[0].Disabled, qt.IsTrue)

	bob := tbl.Rows[1].Cells
	c.Assert(bob[5].Text, qt.Equals, "Verified")
	c.Assert(bob[5].Buttons, qt.HasLen, 0)
	c.Assert(bob[7].Buttons, qt.HasLen, 0)
	c.Assert(bob[9].Buttons[0].Disabled, qt.IsFalse)
	c.Assert(bob[9].Buttons[0].Href, qt.Equals, "/dashboard/accounts/creator/c2/delete")
}

func TestBrandRows(t *testing.T) {
	c := qt.New(t)
	rows := []state.Brand{{ID: "b1", CompanyEmail: "acme@example.com", IsAccountVerified: "No"}}
	tbl := Brands(rows, listing.Pagination{Page: 2, TotalPages: 2})

	cells := tbl.Rows[0].Cells
	c.Assert(cells[0].Text, qt.Equals, "11")
	verify := cells[6].Buttons[0]
	c.Assert(verify.Href, qt.Equals, VerifyBrandPath)
	c.Assert(verify.Fields["email"], qt.Equals, "acme@example.com")
	c.Assert(tbl.Empty(), qt.IsFalse)
}

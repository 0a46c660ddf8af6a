package state

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestReduceReplacesCollections(t *testing.T) {
	c := qt.New(t)
	s := Initial()
	first := []Creator{{ID: "a"}, {ID: "b"}}

	s = Reduce(s, SetCreators{Creators: first})
	s = Reduce(s, SetCreators{Creators: first})
	c.Assert(s.Creators, qt.HasLen, 2)

	// the reducer keeps its own copy
	first[0].ID = "changed"
	c.Assert(s.Creators[0].ID, qt.Equals, "a")
}

func TestReduceIsPure(t *testing.T) {
	c := qt.New(t)
	before := Reduce(Initial(), SetBrands{Brands: []Brand{{ID: "b1"}}})
	after := Reduce(before, SetBrands{Brands: nil})
	c.Assert(before.Brands, qt.HasLen, 1)
	c.Assert(after.Brands, qt.HasLen, 0)
}

func TestReduceLoginLogout(t *testing.T) {
	c := qt.New(t)
	s := Reduce(Initial(), Login{User: User{FullName: "Root", Email: "root@example.com"}})
	s = Reduce(s, SetActiveTab{Tab: TabBrands})
	s = Reduce(s, SetCollaborations{Collaborations: []Collaboration{{ID: "c1"}}})
	c.Assert(s.Session.Authenticated, qt.IsTrue)

	s = Reduce(s, Logout{})
	c.Assert(s.Session, qt.Equals, Session{})
	c.Assert(s.Collaborations, qt.HasLen, 0)
	c.Assert(s.ActiveTab, qt.Equals, TabBrands)
}

func TestReduceIgnoresUnknownTab(t *testing.T) {
	c := qt.New(t)
	s := Reduce(Initial(), SetActiveTab{Tab: "payments"})
	c.Assert(s.ActiveTab, qt.Equals, TabCreators)
}

func TestStorePersists(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	p := NewMemoryPersister()

	st := NewStore("k1", p)
	c.Assert(st.Dispatch(ctx, Login{User: User{FullName: "Root"}}), qt.IsNil)
	c.Assert(st.Dispatch(ctx, SetActiveTab{Tab: TabCollaborations}), qt.IsNil)

	reloaded := NewStore("k1", p)
	c.Assert(reloaded.Load(ctx), qt.IsNil)
	c.Assert(reloaded.State().Session.User.FullName, qt.Equals, "Root")
	c.Assert(reloaded.State().ActiveTab, qt.Equals, TabCollaborations)

	c.Assert(reloaded.Dispatch(ctx, Logout{}), qt.IsNil)
	_, err := p.Load(ctx, "k1")
	c.Assert(err, qt.Equals, ErrNotFound)
}

func TestStoreSkipsOvertakenPersist(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	p := NewMemoryPersister()
	st := NewStore("k1", p)

	older := st.Commit(SetActiveTab{Tab: TabBrands})
	newer := st.Commit(SetActiveTab{Tab: TabCollaborations})
	c.Assert(newer(ctx), qt.IsNil)
	c.Assert(older(ctx), qt.IsNil)

	saved, err := p.Load(ctx, "k1")
	c.Assert(err, qt.IsNil)
	c.Assert(saved.ActiveTab, qt.Equals, TabCollaborations)
	c.Assert(st.State().ActiveTab, qt.Equals, TabCollaborations)
}

func TestStoreLoadMissing(t *testing.T) {
	c := qt.New(t)
	st := NewStore("nobody", nil)
	c.Assert(st.Load(context.Background()), qt.IsNil)
	c.Assert(st.State().ActiveTab, qt.Equals, TabCreators)
}

func TestParseTab(t *testing.T) {
	c := qt.New(t)
	tab, ok := ParseTab("brands")
	c.Assert(ok, qt.IsTrue)
	c.Assert(tab, qt.Equals, TabBrands)
	_, ok = ParseTab("")
	c.Assert(ok, qt.IsFalse)
	c.Assert(TabCollaborations.Title(), qt.Equals, "Collaborations List")
}

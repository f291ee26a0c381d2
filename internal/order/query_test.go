package order

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mishaRomanov/online-store/internal/transport"
)

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	q := &Query{DB: db, PageSize: 5}
	user := seedUser(t, db, "buyer", "user")
	seedProduct(t, db, "lamp", 10, 100)

	for i := 0; i < 12; i++ {
		placeOrder(t, db, user.ID, "1")
	}

	caller := Caller{UserID: user.ID, Role: "user"}

	page1, err := q.List(context.Background(), caller, 1)
	require.NoError(t, err)
	require.Equal(t, 3, page1.TotalPages)
	require.Len(t, page1.Data.([]transport.OrderView), 5)

	page2, err := q.List(context.Background(), caller, 2)
	require.NoError(t, err)
	require.Len(t, page2.Data.([]transport.OrderView), 5)

	page3, err := q.List(context.Background(), caller, 3)
	require.NoError(t, err)
	require.Len(t, page3.Data.([]transport.OrderView), 2)

	// pages below 1 clamp to 1
	for _, bad := range []int{0, -3} {
		page, err := q.List(context.Background(), caller, bad)
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Len(t, page.Data.([]transport.OrderView), 5)
	}
}

func TestListRoleScoped(t *testing.T) {
	db := newTestDB(t)
	q := &Query{DB: db, PageSize: 5}
	alice := seedUser(t, db, "alice", "user")
	bob := seedUser(t, db, "bob", "user")
	admin := seedUser(t, db, "root", "admin")
	seedProduct(t, db, "lamp", 10, 100)

	for i := 0; i < 3; i++ {
		placeOrder(t, db, alice.ID, "1")
	}
	placeOrder(t, db, bob.ID, "1")

	page, err := q.List(context.Background(), Caller{UserID: alice.ID, Role: "user"}, 1)
	require.NoError(t, err)
	views := page.Data.([]transport.OrderView)
	require.Len(t, views, 3)
	for _, v := range views {
		require.Equal(t, "alice", v.Username)
	}

	all, err := q.List(context.Background(), Caller{UserID: admin.ID, Role: "admin"}, 1)
	require.NoError(t, err)
	require.Len(t, all.Data.([]transport.OrderView), 4)
}

func TestGetByCode(t *testing.T) {
	db := newTestDB(t)
	q := &Query{DB: db, PageSize: 5}
	alice := seedUser(t, db, "alice", "user")
	bob := seedUser(t, db, "bob", "user")
	seedProduct(t, db, "lamp", 10, 100)

	ord := placeOrder(t, db, alice.ID, "1-1")

	view, err := q.GetByCode(context.Background(), Caller{UserID: alice.ID, Role: "user"}, strings.ToLower(ord.Code))
	require.NoError(t, err)
	require.Equal(t, ord.Code, view.Code)
	// 2 x 10.00 + 5.00 shipping
	require.True(t, view.Total.Equal(decimal.NewFromInt(25)), "total %s", view.Total)

	// another user cannot see it, an admin can
	_, err = q.GetByCode(context.Background(), Caller{UserID: bob.ID, Role: "user"}, ord.Code)
	require.ErrorIs(t, err, ErrOrderNotFound)

	_, err = q.GetByCode(context.Background(), Caller{UserID: bob.ID, Role: "admin"}, ord.Code)
	require.NoError(t, err)
}

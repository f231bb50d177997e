package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canteen-web/internal/auth"
)

func item(id string, price int64) CartItem {
	return CartItem{ID: id, Name: "dish " + id, Price: decimal.NewFromInt(price)}
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), "sid")

	require.NoError(t, s.AddToCart(ctx, item("item-1", 500)))
	require.NoError(t, s.AddToCart(ctx, item("item-2", 300)))
	require.NoError(t, s.AddToCart(ctx, item("item-1", 500)))

	cart, err := s.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 2)
	assert.Equal(t, "item-1", cart[0].ID)
	assert.Equal(t, 2, cart[0].Qty)
	assert.Equal(t, 1, cart[1].Qty)
	assert.Equal(t, 3, cart.Count())
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(1300)))
}

func TestAddToCartIgnoresIncomingQty(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), "sid")

	in := item("item-1", 500)
	in.Qty = 7
	require.NoError(t, s.AddToCart(ctx, in))

	cart, _ := s.Cart(ctx)
	assert.Equal(t, 1, cart[0].Qty)
}

func TestUpdateCartQty(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), "sid")
	require.NoError(t, s.AddToCart(ctx, item("item-1", 500)))
	require.NoError(t, s.AddToCart(ctx, item("item-2", 300)))

	require.NoError(t, s.UpdateCartQty(ctx, "item-1", 4))
	cart, _ := s.Cart(ctx)
	assert.Equal(t, 4, cart[0].Qty)
	assert.True(t, cart[0].Subtotal().Equal(decimal.NewFromInt(2000)))

	require.NoError(t, s.UpdateCartQty(ctx, "item-1", 0))
	cart, _ = s.Cart(ctx)
	require.Len(t, cart, 1)
	assert.Equal(t, "item-2", cart[0].ID)

	require.NoError(t, s.UpdateCartQty(ctx, "item-2", -1))
	cart, _ = s.Cart(ctx)
	assert.Empty(t, cart)

	// unknown ids are a no-op
	require.NoError(t, s.UpdateCartQty(ctx, "item-9", 3))
	cart, _ = s.Cart(ctx)
	assert.Empty(t, cart)
}

func TestRemoveAndClearCart(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), "sid")
	require.NoError(t, s.AddToCart(ctx, item("item-1", 500)))
	require.NoError(t, s.AddToCart(ctx, item("item-2", 300)))

	require.NoError(t, s.RemoveFromCart(ctx, "item-1"))
	cart, _ := s.Cart(ctx)
	require.Len(t, cart, 1)
	assert.Equal(t, "item-2", cart[0].ID)

	require.NoError(t, s.ClearCart(ctx))
	cart, _ = s.Cart(ctx)
	assert.Empty(t, cart)
}

func TestCartPersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	s := New(b, "sid")

	steps := []struct {
		name   string
		mutate func() error
		want   string
	}{
		{"add", func() error { return s.AddToCart(ctx, item("item-1", 500)) }, `[{"id":"item-1","name":"dish item-1","price":"500","qty":1}]`},
		{"add again", func() error { return s.AddToCart(ctx, item("item-1", 500)) }, `[{"id":"item-1","name":"dish item-1","price":"500","qty":2}]`},
		{"update", func() error { return s.UpdateCartQty(ctx, "item-1", 5) }, `[{"id":"item-1","name":"dish item-1","price":"500","qty":5}]`},
		{"remove", func() error { return s.RemoveFromCart(ctx, "item-1") }, `[]`},
		{"clear", func() error { return s.ClearCart(ctx) }, `[]`},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			require.NoError(t, step.mutate())
			raw, ok, err := b.Get(ctx, "sid", KeyCart)
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, step.want, raw)
		})
	}
}

func TestCartSurvivesNewStore(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	require.NoError(t, New(b, "sid").AddToCart(ctx, item("item-3", 900)))

	cart, err := New(b, "sid").Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "item-3", cart[0].ID)
}

func TestCorruptCartReadsEmpty(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	require.NoError(t, b.Set(ctx, "sid", KeyCart, "{not json"))

	cart, err := New(b, "sid").Cart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestStoredLinesWithoutQtyAreDropped(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	require.NoError(t, b.Set(ctx, "sid", KeyCart, `[{"id":"a","price":1,"qty":0},{"id":"b","price":2,"qty":1}]`))

	cart, err := New(b, "sid").Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "b", cart[0].ID)
}

func TestCartReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), "sid")
	require.NoError(t, s.AddToCart(ctx, item("item-1", 500)))

	cart, _ := s.Cart(ctx)
	cart[0].Qty = 99

	again, _ := s.Cart(ctx)
	assert.Equal(t, 1, again[0].Qty)
}

func TestTokenAndUser(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), "sid")

	sess, err := s.Session(ctx)
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())
	assert.Equal(t, auth.RoleStudent, sess.Role())

	require.NoError(t, s.SetToken(ctx, "t"))
	require.NoError(t, s.SetUser(ctx, &auth.User{ID: "u1", Login: "cook", Role: auth.RoleCook, DisplayName: "Cook"}))
	require.NoError(t, s.AddToCart(ctx, item("item-1", 500)))

	sess, err = s.Session(ctx)
	require.NoError(t, err)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, auth.RoleCook, sess.Role())
	assert.Equal(t, "Cook", sess.User.DisplayName)

	require.NoError(t, s.ClearSession(ctx))
	token, _ := s.Token(ctx)
	user, _ := s.User(ctx)
	assert.Empty(t, token)
	assert.Nil(t, user)

	// the cart outlives a logout
	cart, _ := s.Cart(ctx)
	assert.Len(t, cart, 1)
}

func TestCorruptUserReadsNil(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	require.NoError(t, b.Set(ctx, "sid", KeyUser, "nope"))

	user, err := New(b, "sid").User(ctx)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestFlashIsShownOnce(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), "sid")

	f, err := s.PopFlash(ctx)
	require.NoError(t, err)
	assert.Nil(t, f)

	require.NoError(t, s.SetFlash(ctx, FlashSuccess, "saved"))
	f, err = s.PopFlash(ctx)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, Flash{Kind: FlashSuccess, Text: "saved"}, *f)

	f, _ = s.PopFlash(ctx)
	assert.Nil(t, f)

	require.NoError(t, s.SetFlash(ctx, FlashSuccess, "Ready", "Pickup code: 123456", "Cell: A3"))
	f, err = s.PopFlash(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pickup code: 123456", "Cell: A3"}, f.Lines)
}

func TestLastOrderID(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory(), "sid")

	require.NoError(t, s.SetLastOrderID(ctx, "ord-1"))
	id, _ := s.LastOrderID(ctx)
	assert.Equal(t, "ord-1", id)

	require.NoError(t, s.ClearLastOrderID(ctx))
	id, _ = s.LastOrderID(ctx)
	assert.Empty(t, id)
}

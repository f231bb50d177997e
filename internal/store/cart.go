package store

import (
	"context"
	"encoding/json"
	"log"

	"github.com/shopspring/decimal"
)

// CartItem is one line of the cart
type CartItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

// Subtotal returns price * qty
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Cart is an ordered list of lines, each with qty >= 1
type Cart []CartItem

// Total returns the sum of all subtotals
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count returns the number of portions in the cart
func (c Cart) Count() int {
	n := 0
	for _, item := range c {
		n += item.Qty
	}
	return n
}

// Find returns the line with the given id
func (c Cart) Find(id string) (CartItem, bool) {
	for _, item := range c {
		if item.ID == id {
			return item, true
		}
	}
	return CartItem{}, false
}

func (c Cart) index(id string) int {
	for i, item := range c {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Cart returns a copy of the cart. The stored value is read once per Store.
func (s *Store) Cart(ctx context.Context) (Cart, error) {
	if err := s.loadCart(ctx); err != nil {
		return nil, err
	}
	out := make(Cart, len(s.cart))
	copy(out, s.cart)
	return out, nil
}

func (s *Store) loadCart(ctx context.Context) error {
	if s.cartLoaded {
		return nil
	}
	raw, err := s.get(ctx, KeyCart)
	if err != nil {
		return err
	}

	var stored Cart
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Printf("[store] Discarding unreadable cart in session %s: %v", s.sid, err)
			stored = nil
		}
	}
	s.cart = s.cart[:0]
	for _, item := range stored {
		if item.Qty >= 1 {
			s.cart = append(s.cart, item)
		}
	}
	s.cartLoaded = true
	return nil
}

func (s *Store) saveCart(ctx context.Context) error {
	if s.cart == nil {
		s.cart = Cart{}
	}
	raw, err := json.Marshal(s.cart)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.sid, KeyCart, string(raw))
}

// AddToCart adds one portion of item. An existing line with the same id gets qty+1.
func (s *Store) AddToCart(ctx context.Context, item CartItem) error {
	if err := s.loadCart(ctx); err != nil {
		return err
	}
	if i := s.cart.index(item.ID); i >= 0 {
		s.cart[i].Qty++
	} else {
		item.Qty = 1
		s.cart = append(s.cart, item)
	}
	return s.saveCart(ctx)
}

// UpdateCartQty sets the qty of a line; qty <= 0 removes it. Unknown ids are ignored.
func (s *Store) UpdateCartQty(ctx context.Context, id string, qty int) error {
	if err := s.loadCart(ctx); err != nil {
		return err
	}
	i := s.cart.index(id)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
	} else {
		s.cart[i].Qty = qty
	}
	return s.saveCart(ctx)
}

// RemoveFromCart drops the line with the given id
func (s *Store) RemoveFromCart(ctx context.Context, id string) error {
	if err := s.loadCart(ctx); err != nil {
		return err
	}
	kept := s.cart[:0]
	for _, item := range s.cart {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.cart = kept
	return s.saveCart(ctx)
}

// ClearCart empties the cart
func (s *Store) ClearCart(ctx context.Context) error {
	s.cart = Cart{}
	s.cartLoaded = true
	return s.saveCart(ctx)
}

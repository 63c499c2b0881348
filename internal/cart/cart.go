// Package cart holds the client-side ordering state: which foods the
// guest picked and in what quantity, capped by each item's stock
// ceiling, with the full entry set persisted after every mutation.
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Item is the catalog snapshot handed to Add. Stock is the ceiling:
// the maximum orderable quantity at add-time.
type Item struct {
	FoodID      int64
	Name        string
	Price       int64
	Stock       int64
	ImageURL    string
	Description string
}

// Entry is one cart line. Entries with the same FoodID merge, never
// duplicate, and Quantity never exceeds Stock.
type Entry struct {
	FoodID      int64     `json:"food_id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
}

// ErrEmptyCart is returned by Checkout when there is nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

// InsufficientStockError rejects a mutation that would push an entry
// past its stock ceiling. The cart state is unchanged when it fires.
type InsufficientStockError struct {
	Name      string
	Remaining int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d portions of %q left", e.Remaining, e.Name)
}

const defaultCheckoutDelay = time.Second

// Cart is the ordering state machine. It models a single actor (one
// guest session) and is not safe for concurrent use.
type Cart struct {
	store         Store
	entries       []Entry
	checkoutDelay time.Duration
}

type Option func(*Cart)

// WithCheckoutDelay overrides the simulated checkout delay.
func WithCheckoutDelay(d time.Duration) Option {
	return func(c *Cart) { c.checkoutDelay = d }
}

// New restores the cart from the store's last snapshot.
func New(store Store, opts ...Option) (*Cart, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	c := &Cart{store: store, entries: entries, checkoutDelay: defaultCheckoutDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Cart) find(foodID int64) *Entry {
	for i := range c.entries {
		if c.entries[i].FoodID == foodID {
			return &c.entries[i]
		}
	}
	return nil
}

func (c *Cart) save() error {
	return c.store.Save(c.entries)
}

// Add puts qty portions of item into the cart, merging with an
// existing entry for the same food. Quantities below one count as
// one. Exceeding the stock ceiling rejects the whole add and leaves
// the current quantity untouched.
func (c *Cart) Add(item Item, qty int64) error {
	if qty < 1 {
		qty = 1
	}
	if e := c.find(item.FoodID); e != nil {
		if e.Quantity+qty > e.Stock {
			return &InsufficientStockError{Name: e.Name, Remaining: e.Stock - e.Quantity}
		}
		e.Quantity += qty
		return c.save()
	}
	if qty > item.Stock {
		return &InsufficientStockError{Name: item.Name, Remaining: item.Stock}
	}
	c.entries = append(c.entries, Entry{
		FoodID:      item.FoodID,
		Name:        item.Name,
		Price:       item.Price,
		Stock:       item.Stock,
		ImageURL:    item.ImageURL,
		Description: item.Description,
		Quantity:    qty,
		AddedAt:     time.Now().UTC(),
	})
	return c.save()
}

// Remove drops the entry for foodID. Removing an absent entry is a
// no-op, not an error.
func (c *Cart) Remove(foodID int64) error {
	if c.find(foodID) == nil {
		return nil
	}
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.FoodID != foodID {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	return c.save()
}

// SetQuantity applies delta to the current quantity. A result of zero
// or less removes the entry; a result above the stock ceiling leaves
// the quantity unchanged and reports InsufficientStockError.
func (c *Cart) SetQuantity(foodID, delta int64) error {
	e := c.find(foodID)
	if e == nil {
		return nil
	}
	next := e.Quantity + delta
	if next <= 0 {
		return c.Remove(foodID)
	}
	if next > e.Stock {
		return &InsufficientStockError{Name: e.Name, Remaining: e.Stock - e.Quantity}
	}
	e.Quantity = next
	return c.save()
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.entries = nil
	return c.save()
}

// Total is the sum of price times quantity over all entries.
func (c *Cart) Total() int64 {
	var sum int64
	for _, e := range c.entries {
		sum += e.Price * e.Quantity
	}
	return sum
}

// ItemCount is the sum of quantities over all entries.
func (c *Cart) ItemCount() int64 {
	var n int64
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

// Entries returns a copy of the current entry set.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Checkout simulates placing the order: it fails on an empty cart,
// otherwise waits the configured delay and clears unconditionally.
// The real order service is an external boundary.
func (c *Cart) Checkout(ctx context.Context) error {
	if len(c.entries) == 0 {
		return ErrEmptyCart
	}
	if c.checkoutDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.checkoutDelay):
		}
	}
	return c.Clear()
}

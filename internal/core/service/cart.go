package service

import (
	"errors"
	"fmt"

	"github.com/ian-deans/bamazon-example/internal/core/domain"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

// Cart accumulates line items for one session. Additions are validated
// against the snapshot, with quantities already in the cart counted as
// reserved so the same item cannot be over-booked across lines.
type Cart struct {
	snapshot *Snapshot
	lines    []domain.LineItem
	total    decimal.Decimal
	reserved map[int64]int
}

func NewCart(snapshot *Snapshot) *Cart {
	return &Cart{
		snapshot: snapshot,
		total:    decimal.Zero,
		reserved: make(map[int64]int),
	}
}

// AddLine validates and appends one line item. A failed addition leaves
// the cart unchanged.
func (c *Cart) AddLine(itemID int64, quantity int) (domain.LineItem, error) {
	item, err := c.snapshot.Lookup(itemID)
	if err != nil {
		return domain.LineItem{}, err
	}

	if quantity <= 0 {
		return domain.LineItem{}, fmt.Errorf("%w: %d is not a positive quantity", ErrInvalidQuantity, quantity)
	}

	available := item.Stock - c.reserved[itemID]
	if quantity > available {
		return domain.LineItem{}, fmt.Errorf("%w: requested %d of %q, %d available", ErrInvalidQuantity, quantity, item.Name, available)
	}

	line := domain.LineItem{
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  quantity,
		UnitPrice: item.UnitPrice,
		LineCost:  item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}

	c.lines = append(c.lines, line)
	c.total = c.total.Add(line.LineCost)
	c.reserved[itemID] += quantity

	return line, nil
}

// Available reports how much of an item can still be added: snapshot
// stock minus what the cart already holds.
func (c *Cart) Available(itemID int64) (int, error) {
	item, err := c.snapshot.Lookup(itemID)
	if err != nil {
		return 0, err
	}
	return item.Stock - c.reserved[itemID], nil
}

// Lines returns the accepted line items in insertion order.
func (c *Cart) Lines() []domain.LineItem {
	out := make([]domain.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Total() decimal.Decimal {
	return c.total
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

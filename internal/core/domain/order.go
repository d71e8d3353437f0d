package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the audit record persisted after a fully successful commit.
type Order struct {
	ID        string
	Lines     []LineItem
	Total     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
}

// CommitRequest is one conditional stock decrement derived from the cart
// at confirmation time. Quantities for the same item are aggregated into
// a single request.
type CommitRequest struct {
	ItemID   int64
	Quantity int
}

// FailedDecrement records one decrement that did not apply.
type FailedDecrement struct {
	ItemID   int64
	Quantity int
	Reason   string
}

// CommitResult is the aggregate outcome of a commit batch. Succeeded
// decrements stay applied even when others fail; Success is true only
// when every request in the batch applied.
type CommitResult struct {
	Success   bool
	OrderID   string
	Succeeded []CommitRequest
	Failed    []FailedDecrement
}

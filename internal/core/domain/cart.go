package domain

import "github.com/shopspring/decimal"

// LineItem is one accepted cart addition. LineCost is fixed at the
// moment the line is added: UnitPrice * Quantity.
type LineItem struct {
	ItemID    int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineCost  decimal.Decimal
}

package domain

import "github.com/shopspring/decimal"

// Item is one catalog entry as captured in the session snapshot.
// Stock reflects the value at snapshot time; only a commit mutates
// the stored value.
type Item struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
}

package port

import "context"

type CacheRepository interface {
	// SetStock seeds the cached stock value for an item
	SetStock(ctx context.Context, itemID int64, quantity int) error

	// DecrementStock atomically decreases cached stock, returns false if insufficient
	DecrementStock(ctx context.Context, itemID int64, quantity int) (bool, error)

	// IncrementStock restores cached stock (compensation when the store write fails)
	IncrementStock(ctx context.Context, itemID int64, quantity int) error
}

package port

import (
	"context"

	"github.com/ian-deans/bamazon-example/internal/core/domain"
)

type DatabaseRepository interface {
	// FetchAllItems loads the full catalog in id order
	FetchAllItems(ctx context.Context) ([]domain.Item, error)

	// DecrementStock conditionally decrements stock for one item; the
	// guard against negative stock is enforced atomically by the store
	DecrementStock(ctx context.Context, itemID int64, quantity int) error

	// CreateOrder persists the audit record for a fully committed cart
	CreateOrder(ctx context.Context, order domain.Order) error
}

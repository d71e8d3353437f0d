package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ian-deans/bamazon-example/internal/core/domain"
	"github.com/ian-deans/bamazon-example/internal/port"
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrItemNotFound     = errors.New("item not found")
)

// Snapshot is the catalog as fetched once at session start. Browsing
// validates against these values; the store itself is only touched
// again at commit.
type Snapshot struct {
	items []domain.Item
	byID  map[int64]domain.Item
}

func LoadSnapshot(ctx context.Context, db port.DatabaseRepository) (*Snapshot, error) {
	items, err := db.FetchAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch catalog: %v", ErrStoreUnavailable, err)
	}

	byID := make(map[int64]domain.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &Snapshot{items: items, byID: byID}, nil
}

func (s *Snapshot) Lookup(itemID int64) (domain.Item, error) {
	item, ok := s.byID[itemID]
	if !ok {
		return domain.Item{}, fmt.Errorf("%w: id %d", ErrItemNotFound, itemID)
	}
	return item, nil
}

// Items returns the catalog in store order.
func (s *Snapshot) Items() []domain.Item {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

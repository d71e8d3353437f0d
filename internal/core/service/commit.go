package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ian-deans/bamazon-example/internal/core/domain"
	"github.com/ian-deans/bamazon-example/internal/port"
	"github.com/shopspring/decimal"
)

var ErrPartialCommit = errors.New("partial commit")

// CommitEngine persists the stock decrements for a finalized cart. Each
// distinct item gets one conditional decrement; the batch settles fully
// before the aggregate result is reported. Succeeded decrements are not
// rolled back when others fail.
type CommitEngine struct {
	db    port.DatabaseRepository
	cache port.CacheRepository // optional stock mirror, may be nil
}

func NewCommitEngine(db port.DatabaseRepository, cache port.CacheRepository) *CommitEngine {
	return &CommitEngine{db: db, cache: cache}
}

// Commit applies the decrement batch for the given lines. On any
// individual failure it returns ErrPartialCommit with the per-item
// breakdown in the result; the error never hides which decrements
// stayed applied.
func (e *CommitEngine) Commit(ctx context.Context, lines []domain.LineItem, total decimal.Decimal) (domain.CommitResult, error) {
	requests := aggregateLines(lines)
	if len(requests) == 0 {
		return domain.CommitResult{Success: true}, nil
	}

	outcomes := make([]error, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req domain.CommitRequest) {
			defer wg.Done()
			outcomes[i] = e.decrementOne(ctx, req)
		}(i, req)
	}
	wg.Wait()

	var result domain.CommitResult
	for i, err := range outcomes {
		req := requests[i]
		if err != nil {
			log.Printf("commit: decrement failed for item %d (qty %d): %v", req.ItemID, req.Quantity, err)
			result.Failed = append(result.Failed, domain.FailedDecrement{
				ItemID:   req.ItemID,
				Quantity: req.Quantity,
				Reason:   err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, req)
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("%w: %d of %d items failed", ErrPartialCommit, len(result.Failed), len(requests))
	}

	result.Success = true

	order := domain.Order{
		ID:        uuid.NewString(),
		Lines:     lines,
		Total:     total,
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: time.Now(),
	}
	if err := e.db.CreateOrder(ctx, order); err != nil {
		// Decrements are applied; the missing audit record is reported,
		// not undone.
		return result, fmt.Errorf("record order %s: %w", order.ID, err)
	}
	result.OrderID = order.ID

	return result, nil
}

// decrementOne applies one conditional decrement, keeping the cache
// mirror in step. The database is the source of truth: a mirror error
// is logged, and a mirror decrement is restored if the store write
// fails afterwards.
func (e *CommitEngine) decrementOne(ctx context.Context, req domain.CommitRequest) error {
	mirrored := false
	if e.cache != nil {
		ok, err := e.cache.DecrementStock(ctx, req.ItemID, req.Quantity)
		switch {
		case err != nil:
			log.Printf("commit: stock cache decrement failed for item %d: %v", req.ItemID, err)
		case !ok:
			log.Printf("commit: stock cache out of sync for item %d", req.ItemID)
		default:
			mirrored = true
		}
	}

	if err := e.db.DecrementStock(ctx, req.ItemID, req.Quantity); err != nil {
		if mirrored {
			if rbErr := e.cache.IncrementStock(ctx, req.ItemID, req.Quantity); rbErr != nil {
				log.Printf("commit: CRITICAL failed to restore stock cache for item %d: %v", req.ItemID, rbErr)
			}
		}
		return err
	}

	return nil
}

// aggregateLines folds cart lines into one request per distinct item,
// preserving first-seen order.
func aggregateLines(lines []domain.LineItem) []domain.CommitRequest {
	index := make(map[int64]int, len(lines))
	requests := make([]domain.CommitRequest, 0, len(lines))

	for _, line := range lines {
		if i, ok := index[line.ItemID]; ok {
			requests[i].Quantity += line.Quantity
			continue
		}
		index[line.ItemID] = len(requests)
		requests = append(requests, domain.CommitRequest{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	return requests
}

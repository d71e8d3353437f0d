package service

import (
	"context"
	"errors"
	"log"

	"github.com/ian-deans/bamazon-example/internal/port"
)

type Outcome string

const (
	OutcomeDone      Outcome = "done"
	OutcomeCancelled Outcome = "cancelled"
)

// Workflow drives one ordering session through its phases: load the
// snapshot, accumulate line items, review, then commit or cancel.
type Workflow struct {
	db      port.DatabaseRepository
	cache   port.CacheRepository // optional, may be nil
	prompt  port.Prompter
	display port.Display
}

func NewWorkflow(db port.DatabaseRepository, cache port.CacheRepository, prompt port.Prompter, display port.Display) *Workflow {
	return &Workflow{db: db, cache: cache, prompt: prompt, display: display}
}

// Run executes the session to a terminal outcome. A non-nil error means
// the session ended without a clean Done/Cancelled: catalog load failed,
// input ran out, or the commit did not fully apply.
func (w *Workflow) Run(ctx context.Context) (Outcome, error) {
	w.display.ShowBanner()

	snapshot, err := LoadSnapshot(ctx, w.db)
	if err != nil {
		return "", err
	}

	cache := w.cache
	if cache != nil {
		if err := seedCache(ctx, cache, snapshot); err != nil {
			log.Printf("workflow: stock cache disabled: %v", err)
			cache = nil
		}
	}

	cart := NewCart(snapshot)

	for browsing := true; browsing; {
		itemID, err := w.prompt.PromptItemSelection(snapshot.Items())
		if err != nil {
			return "", err
		}

		available, err := cart.Available(itemID)
		if err != nil {
			// The prompter only offers snapshot items, so an unknown id
			// escaping it is fatal.
			return "", err
		}
		if available == 0 {
			log.Printf("workflow: item %d has no stock left to add", itemID)
			continue
		}

		quantity, err := w.prompt.PromptQuantity(available)
		if err != nil {
			return "", err
		}

		if _, err := cart.AddLine(itemID, quantity); err != nil {
			if errors.Is(err, ErrInvalidQuantity) {
				log.Printf("workflow: rejected addition: %v", err)
				continue
			}
			return "", err
		}

		w.display.ShowCart(cart.Lines(), cart.Total())

		browsing, err = w.prompt.PromptYesNo("Add more items?")
		if err != nil {
			return "", err
		}
	}

	w.display.ShowCart(cart.Lines(), cart.Total())

	confirmed, err := w.prompt.PromptYesNo("Proceed with purchase?")
	if err != nil {
		return "", err
	}
	if !confirmed {
		return OutcomeCancelled, nil
	}

	engine := NewCommitEngine(w.db, cache)
	result, err := engine.Commit(ctx, cart.Lines(), cart.Total())
	w.display.ShowResult(result)
	if err != nil {
		return "", err
	}

	return OutcomeDone, nil
}

func seedCache(ctx context.Context, cache port.CacheRepository, snapshot *Snapshot) error {
	for _, item := range snapshot.Items() {
		if err := cache.SetStock(ctx, item.ID, item.Stock); err != nil {
			return err
		}
	}
	return nil
}

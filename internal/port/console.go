package port

import (
	"github.com/ian-deans/bamazon-example/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Prompter gathers validated input from the customer. Implementations
// must only return values satisfying the stated bounds; an error means
// input is no longer available (not a validation failure).
type Prompter interface {
	// PromptItemSelection returns the id of one of the given items
	PromptItemSelection(items []domain.Item) (int64, error)

	// PromptQuantity returns a quantity in [1, stockAvailable]
	PromptQuantity(stockAvailable int) (int, error)

	// PromptYesNo asks a yes/no question
	PromptYesNo(message string) (bool, error)
}

// Display renders workflow data for the customer. Fire-and-forget: the
// workflow never depends on rendering outcomes.
type Display interface {
	ShowBanner()
	ShowCart(lines []domain.LineItem, total decimal.Decimal)
	ShowResult(result domain.CommitResult)
}

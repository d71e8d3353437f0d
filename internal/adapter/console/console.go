package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ian-deans/bamazon-example/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	colorReset = "\x1b[0m"
	colorCyan  = "\x1b[36m"
	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
)

// Console implements the prompt and display collaborators on a plain
// terminal. Prompts loop until the input satisfies the port contract,
// so callers only ever see validated values or an input error (EOF,
// read failure).
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) PromptItemSelection(items []domain.Item) (int64, error) {
	fmt.Fprintln(c.out, "Select an item from below:")
	for i, item := range items {
		fmt.Fprintf(c.out, "  %d) %s  $%s (%d in stock)\n",
			i+1, item.Name, item.UnitPrice.StringFixed(2), item.Stock)
	}

	for {
		fmt.Fprint(c.out, "> ")
		text, err := c.readLine()
		if err != nil {
			return 0, err
		}

		choice, err := strconv.Atoi(text)
		if err != nil || choice < 1 || choice > len(items) {
			fmt.Fprintf(c.out, "%senter a number between 1 and %d%s\n", colorRed, len(items), colorReset)
			continue
		}

		return items[choice-1].ID, nil
	}
}

func (c *Console) PromptQuantity(stockAvailable int) (int, error) {
	for {
		fmt.Fprintf(c.out, "How many would you like to buy? (%d available): ", stockAvailable)
		text, err := c.readLine()
		if err != nil {
			return 0, err
		}

		quantity, err := strconv.Atoi(text)
		if err != nil || quantity <= 0 || quantity > stockAvailable {
			fmt.Fprintf(c.out, "%senter a number between 1 and %d%s\n", colorRed, stockAvailable, colorReset)
			continue
		}

		return quantity, nil
	}
}

func (c *Console) PromptYesNo(message string) (bool, error) {
	for {
		fmt.Fprintf(c.out, "%s (y/n): ", message)
		text, err := c.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(text) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func (c *Console) ShowBanner() {
	fmt.Fprintf(c.out, "%s====================%s\n", colorCyan, colorReset)
	fmt.Fprintf(c.out, "%s    Bamazon App     %s\n", colorCyan, colorReset)
	fmt.Fprintf(c.out, "%s====================%s\n", colorCyan, colorReset)
}

func (c *Console) ShowCart(lines []domain.LineItem, total decimal.Decimal) {
	fmt.Fprintf(c.out, "%s        Order        %s\n", colorCyan, colorReset)

	w := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRICE\tQTY\tCOST")
	for _, line := range lines {
		fmt.Fprintf(w, "%s\t$%s\t%d\t$%s\n",
			line.Name, line.UnitPrice.StringFixed(2), line.Quantity, line.LineCost.StringFixed(2))
	}
	w.Flush()

	fmt.Fprintf(c.out, "Total Price: %s$%s%s\n", colorGreen, total.StringFixed(2), colorReset)
}

func (c *Console) ShowResult(result domain.CommitResult) {
	if result.Success {
		fmt.Fprintf(c.out, "%sOrder Completed%s\n", colorGreen, colorReset)
		if result.OrderID != "" {
			fmt.Fprintf(c.out, "Order reference: %s\n", result.OrderID)
		}
		return
	}

	fmt.Fprintf(c.out, "%sOrder Failed%s\n", colorRed, colorReset)
	for _, req := range result.Succeeded {
		fmt.Fprintf(c.out, "  item %d: %d deducted\n", req.ItemID, req.Quantity)
	}
	for _, failed := range result.Failed {
		fmt.Fprintf(c.out, "  %sitem %d: %s%s\n", colorRed, failed.ItemID, failed.Reason, colorReset)
	}
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

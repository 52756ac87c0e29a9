package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oyehq/oye-backend/pkg/enums"
	pkgerrors "github.com/oyehq/oye-backend/pkg/errors"
)

// Intent names the operation a chat line maps to.
type Intent string

const (
	IntentSale      Intent = "sales"
	IntentRestock   Intent = "add"
	IntentInventory Intent = "inventory"
	IntentNew       Intent = "new"
)

// Command is the parsed form of one chat line.
type Command struct {
	Intent        Intent
	Quantity      int
	Product       string
	Customer      *string
	PaymentMethod enums.PaymentMethod

	// Populated only for IntentNew.
	Category     enums.ItemCategory
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Description  string
}

// Parse tokenizes a single chat line and applies one of two grammar rules:
//
//	"@" COMMAND QUANTITY PRODUCT ["to" CUSTOMER] [":" PAYMENT_METHOD]
//	"@new" NAME CATEGORY QUANTITY COST_PRICE SELLING_PRICE DESCRIPTION
//
// Anything else fails with an invalid-command error carrying the raw text.
func Parse(message string) (*Command, error) {
	raw := message
	line := strings.TrimSpace(message)
	if !strings.HasPrefix(line, "@") {
		return nil, invalidCommand(raw)
	}

	tokens := strings.Fields(line)
	verb := strings.TrimPrefix(tokens[0], "@")
	if verb == "" || !isWord(verb) {
		return nil, invalidCommand(raw)
	}

	switch Intent(verb) {
	case IntentSale, IntentRestock, IntentInventory:
		return parseTransactionForm(Intent(verb), tokens[1:], raw)
	case IntentNew:
		return parseNewProductForm(tokens[1:], raw)
	default:
		return nil, invalidCommand(raw)
	}
}

// parseTransactionForm handles the shared sale/restock/inventory shape.
func parseTransactionForm(intent Intent, tokens []string, raw string) (*Command, error) {
	// The payment method rides behind a colon, which may be glued to the
	// customer or product token ("John: card"). Split it off first.
	tokens, payment, err := splitPaymentMethod(tokens, raw)
	if err != nil {
		return nil, err
	}

	if len(tokens) < 2 {
		return nil, invalidCommand(raw)
	}

	quantity, err := strconv.Atoi(tokens[0])
	if err != nil || quantity < 0 {
		return nil, invalidCommand(raw)
	}

	product := tokens[1]
	if !isWord(product) {
		return nil, invalidCommand(raw)
	}

	cmd := &Command{
		Intent:        intent,
		Quantity:      quantity,
		Product:       product,
		PaymentMethod: payment,
	}

	rest := tokens[2:]
	if len(rest) > 0 {
		if rest[0] != "to" || len(rest) < 2 {
			return nil, invalidCommand(raw)
		}
		customer := strings.Join(rest[1:], " ")
		cmd.Customer = &customer
	}

	return cmd, nil
}

// parseNewProductForm handles "@new NAME CATEGORY QTY COST SELL DESCRIPTION...".
func parseNewProductForm(tokens []string, raw string) (*Command, error) {
	if len(tokens) < 6 {
		return nil, invalidCommand(raw)
	}

	name := tokens[0]
	if !isWord(name) {
		return nil, invalidCommand(raw)
	}

	category, err := enums.ParseItemCategory(strings.ToLower(tokens[1]))
	if err != nil {
		// unknown categories land in the catch-all bucket rather than
		// bouncing the whole command
		category = enums.ItemCategoryOther
	}

	quantity, err := strconv.Atoi(tokens[2])
	if err != nil || quantity < 0 {
		return nil, invalidCommand(raw)
	}

	costPrice, err := parsePrice(tokens[3])
	if err != nil {
		return nil, invalidCommand(raw)
	}
	sellingPrice, err := parsePrice(tokens[4])
	if err != nil {
		return nil, invalidCommand(raw)
	}

	return &Command{
		Intent:       IntentNew,
		Quantity:     quantity,
		Product:      name,
		Category:     category,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
		Description:  strings.Join(tokens[5:], " "),
	}, nil
}

// splitPaymentMethod strips a trailing ": method" clause. The colon can be a
// standalone token or glued to the preceding word.
func splitPaymentMethod(tokens []string, raw string) ([]string, enums.PaymentMethod, error) {
	payment := enums.PaymentMethodCash

	colonAt := -1
	for i, token := range tokens {
		if token == ":" || strings.HasSuffix(token, ":") {
			colonAt = i
			break
		}
		if strings.Contains(token, ":") {
			// colon must terminate a token, "ca:rd" is not a clause
			return nil, payment, invalidCommand(raw)
		}
	}
	if colonAt == -1 {
		return tokens, payment, nil
	}

	head := make([]string, 0, colonAt+1)
	head = append(head, tokens[:colonAt]...)
	if trimmed := strings.TrimSuffix(tokens[colonAt], ":"); trimmed != "" {
		head = append(head, trimmed)
	}

	tail := tokens[colonAt+1:]
	if len(tail) != 1 {
		return nil, payment, invalidCommand(raw)
	}
	parsed, err := enums.ParsePaymentMethod(strings.ToLower(tail[0]))
	if err != nil {
		return nil, payment, invalidCommand(raw)
	}
	return head, parsed, nil
}

// parsePrice accepts only decimal literals with a fractional part ("1.50",
// never "2"), so a bare integer cannot be mistaken for a price token.
func parsePrice(token string) (decimal.Decimal, error) {
	dot := strings.IndexByte(token, '.')
	if dot <= 0 || dot == len(token)-1 {
		return decimal.Zero, fmt.Errorf("price must have a fractional part")
	}
	value, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, err
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price")
	}
	return value.Round(2), nil
}

func isWord(token string) bool {
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return len(token) > 0
}

func invalidCommand(raw string) error {
	return pkgerrors.New(pkgerrors.CodeInvalidCommand, fmt.Sprintf("invalid command: %s", raw)).
		WithDetails(map[string]any{"message": raw})
}

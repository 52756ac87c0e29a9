package chat

import (
	"strings"
	"testing"

	"github.com/oyehq/oye-backend/pkg/enums"
	pkgerrors "github.com/oyehq/oye-backend/pkg/errors"
)

func TestParseSaleWithCustomerAndPayment(t *testing.T) {
	cmd, err := Parse("@sales 5 Bread to John: card")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cmd.Intent != IntentSale {
		t.Fatalf("expected sale intent, got %q", cmd.Intent)
	}
	if cmd.Quantity != 5 || cmd.Product != "Bread" {
		t.Fatalf("unexpected quantity/product: %d %q", cmd.Quantity, cmd.Product)
	}
	if cmd.Customer == nil || *cmd.Customer != "John" {
		t.Fatalf("expected customer John, got %v", cmd.Customer)
	}
	if cmd.PaymentMethod != enums.PaymentMethodCard {
		t.Fatalf("expected card, got %q", cmd.PaymentMethod)
	}
}

func TestParsePaymentDefaultsToCash(t *testing.T) {
	cmd, err := Parse("@add 10 Bread")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cmd.Intent != IntentRestock || cmd.Quantity != 10 || cmd.Product != "Bread" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Customer != nil {
		t.Fatalf("expected no customer, got %q", *cmd.Customer)
	}
	if cmd.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("expected cash default, got %q", cmd.PaymentMethod)
	}
}

func TestParseMultiWordCustomer(t *testing.T) {
	cmd, err := Parse("@sales 2 Milk to Mary Jane: online")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cmd.Customer == nil || *cmd.Customer != "Mary Jane" {
		t.Fatalf("expected customer Mary Jane, got %v", cmd.Customer)
	}
	if cmd.PaymentMethod != enums.PaymentMethodOnline {
		t.Fatalf("expected online, got %q", cmd.PaymentMethod)
	}
}

func TestParseInventoryQuery(t *testing.T) {
	cmd, err := Parse("@inventory 0 Bread")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Intent != IntentInventory || cmd.Product != "Bread" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseNewProduct(t *testing.T) {
	cmd, err := Parse("@new Bread grocery 20 1.50 2.00 Fresh sourdough loaf")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cmd.Intent != IntentNew {
		t.Fatalf("expected new intent, got %q", cmd.Intent)
	}
	if cmd.Product != "Bread" || cmd.Category != enums.ItemCategoryGrocery {
		t.Fatalf("unexpected name/category: %q %q", cmd.Product, cmd.Category)
	}
	if cmd.Quantity != 20 {
		t.Fatalf("unexpected quantity %d", cmd.Quantity)
	}
	if !cmd.CostPrice.Equal(mustDecimal(t, "1.50")) || !cmd.SellingPrice.Equal(mustDecimal(t, "2.00")) {
		t.Fatalf("unexpected prices: %s %s", cmd.CostPrice, cmd.SellingPrice)
	}
	if cmd.Description != "Fresh sourdough loaf" {
		t.Fatalf("unexpected description %q", cmd.Description)
	}
}

func TestParseNewProductUnknownCategoryFallsBack(t *testing.T) {
	cmd, err := Parse("@new Widget gadgets 3 1.00 2.00 A widget")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Category != enums.ItemCategoryOther {
		t.Fatalf("expected fallback category, got %q", cmd.Category)
	}
}

func TestParseInvalidCommands(t *testing.T) {
	cases := []string{
		"",
		"hello there",
		"@",
		"@frobnicate 5 Bread",
		"@sales Bread 5",
		"@sales 5",
		"@sales 5 Bread John",
		"@sales 5 Bread to",
		"@sales 5 Bread to John: bitcoin",
		"@sales 5 Bread: card extra",
		"@new Bread grocery 20 1.50",
		"@new Bread grocery 20 abc 2.00 description",
		"@new Bread grocery 20 2 3 description",
		"@new Bread grocery 20 2. 3.00 description",
	}

	for _, raw := range cases {
		_, err := Parse(raw)
		if err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeInvalidCommand {
			t.Fatalf("expected invalid-command error for %q, got %v", raw, err)
		}
		if raw != "" && !strings.Contains(typed.Error(), raw) {
			t.Fatalf("error for %q should echo the raw text, got %q", raw, typed.Error())
		}
	}
}

func TestParsePaymentColonGluedToCustomer(t *testing.T) {
	cmd, err := Parse("@sales 1 Eggs to Ada: other")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Customer == nil || *cmd.Customer != "Ada" {
		t.Fatalf("expected customer Ada, got %v", cmd.Customer)
	}
	if cmd.PaymentMethod != enums.PaymentMethodOther {
		t.Fatalf("expected other, got %q", cmd.PaymentMethod)
	}
}

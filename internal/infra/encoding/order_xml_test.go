//go:build !integration

package encoding

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cardpay-client/internal/domain"
	"cardpay-client/internal/domain/model"
)

func minimalOrder() model.Order {
	return model.Order{
		WalletID: 20,
		Number:   10,
		Amount:   decimal.NewFromInt(120),
		Email:    "c@example.com",
	}
}

func TestEncodeMinimalOrder(t *testing.T) {
	doc, err := Encode(Payload{Order: minimalOrder()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<?xml version="1.0" encoding="utf-8"?>` + "\n" +
		`<order wallet_id="20" number="10" description="" amount="120" email="c@example.com"` +
		` is_two_phase="no" is_gateway="no" locale="en"></order>`
	if string(doc) != want {
		t.Fatalf("canonical document mismatch:\n got %s\nwant %s", doc, want)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	p := Payload{
		Order: model.Order{
			WalletID: 20,
			Number:   42,
			Amount:   decimal.RequireFromString("99.90"),
			Email:    "c@example.com",
			Currency: "USD",
			Note:     "gift",
		},
		Items: []model.LineItem{
			{Name: "Desk", Price: decimal.NewFromInt(50)},
			{Name: "Chair", Count: 2, Price: decimal.RequireFromString("24.95")},
		},
		Billing: &model.Address{Country: "USA", City: "New York"},
	}
	a, err := Encode(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Encode(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("same logical order encoded to different bytes:\n%s\n%s", a, b)
	}
}

func TestEncodeOptionalAttributes(t *testing.T) {
	t.Run("currency appears only when set", func(t *testing.T) {
		doc, _ := Encode(Payload{Order: minimalOrder()})
		if strings.Contains(string(doc), "currency=") {
			t.Errorf("currency attribute present on order without currency: %s", doc)
		}

		o := minimalOrder()
		o.Currency = "EUR"
		doc, _ = Encode(Payload{Order: o})
		if !strings.Contains(string(doc), `currency="EUR"`) {
			t.Errorf("currency attribute missing: %s", doc)
		}
	})

	t.Run("ip is emitted only in gateway mode", func(t *testing.T) {
		o := minimalOrder()
		o.IP = "10.20.30.40"
		doc, _ := Encode(Payload{Order: o})
		if strings.Contains(string(doc), "ip=") {
			t.Errorf("ip attribute leaked outside gateway mode: %s", doc)
		}

		o.GatewayMode = true
		doc, _ = Encode(Payload{Order: o})
		if !strings.Contains(string(doc), `ip="10.20.30.40"`) {
			t.Errorf("ip attribute missing in gateway mode: %s", doc)
		}
		if !strings.Contains(string(doc), `is_gateway="yes"`) {
			t.Errorf("is_gateway should be yes: %s", doc)
		}
	})

	t.Run("booleans serialize as yes/no tokens", func(t *testing.T) {
		o := minimalOrder()
		o.TwoPhase = true
		doc, _ := Encode(Payload{Order: o})
		if !strings.Contains(string(doc), `is_two_phase="yes"`) {
			t.Errorf("expected is_two_phase yes: %s", doc)
		}
		if strings.Contains(string(doc), "true") {
			t.Errorf("boolean leaked as true/false: %s", doc)
		}
	})

	t.Run("tokenization directives", func(t *testing.T) {
		doc, _ := Encode(Payload{Order: minimalOrder(), GenerateCardToken: true})
		if !strings.Contains(string(doc), `generate_card_token="true"`) {
			t.Errorf("generate_card_token missing: %s", doc)
		}
		doc, _ = Encode(Payload{Order: minimalOrder(), CardToken: "tok_1"})
		if !strings.Contains(string(doc), `card_token="tok_1"`) {
			t.Errorf("card_token missing: %s", doc)
		}
	})
}

func TestEncodeChildOrder(t *testing.T) {
	price := decimal.RequireFromString("9.99")
	p := Payload{
		Order:    minimalOrder(),
		Items:    []model.LineItem{{Name: "Desk"}},
		Billing:  &model.Address{Country: "USA"},
		Shipping: &model.Address{City: "Riga"},
		Card:     &model.Card{Number: "4000000000000002", Holder: "John Doe", CVV: "321", Expires: "04/15"},
		Recurring: &model.RecurringSchedule{
			Period: 30,
			Price:  &price,
			Begin:  time.Date(2015, 2, 12, 0, 0, 0, 0, time.UTC),
			Count:  10,
		},
	}
	doc, err := Encode(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(doc)

	// Digest input depends on this exact sequence.
	order := []string{"<order_item ", `<address country="USA" type="Billing"`, `<address city="Riga" type="Shipping"`, "<card ", "<recurring "}
	last := -1
	for _, marker := range order {
		idx := strings.Index(s, marker)
		if idx < 0 {
			t.Fatalf("marker %q missing in document: %s", marker, s)
		}
		if idx < last {
			t.Fatalf("marker %q out of order in document: %s", marker, s)
		}
		last = idx
	}

	if !strings.Contains(s, `count="1"`) {
		t.Errorf("item count should default to 1: %s", s)
	}
	if !strings.Contains(s, `price="0"`) {
		t.Errorf("item price should default to 0: %s", s)
	}
	if !strings.Contains(s, `begin="12.02.2015"`) {
		t.Errorf("recurring begin date format wrong: %s", s)
	}
	if !strings.Contains(s, `period="30" price="9.99"`) {
		t.Errorf("recurring attrs wrong: %s", s)
	}
}

func TestEncodeRecurringDefaults(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC) }
	defer func() { now = restore }()

	doc, err := Encode(Payload{
		Order:     minimalOrder(),
		Recurring: &model.RecurringSchedule{Period: 7},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(doc)
	if !strings.Contains(s, `price="120"`) {
		t.Errorf("recurring price should default to order amount: %s", s)
	}
	if !strings.Contains(s, `begin="01.06.2020"`) {
		t.Errorf("recurring begin should default to today: %s", s)
	}
	if strings.Contains(s, "count=") {
		t.Errorf("recurring count should be omitted when zero: %s", s)
	}
}

func TestEncodeCallerContractViolations(t *testing.T) {
	cases := []struct {
		name    string
		payload Payload
	}{
		{"missing wallet id", Payload{Order: model.Order{Number: 1, Amount: decimal.NewFromInt(1), Email: "a@b.c"}}},
		{"missing number", Payload{Order: model.Order{WalletID: 1, Amount: decimal.NewFromInt(1), Email: "a@b.c"}}},
		{"missing amount", Payload{Order: model.Order{WalletID: 1, Number: 1, Email: "a@b.c"}}},
		{"missing email", Payload{Order: model.Order{WalletID: 1, Number: 1, Amount: decimal.NewFromInt(1)}}},
		{"item without name", Payload{Order: minimalOrder(), Items: []model.LineItem{{}}}},
		{"recurring without period", Payload{Order: minimalOrder(), Recurring: &model.RecurringSchedule{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Encode(tc.payload)
			if err == nil {
				t.Fatalf("expected error, got document: %s", doc)
			}
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

//go:build !integration

package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cardpay-client/internal/domain"
)

func TestOrderValidate(t *testing.T) {
	valid := Order{
		WalletID: 20,
		Number:   10,
		Amount:   decimal.NewFromInt(120),
		Email:    "c@example.com",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(o *Order)
	}{
		{"missing wallet id", func(o *Order) { o.WalletID = 0 }},
		{"missing number", func(o *Order) { o.Number = 0 }},
		{"missing amount", func(o *Order) { o.Amount = decimal.Decimal{} }},
		{"missing email", func(o *Order) { o.Email = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := valid
			tc.mutate(&o)
			err := o.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestTransitionRequestValidate(t *testing.T) {
	amount := decimal.RequireFromString("10.50")

	t.Run("capture needs only an id", func(t *testing.T) {
		if err := (TransitionRequest{ID: 1, To: TransitionCapture}).Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("void needs only an id", func(t *testing.T) {
		if err := (TransitionRequest{ID: 1, To: TransitionVoid}).Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("refund requires a reason", func(t *testing.T) {
		err := (TransitionRequest{ID: 1, To: TransitionRefund}).Validate()
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		ok := TransitionRequest{ID: 1, To: TransitionRefund, Reason: "customer request"}
		if err := ok.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("partial refund amount is allowed", func(t *testing.T) {
		req := TransitionRequest{ID: 1, To: TransitionRefund, Reason: "customer request", Amount: &amount}
		if err := req.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("amount outside refund is rejected", func(t *testing.T) {
		req := TransitionRequest{ID: 1, To: TransitionCapture, Amount: &amount}
		if !errors.Is(req.Validate(), domain.ErrInvalidArgument) {
			t.Fatal("expected ErrInvalidArgument for capture with amount")
		}
	})

	t.Run("unknown target is rejected", func(t *testing.T) {
		req := TransitionRequest{ID: 1, To: "settle"}
		if !errors.Is(req.Validate(), domain.ErrInvalidArgument) {
			t.Fatal("expected ErrInvalidArgument for unknown target")
		}
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		req := TransitionRequest{To: TransitionVoid}
		if !errors.Is(req.Validate(), domain.ErrInvalidArgument) {
			t.Fatal("expected ErrInvalidArgument for missing id")
		}
	})
}

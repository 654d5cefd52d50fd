package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cardpay-client/internal/domain"
)

// TransitionTarget is the requested status for an existing transaction.
type TransitionTarget string

const (
	TransitionCapture TransitionTarget = "capture"
	TransitionRefund  TransitionTarget = "refund"
	TransitionVoid    TransitionTarget = "void"
)

// TransitionRequest asks the gateway to move a transaction to a new status.
//
// The gateway tracks transaction state and is authoritative about which
// moves are legal:
//
//	authorized -> captured  (capture)
//	authorized -> voided    (void before capture)
//	captured   -> voided    (void)
//	captured   -> refunded  (refund, optionally partial)
//
// The client does not pre-validate the graph; an illegal transition comes
// back as StatusChangeResult{Executed: false} with the gateway's wording.
type TransitionRequest struct {
	ID     int64            // transaction id as assigned by the gateway
	To     TransitionTarget // target status
	Reason string           // required for refund only
	Amount *decimal.Decimal // refund only; nil means full remaining amount
}

// Validate enforces the per-transition parameter contract before any
// network call is made.
func (r TransitionRequest) Validate() error {
	if r.ID == 0 {
		return fmt.Errorf("%w: transaction id is required", domain.ErrInvalidArgument)
	}
	switch r.To {
	case TransitionCapture, TransitionRefund, TransitionVoid:
	default:
		return fmt.Errorf("%w: unknown transition target %q", domain.ErrInvalidArgument, r.To)
	}
	if r.To == TransitionRefund && r.Reason == "" {
		return fmt.Errorf("%w: refund reason is required", domain.ErrInvalidArgument)
	}
	if r.To != TransitionRefund && r.Amount != nil {
		return fmt.Errorf("%w: amount is only valid for refund", domain.ErrInvalidArgument)
	}
	return nil
}

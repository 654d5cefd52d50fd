package model

import "github.com/shopspring/decimal"

// Outcome is the closed set of decoded gateway reply shapes. A reply is
// exactly one of PaymentResult, Redirect or StatusChangeResult; nothing
// else implements this interface.
type Outcome interface {
	outcome()
}

// PaymentResult is the immediate result of a payment or a callback
// notification. String fields keep their zero value when the gateway
// omitted the attribute; nothing is synthesized.
type PaymentResult struct {
	ID            *int64 // transaction id; nil when the gateway reported "-"
	RefundID      *int64 // refund id; nil unless this is a refund notification
	Number        string // merchant's order id as echoed back
	Status        string // APPROVED, DECLINED, PENDING, VOIDED, REFUNDED, CHARGEBACK
	Description   string
	Date          string // DD-MM-YYYY hh:mm:ss as sent by the gateway
	CustomerID    string
	CardBin       string
	CardNum       string // masked PAN
	CardHolder    string
	DeclineCode   string
	DeclineReason string
	ApprovalCode  string
	Is3D          bool
	Currency      string
	Amount        *decimal.Decimal
	Refunded      *decimal.Decimal
	RecurringID   string
	Note          string
}

// Redirect asks the caller to send the customer to URL. In the 3-D-Secure
// flow MD and PaReq must be relayed to the issuing bank and the returned
// continuation pair presented back via Finish3DS.
type Redirect struct {
	URL   string
	MD    string
	PaReq string
}

// StatusChangeResult is the gateway's answer to a capture, refund or void
// request. A rejected transition is a business outcome, not an error:
// Executed is false and Details carries the gateway's wording verbatim.
type StatusChangeResult struct {
	Executed bool
	Details  string
}

func (PaymentResult) outcome()      {}
func (Redirect) outcome()           {}
func (StatusChangeResult) outcome() {}

package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cardpay-client/internal/domain"
)

// Order describes a payment order as the merchant submits it. All fields are
// request-scoped values; nothing here survives the call that uses it.
//
// WalletID, Number, Amount and Email are mandatory. Everything else is
// optional and simply omitted from the canonical document when unset.
type Order struct {
	WalletID    int64           // merchant's store id in the CardPay system
	Number      int64           // merchant's own order id
	Description string          // shown to the customer; defaults to ""
	Currency    string          // ISO 4217; when empty the account default applies
	Amount      decimal.Decimal // total order amount, exact decimal
	CustomerID  string
	Email       string
	TwoPhase    bool   // authorize now, capture later
	GatewayMode bool   // card/billing data travel through this client
	Note        string // not displayed to the customer
	ReturnURL   string // overrides both success and decline URLs
	SuccessURL  string
	DeclineURL  string
	CancelURL   string
	Locale      string // payment page locale; defaults to "en"
	IP          string // customer IPv4, only meaningful in gateway mode
}

// Validate reports a caller-contract violation for any missing mandatory
// field. It runs before any encoding or network interaction.
func (o Order) Validate() error {
	if o.WalletID == 0 {
		return fmt.Errorf("%w: order wallet id is required", domain.ErrInvalidArgument)
	}
	if o.Number == 0 {
		return fmt.Errorf("%w: order number is required", domain.ErrInvalidArgument)
	}
	if o.Amount.IsZero() {
		return fmt.Errorf("%w: order amount is required", domain.ErrInvalidArgument)
	}
	if o.Email == "" {
		return fmt.Errorf("%w: order email is required", domain.ErrInvalidArgument)
	}
	return nil
}

// LineItem is one product or service line of an order. Item order within the
// document is preserved as given by the merchant.
type LineItem struct {
	Name        string // required
	Description string
	Count       int             // defaults to 1 when zero
	Price       decimal.Decimal // defaults to 0
}

func (i LineItem) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrInvalidArgument)
	}
	return nil
}

// AddressRole discriminates billing from shipping addresses. The role is
// attached when the document is built; it is not a property of the address.
type AddressRole string

const (
	AddressBilling  AddressRole = "Billing"
	AddressShipping AddressRole = "Shipping"
)

// Address is a billing or shipping address. Every field is optional and
// omitted from the encoding when empty.
type Address struct {
	Country string // ISO 3166-1
	State   string
	City    string
	Zip     string
	Street  string
	Phone   string
}

// Card carries raw card data for gateway-mode orders. It must never be
// logged or echoed back in full.
type Card struct {
	Number  string // PAN
	Holder  string
	CVV     string
	Expires string // e.g. "04/15"
}

// RecurringSchedule describes a recurring payment attached to an order.
type RecurringSchedule struct {
	Period int              // days between charges, required
	Price  *decimal.Decimal // defaults to the order amount
	Begin  time.Time        // defaults to the current date
	Count  int              // number of charges; zero means unbounded
}

func (r RecurringSchedule) Validate() error {
	if r.Period <= 0 {
		return fmt.Errorf("%w: recurring period is required", domain.ErrInvalidArgument)
	}
	return nil
}

package cardpay

import "github.com/shopspring/decimal"

// The v2 JSON endpoints are typed pass-through calls: every parameter is
// enumerated here instead of being forwarded blindly, and replies decode
// into these records without further interpretation.

// PayoutOrder describes the money side of a payout request.
type PayoutOrder struct {
	MerchantOrderID string          `json:"merchantOrderId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description,omitempty"`
	Note            string          `json:"note,omitempty"`
	RecipientInfo   string          `json:"recipientInfo,omitempty"`
}

// PayoutCard identifies the receiving card.
type PayoutCard struct {
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiryMonth,omitempty"`
	ExpiryYear  int    `json:"expiryYear,omitempty"`
}

type payoutData struct {
	PayoutOrder
	Type      string     `json:"type"`
	Timestamp string     `json:"timestamp"`
	Card      PayoutCard `json:"card"`
}

type payoutEnvelope struct {
	Data payoutData `json:"data"`
}

// PayoutResponse is the gateway's answer to a payout request. On rejection
// Errors is populated and Data is zero.
type PayoutResponse struct {
	Data   PayoutRecord      `json:"data"`
	Links  map[string]string `json:"links,omitempty"`
	Errors []APIError        `json:"errors,omitempty"`
}

type PayoutRecord struct {
	Type            string `json:"type"`
	ID              string `json:"id"`
	Created         string `json:"created"`
	Updated         string `json:"updated"`
	RRN             string `json:"rrn"`
	MerchantOrderID string `json:"merchantOrderId"`
	Status          string `json:"status"`
}

// APIError is one structured error entry from a v2 endpoint.
type APIError struct {
	Status string `json:"status"`
	Source struct {
		Pointer string `json:"pointer"`
	} `json:"source"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// ListQuery selects a period for the list endpoints. The period must span
// less than seven days; the gateway enforces this, not the client.
type ListQuery struct {
	StartMillis int64 // inclusive
	EndMillis   int64 // exclusive
	WalletID    int64 // optional; zero means all websites of this user
	MaxCount    int   // optional; gateway default is 10000
}

// Page is one page of list results.
type Page struct {
	Data    []Record `json:"data"`
	HasMore bool     `json:"hasMore"`
}

// Record is one payment, refund or payout row. Fields absent for a given
// endpoint simply stay zero.
type Record struct {
	ID              string           `json:"id"`
	Number          string           `json:"number"`
	State           string           `json:"state"`
	Date            int64            `json:"date"`
	CustomerID      string           `json:"customerId"`
	DeclineReason   string           `json:"declineReason"`
	DeclineCode     string           `json:"declineCode"`
	AuthCode        string           `json:"authCode"`
	Is3D            bool             `json:"is3d"`
	Currency        string           `json:"currency"`
	Amount          *decimal.Decimal `json:"amount"`
	RefundedAmount  *decimal.Decimal `json:"refundedAmount"`
	Note            string           `json:"note"`
	Email           string           `json:"email"`
	OriginalOrderID string           `json:"originalOrderId"`
}

// StatusRecord is the per-transaction status reply of a v2 endpoint.
type StatusRecord struct {
	Type            string `json:"type"`
	ID              string `json:"id"`
	Created         string `json:"created"`
	Updated         string `json:"updated"`
	State           string `json:"state"`
	MerchantOrderID string `json:"merchantOrderId"`
}

type statusEnvelope struct {
	Data StatusRecord `json:"data"`
}

// Package cardpay is the gateway client: it composes the canonical order
// encoder, the signature service and the response decoder into the payment
// and status-change operations of the CardPay protocol.
package cardpay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"cardpay-client/internal/domain"
	"cardpay-client/internal/domain/model"
	"cardpay-client/internal/domain/ports/adapter"
	"cardpay-client/internal/infra/decoding"
	"cardpay-client/internal/infra/encoding"
	"cardpay-client/internal/infra/metrics"
	"cardpay-client/internal/infra/signature"
)

// Config carries the merchant credentials owned by one client context.
type Config struct {
	WalletID       int64
	Secret         string
	ClientLogin    string
	ClientPassword string
	Environment    Environment
}

// Client is a long-lived context for one credential set. It holds no other
// state, so a single Client is safe for concurrent reuse; every call issues
// at most one outbound exchange and returns before yielding control.
//
// The administrative password is hashed once at construction; status-change
// and report calls only ever see the SHA-256 digest. The v2 JSON endpoints
// authenticate with HTTP basic auth instead and need the cleartext.
type Client struct {
	walletID       int64
	secret         []byte
	clientLogin    string
	passwordHash   string
	clientPassword string
	env            Environment
	tr             adapter.Transport
	log            *zerolog.Logger
}

func New(cfg Config, tr adapter.Transport, logger *zerolog.Logger) (*Client, error) {
	if cfg.WalletID == 0 {
		return nil, fmt.Errorf("%w: wallet id is required", domain.ErrInvalidArgument)
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: secret is required", domain.ErrInvalidArgument)
	}
	if cfg.ClientLogin == "" || cfg.ClientPassword == "" {
		return nil, fmt.Errorf("%w: client login and password are required", domain.ErrInvalidArgument)
	}
	if cfg.Environment.Pay == "" {
		return nil, fmt.Errorf("%w: environment is required", domain.ErrInvalidArgument)
	}
	if tr == nil {
		return nil, fmt.Errorf("%w: transport is required", domain.ErrInvalidArgument)
	}
	return &Client{
		walletID:       cfg.WalletID,
		secret:         []byte(cfg.Secret),
		clientLogin:    cfg.ClientLogin,
		passwordHash:   signature.HashPassword(cfg.ClientPassword),
		clientPassword: cfg.ClientPassword,
		env:            cfg.Environment,
		tr:             tr,
		log:            logger,
	}, nil
}

// nowUTC is a seam for tests; payout envelopes carry a UTC timestamp.
var nowUTC = func() time.Time { return time.Now().UTC() }

// Pay encodes and signs the order, submits it, and classifies the reply.
// The result is either a model.PaymentResult or a model.Redirect; a
// Redirect carrying MD/PaReq starts the 3-D-Secure continuation and the
// caller must come back through Finish3DS. How long to wait for the bank
// step is the caller's decision; no timeout is enforced here.
//
// The gateway does not deduplicate: retrying Pay may create a duplicate
// order, so nothing in this client retries signing or submission.
func (c *Client) Pay(ctx context.Context, p encoding.Payload) (model.Outcome, error) {
	p.Order.WalletID = c.walletID
	doc, err := encoding.Encode(p)
	if err != nil {
		return nil, err
	}
	form := url.Values{}
	form.Set("orderXML", base64.StdEncoding.EncodeToString(doc))
	form.Set("sha512", signature.Sign(doc, c.secret))
	return c.submitOutcome(ctx, "pay", c.env.Pay, form)
}

// Finish3DS presents the continuation token pair back to the gateway after
// the out-of-band bank authentication. It reuses the exact decode path of
// Pay and can itself return another Redirect.
func (c *Client) Finish3DS(ctx context.Context, md, paRes string) (model.Outcome, error) {
	if md == "" || paRes == "" {
		return nil, fmt.Errorf("%w: MD and PaRes are required", domain.ErrInvalidArgument)
	}
	form := url.Values{}
	form.Set("MD", md)
	form.Set("PaRes", paRes)
	return c.submitOutcome(ctx, "finish_3ds", c.env.Finish3DS, form)
}

func (c *Client) submitOutcome(ctx context.Context, op, endpoint string, form url.Values) (model.Outcome, error) {
	start := time.Now()
	body, err := c.tr.Do(ctx, adapter.Request{Method: http.MethodPost, URL: endpoint, Form: form})
	if err != nil {
		c.finish(op, start, err)
		return nil, err
	}
	out, err := decoding.Outcome(body)
	c.finish(op, start, err)
	return out, err
}

// Capture settles a previously authorized (two-phase) transaction.
func (c *Client) Capture(ctx context.Context, id int64) (model.StatusChangeResult, error) {
	return c.ChangeStatus(ctx, model.TransitionRequest{ID: id, To: model.TransitionCapture})
}

// Void cancels an authorized or captured transaction.
func (c *Client) Void(ctx context.Context, id int64) (model.StatusChangeResult, error) {
	return c.ChangeStatus(ctx, model.TransitionRequest{ID: id, To: model.TransitionVoid})
}

// Refund returns money for a captured transaction. A nil amount means a
// full refund of the remaining amount.
func (c *Client) Refund(ctx context.Context, id int64, reason string, amount *decimal.Decimal) (model.StatusChangeResult, error) {
	return c.ChangeStatus(ctx, model.TransitionRequest{
		ID:     id,
		To:     model.TransitionRefund,
		Reason: reason,
		Amount: amount,
	})
}

// ChangeStatus submits one status transition. The gateway is authoritative
// about the transition graph; an illegal move comes back with Executed
// false and the gateway's own wording, never as an error.
func (c *Client) ChangeStatus(ctx context.Context, req model.TransitionRequest) (model.StatusChangeResult, error) {
	if err := req.Validate(); err != nil {
		return model.StatusChangeResult{}, err
	}
	form := url.Values{}
	form.Set("id", strconv.FormatInt(req.ID, 10))
	form.Set("status_to", string(req.To))
	form.Set("client_login", c.clientLogin)
	form.Set("client_password", c.passwordHash)
	if req.Reason != "" {
		form.Set("reason", req.Reason)
	}
	if req.Amount != nil {
		form.Set("amount", req.Amount.String())
	}

	op := "status_" + string(req.To)
	start := time.Now()
	body, err := c.tr.Do(ctx, adapter.Request{Method: http.MethodPost, URL: c.env.StatusChange, Form: form})
	if err != nil {
		c.finish(op, start, err)
		return model.StatusChangeResult{}, err
	}
	res, err := decoding.Execution(body)
	if err != nil {
		c.finish(op, start, err)
		return model.StatusChangeResult{}, err
	}
	if !res.Executed {
		c.finishRejected(op, start, res.Details)
		return res, nil
	}
	c.finish(op, start, nil)
	return res, nil
}

// ReportQuery narrows the transactions report. All fields are optional;
// dates use the gateway's "yyyy-MM-dd" or "yyyy-MM-dd HH:mm" formats.
type ReportQuery struct {
	DateBegin string
	DateEnd   string
	Number    string // single merchant order
}

// Report fetches the transactions report for this wallet.
func (c *Client) Report(ctx context.Context, q ReportQuery) (model.Report, error) {
	form := url.Values{}
	form.Set("client_login", c.clientLogin)
	form.Set("client_password", c.passwordHash)
	form.Set("wallet_id", strconv.FormatInt(c.walletID, 10))
	if q.DateBegin != "" {
		form.Set("date_begin", q.DateBegin)
	}
	if q.DateEnd != "" {
		form.Set("date_end", q.DateEnd)
	}
	if q.Number != "" {
		form.Set("number", q.Number)
	}

	start := time.Now()
	body, err := c.tr.Do(ctx, adapter.Request{Method: http.MethodPost, URL: c.env.Status, Form: form})
	if err != nil {
		c.finish("report", start, err)
		return model.Report{}, err
	}
	rep, err := decoding.ReportOutcome(body)
	c.finish("report", start, err)
	return rep, err
}

// Payout transfers money to a customer's card. Rejections arrive as a
// structured Errors list in the response body (HTTP 400/500), which is
// passed through rather than treated as a transport failure.
func (c *Client) Payout(ctx context.Context, order PayoutOrder, card PayoutCard) (PayoutResponse, error) {
	if order.MerchantOrderID == "" || order.Amount.IsZero() || card.Number == "" {
		return PayoutResponse{}, fmt.Errorf("%w: payout needs merchant order id, amount and card number", domain.ErrInvalidArgument)
	}
	env := payoutEnvelope{Data: payoutData{
		PayoutOrder: order,
		Type:        "PAYOUTS",
		Timestamp:   nowUTC().Format("2006-01-02T15:04:05Z"),
		Card:        card,
	}}
	endpoint := c.env.Payouts + "?" + url.Values{"walletId": {strconv.FormatInt(c.walletID, 10)}}.Encode()

	start := time.Now()
	body, err := c.tr.Do(ctx, adapter.Request{
		Method:    http.MethodPost,
		URL:       endpoint,
		JSON:      env,
		BasicUser: c.clientLogin,
		BasicPass: c.clientPassword,
		Accept:    func(status int) bool { return status == 400 || status == 500 },
	})
	if err != nil {
		c.finish("payout", start, err)
		return PayoutResponse{}, err
	}
	var resp PayoutResponse
	if uerr := json.Unmarshal(body, &resp); uerr != nil {
		derr := &domain.DecodeError{Content: body, Reason: fmt.Sprintf("malformed JSON: %v", uerr)}
		c.finish("payout", start, derr)
		return PayoutResponse{}, derr
	}
	c.finish("payout", start, nil)
	return resp, nil
}

// ListPayments returns payments started within the queried period.
func (c *Client) ListPayments(ctx context.Context, q ListQuery) (Page, error) {
	return c.list(ctx, "list_payments", c.env.Payments, q)
}

// ListRefunds returns refunds within the queried period.
func (c *Client) ListRefunds(ctx context.Context, q ListQuery) (Page, error) {
	return c.list(ctx, "list_refunds", c.env.Refunds, q)
}

// ListPayouts returns payouts within the queried period.
func (c *Client) ListPayouts(ctx context.Context, q ListQuery) (Page, error) {
	return c.list(ctx, "list_payouts", c.env.Payouts, q)
}

func (c *Client) list(ctx context.Context, op, base string, q ListQuery) (Page, error) {
	params := url.Values{}
	params.Set("startMillis", strconv.FormatInt(q.StartMillis, 10))
	params.Set("endMillis", strconv.FormatInt(q.EndMillis, 10))
	if q.WalletID != 0 {
		params.Set("walletId", strconv.FormatInt(q.WalletID, 10))
	}
	if q.MaxCount != 0 {
		params.Set("maxCount", strconv.Itoa(q.MaxCount))
	}

	start := time.Now()
	body, err := c.tr.Do(ctx, adapter.Request{
		Method:    http.MethodGet,
		URL:       base + "?" + params.Encode(),
		BasicUser: c.clientLogin,
		BasicPass: c.clientPassword,
	})
	if err != nil {
		c.finish(op, start, err)
		return Page{}, err
	}
	var page Page
	if uerr := json.Unmarshal(body, &page); uerr != nil {
		derr := &domain.DecodeError{Content: body, Reason: fmt.Sprintf("malformed JSON: %v", uerr)}
		c.finish(op, start, derr)
		return Page{}, derr
	}
	c.finish(op, start, nil)
	return page, nil
}

// PaymentStatus fetches one payment by its gateway id.
func (c *Client) PaymentStatus(ctx context.Context, id string) (StatusRecord, error) {
	return c.status(ctx, "payment_status", c.env.Payments, id)
}

// RefundStatus fetches one refund by its gateway id.
func (c *Client) RefundStatus(ctx context.Context, id string) (StatusRecord, error) {
	return c.status(ctx, "refund_status", c.env.Refunds, id)
}

// PayoutStatus fetches one payout by its gateway id.
func (c *Client) PayoutStatus(ctx context.Context, id string) (StatusRecord, error) {
	return c.status(ctx, "payout_status", c.env.Payouts, id)
}

func (c *Client) status(ctx context.Context, op, base, id string) (StatusRecord, error) {
	if id == "" {
		return StatusRecord{}, fmt.Errorf("%w: transaction id is required", domain.ErrInvalidArgument)
	}
	start := time.Now()
	body, err := c.tr.Do(ctx, adapter.Request{
		Method:    http.MethodGet,
		URL:       base + "/" + url.PathEscape(id),
		BasicUser: c.clientLogin,
		BasicPass: c.clientPassword,
	})
	if err != nil {
		var terr *domain.TransportError
		if errors.As(err, &terr) && terr.Status == http.StatusNotFound {
			err = fmt.Errorf("%w: id %s", domain.ErrNotFound, id)
		}
		c.finish(op, start, err)
		return StatusRecord{}, err
	}
	var env statusEnvelope
	if uerr := json.Unmarshal(body, &env); uerr != nil {
		derr := &domain.DecodeError{Content: body, Reason: fmt.Sprintf("malformed JSON: %v", uerr)}
		c.finish(op, start, derr)
		return StatusRecord{}, derr
	}
	c.finish(op, start, nil)
	return env.Data, nil
}

// finishRejected records a well-formed "not executed" answer. It is a
// business outcome, so it counts separately from errors.
func (c *Client) finishRejected(op string, start time.Time, details string) {
	elapsed := time.Since(start)
	metrics.ObserveGatewayRequest(op, "rejected", elapsed)
	if c.log != nil {
		c.log.Info().Str("operation", op).Str("details", details).Dur("duration", elapsed).Msg("gateway rejected transition")
	}
}

// finish records the metrics and log line for one exchange. Payloads are
// never logged here: order documents can carry full card data.
func (c *Client) finish(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	result := "ok"
	var terr *domain.TransportError
	var derr *domain.DecodeError
	switch {
	case err == nil:
	case errors.As(err, &terr):
		result = "transport_error"
	case errors.As(err, &derr):
		result = "decode_error"
	default:
		result = "error"
	}
	metrics.ObserveGatewayRequest(op, result, elapsed)
	if c.log == nil {
		return
	}
	ev := c.log.Debug()
	if err != nil {
		ev = c.log.Warn().Err(err)
	}
	ev.Str("operation", op).Str("result", result).Dur("duration", elapsed).Msg("gateway call")
}

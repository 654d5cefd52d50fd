// Package decoding turns raw gateway replies into typed outcomes. The same
// shape grammar applies to direct payment replies and to verified callback
// payloads, so both paths share this decoder.
package decoding

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"cardpay-client/internal/domain"
	"cardpay-client/internal/domain/model"
)

// Element is a generic attributed tree node, the parsed form of a reply.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Element  `xml:",any"`
}

// Attr returns the named attribute and whether it was present at all. The
// distinction matters: absent attributes stay absent in the decoded result.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Parse reads a reply into its generic tree form.
func Parse(raw []byte) (*Element, error) {
	var el Element
	if err := xml.NewDecoder(bytes.NewReader(raw)).Decode(&el); err != nil {
		return nil, &domain.DecodeError{
			Content: raw,
			Reason:  fmt.Sprintf("malformed XML: %v", err),
		}
	}
	return &el, nil
}

// Outcome classifies a reply by its root marker. "redirect" yields a
// model.Redirect, "order" a model.PaymentResult; any other root fails
// closed with a *domain.DecodeError, never a partially populated result.
func Outcome(raw []byte) (model.Outcome, error) {
	el, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	switch el.XMLName.Local {
	case "redirect":
		url, _ := el.Attr("url")
		md, _ := el.Attr("MD")
		paReq, _ := el.Attr("PaReq")
		return model.Redirect{URL: url, MD: md, PaReq: paReq}, nil
	case "order":
		return paymentResult(el, raw)
	default:
		return nil, &domain.DecodeError{
			Root:    el.XMLName.Local,
			Content: raw,
			Reason:  fmt.Sprintf("root element is neither redirect nor order: %q", el.XMLName.Local),
		}
	}
}

func paymentResult(el *Element, raw []byte) (model.PaymentResult, error) {
	var res model.PaymentResult
	var err error

	if res.ID, err = intAttr(el, "id", raw); err != nil {
		return model.PaymentResult{}, err
	}
	if res.RefundID, err = intAttr(el, "refund_id", raw); err != nil {
		return model.PaymentResult{}, err
	}
	if res.Amount, err = decimalAttr(el, "amount", raw); err != nil {
		return model.PaymentResult{}, err
	}
	if res.Refunded, err = decimalAttr(el, "refunded", raw); err != nil {
		return model.PaymentResult{}, err
	}
	if v, ok := el.Attr("is_3d"); ok {
		res.Is3D = v == "true"
	}

	res.Number, _ = el.Attr("number")
	res.Status, _ = el.Attr("status")
	res.Description, _ = el.Attr("description")
	res.Date, _ = el.Attr("date")
	res.CustomerID, _ = el.Attr("customer_id")
	res.CardBin, _ = el.Attr("card_bin")
	res.CardNum, _ = el.Attr("card_num")
	res.CardHolder, _ = el.Attr("card_holder")
	res.DeclineCode, _ = el.Attr("decline_code")
	res.DeclineReason, _ = el.Attr("decline_reason")
	res.ApprovalCode, _ = el.Attr("approval_code")
	res.Currency, _ = el.Attr("currency")
	res.RecurringID, _ = el.Attr("recurring_id")
	res.Note, _ = el.Attr("note")
	return res, nil
}

// intAttr decodes an integer identifier. The sentinel "-" means the gateway
// has no id for this notification (e.g. the customer cancelled); it decodes
// to nil, not zero and not an error.
func intAttr(el *Element, name string, raw []byte) (*int64, error) {
	v, ok := el.Attr(name)
	if !ok {
		return nil, nil
	}
	if v == "-" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, &domain.DecodeError{
			Root:    el.XMLName.Local,
			Content: raw,
			Reason:  fmt.Sprintf("attribute %s=%q is not an integer", name, v),
		}
	}
	return &n, nil
}

func decimalAttr(el *Element, name string, raw []byte) (*decimal.Decimal, error) {
	v, ok := el.Attr(name)
	if !ok {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, &domain.DecodeError{
			Root:    el.XMLName.Local,
			Content: raw,
			Reason:  fmt.Sprintf("attribute %s=%q is not a decimal", name, v),
		}
	}
	return &d, nil
}

// Execution decodes a status-change reply. A well-formed "not executed"
// answer is a business outcome the caller branches on, so it comes back as
// data rather than an error.
func Execution(raw []byte) (model.StatusChangeResult, error) {
	el, err := Parse(raw)
	if err != nil {
		return model.StatusChangeResult{}, err
	}
	if v, _ := el.Attr("is_executed"); v != "yes" {
		details, _ := el.Attr("details")
		return model.StatusChangeResult{Executed: false, Details: details}, nil
	}
	return model.StatusChangeResult{Executed: true}, nil
}

// ReportOutcome decodes the order-report reply: an executed flag plus zero
// or more orderu rows passed through as text.
func ReportOutcome(raw []byte) (model.Report, error) {
	el, err := Parse(raw)
	if err != nil {
		return model.Report{}, err
	}
	if v, _ := el.Attr("is_executed"); v != "yes" {
		details, _ := el.Attr("details")
		return model.Report{Executed: false, Details: details}, nil
	}
	rep := model.Report{Executed: true}
	var walk func(nodes []Element)
	walk = func(nodes []Element) {
		for i := range nodes {
			n := &nodes[i]
			if n.XMLName.Local == "orderu" {
				var row model.ReportOrder
				row.ID, _ = n.Attr("id")
				row.Number, _ = n.Attr("orderu_number")
				row.StatusName, _ = n.Attr("status_name")
				row.DateIn, _ = n.Attr("date_in")
				row.Amount, _ = n.Attr("amount")
				row.HoldNumber, _ = n.Attr("hold_number")
				row.Email, _ = n.Attr("email")
				rep.Orders = append(rep.Orders, row)
			}
			walk(n.Children)
		}
	}
	walk(el.Children)
	return rep, nil
}

// Package encoding builds the canonical XML document for a payment order.
// The document doubles as the digest input, so byte-level determinism is
// part of the contract: attributes are written in a fixed order and child
// elements always follow the sequence items, billing, shipping, card,
// recurring. Reordering anything here invalidates existing signatures.
package encoding

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"time"

	"cardpay-client/internal/domain/model"
)

// Payload bundles everything that goes into one canonical order document.
type Payload struct {
	Order     model.Order
	Items     []model.LineItem
	Billing   *model.Address
	Shipping  *model.Address
	Card      *model.Card
	Recurring *model.RecurringSchedule

	// Card tokenization directives.
	GenerateCardToken bool
	CardToken         string
}

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// beginDateFormat is the gateway's DD.MM.YYYY recurring start date.
const beginDateFormat = "02.01.2006"

// now is a seam for tests; the recurring begin date defaults to today.
var now = time.Now

// Encode validates the payload and renders the canonical document.
// Mandatory-field violations fail here, before any network interaction.
func Encode(p Payload) ([]byte, error) {
	o := p.Order
	if err := o.Validate(); err != nil {
		return nil, err
	}
	for _, it := range p.Items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
	}
	if p.Recurring != nil {
		if err := p.Recurring.Validate(); err != nil {
			return nil, err
		}
	}

	locale := o.Locale
	if locale == "" {
		locale = "en"
	}

	root := element{name: "order"}
	root.attr("wallet_id", strconv.FormatInt(o.WalletID, 10))
	root.attr("number", strconv.FormatInt(o.Number, 10))
	root.attr("description", o.Description)
	root.attr("amount", o.Amount.String())
	root.attr("email", o.Email)
	root.attr("is_two_phase", yesNo(o.TwoPhase))
	root.attr("is_gateway", yesNo(o.GatewayMode))
	root.attr("locale", locale)
	if o.Currency != "" {
		root.attr("currency", o.Currency)
	}
	if o.GatewayMode && o.IP != "" {
		root.attr("ip", o.IP)
	}
	if o.CustomerID != "" {
		root.attr("customer_id", o.CustomerID)
	}
	if o.Note != "" {
		root.attr("note", o.Note)
	}
	if o.ReturnURL != "" {
		root.attr("return_url", o.ReturnURL)
	}
	if o.SuccessURL != "" {
		root.attr("success_url", o.SuccessURL)
	}
	if o.DeclineURL != "" {
		root.attr("decline_url", o.DeclineURL)
	}
	if o.CancelURL != "" {
		root.attr("cancel_url", o.CancelURL)
	}
	if p.GenerateCardToken {
		root.attr("generate_card_token", "true")
	}
	if p.CardToken != "" {
		root.attr("card_token", p.CardToken)
	}

	for _, it := range p.Items {
		count := it.Count
		if count == 0 {
			count = 1
		}
		item := element{name: "order_item"}
		item.attr("name", it.Name)
		item.attr("description", it.Description)
		item.attr("count", strconv.Itoa(count))
		item.attr("price", it.Price.String())
		root.children = append(root.children, item)
	}
	if p.Billing != nil {
		root.children = append(root.children, addressElement(*p.Billing, model.AddressBilling))
	}
	if p.Shipping != nil {
		root.children = append(root.children, addressElement(*p.Shipping, model.AddressShipping))
	}
	if p.Card != nil {
		card := element{name: "card"}
		card.attrIf("num", p.Card.Number)
		card.attrIf("holder", p.Card.Holder)
		card.attrIf("cvv", p.Card.CVV)
		card.attrIf("expires", p.Card.Expires)
		root.children = append(root.children, card)
	}
	if p.Recurring != nil {
		r := *p.Recurring
		price := o.Amount
		if r.Price != nil {
			price = *r.Price
		}
		begin := r.Begin
		if begin.IsZero() {
			begin = now()
		}
		rec := element{name: "recurring"}
		rec.attr("period", strconv.Itoa(r.Period))
		rec.attr("price", price.String())
		rec.attr("begin", begin.Format(beginDateFormat))
		if r.Count > 0 {
			rec.attr("count", strconv.Itoa(r.Count))
		}
		root.children = append(root.children, rec)
	}

	return render(root)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func addressElement(a model.Address, role model.AddressRole) element {
	el := element{name: "address"}
	el.attrIf("country", a.Country)
	el.attrIf("state", a.State)
	el.attrIf("city", a.City)
	el.attrIf("zip", a.Zip)
	el.attrIf("street", a.Street)
	el.attrIf("phone", a.Phone)
	el.attr("type", string(role))
	return el
}

// element is an ordered attribute list plus ordered children; the stdlib
// encoder preserves both, which is what makes the output canonical.
type element struct {
	name     string
	attrs    []xml.Attr
	children []element
}

func (e *element) attr(name, value string) {
	e.attrs = append(e.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// attrIf emits the attribute only when the value is present.
func (e *element) attrIf(name, value string) {
	if value != "" {
		e.attr(name, value)
	}
}

func render(root element) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	enc := xml.NewEncoder(&buf)
	if err := writeElement(enc, root); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeElement(enc *xml.Encoder, el element) error {
	start := xml.StartElement{Name: xml.Name{Local: el.name}, Attr: el.attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range el.children {
		if err := writeElement(enc, child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

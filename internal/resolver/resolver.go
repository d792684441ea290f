// Package resolver turns the candidate orders of a customer email into the
// public order projection. Every function here is pure: no I/O, no state.
package resolver

import (
	"strconv"
	"strings"
	"unicode"

	"order-tracker/internal/models"

	"github.com/shopspring/decimal"
)

const (
	NotFoundMessage = "order not found for the given number and email"

	unavailable = "unavailable"
	zeroMoney   = "0.00"
)

// NormalizeOrderNumber drops every '#' and whitespace rune. It is idempotent.
func NormalizeOrderNumber(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '#' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}

// Matches reports whether an order answers to the normalized target, either
// by its normalized name or by its numeric order_number. Custom name
// prefixes make the two disagree, so either one is enough.
func Matches(o models.RawOrder, target string) bool {
	return NormalizeOrderNumber(o.Name) == target ||
		strconv.FormatInt(o.OrderNumber, 10) == target
}

// Match returns the first candidate matching the requested order number.
// Candidates are scanned in the order the store returned them; if several
// match, the first one wins and the rest are ignored.
func Match(candidates []models.RawOrder, requested string) (models.RawOrder, bool) {
	target := NormalizeOrderNumber(requested)
	for _, o := range candidates {
		if Matches(o, target) {
			return o, true
		}
	}
	return models.RawOrder{}, false
}

// ExtractTracking returns the tracking number of the last fulfillment that
// has one, or nil.
func ExtractTracking(fulfillments []models.RawFulfillment) *string {
	var tracking *string
	for _, f := range fulfillments {
		if f.TrackingNumber != nil && *f.TrackingNumber != "" {
			n := *f.TrackingNumber
			tracking = &n
		}
	}
	return tracking
}

// Resolve matches and projects in one step.
func Resolve(candidates []models.RawOrder, requested string) (models.ResolvedOrder, bool) {
	o, ok := Match(candidates, requested)
	if !ok {
		return models.ResolvedOrder{}, false
	}
	return Project(o), true
}

// Project maps a raw order to the public shape. Money fields stay decimal
// strings; only line totals are computed.
func Project(o models.RawOrder) models.ResolvedOrder {
	return models.ResolvedOrder{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		Name:                 o.Name,
		Email:                o.Email,
		CreatedAt:            o.CreatedAt,
		TotalPrice:           o.TotalPrice,
		Currency:             o.Currency,
		FinancialStatus:      o.FinancialStatus,
		FulfillmentStatus:    o.FulfillmentStatus,
		CoordinadoraTracking: ExtractTracking(o.Fulfillments),
		Customer:             projectCustomer(o.Customer),
		ShippingAddress:      shippingAddress(o),
		LineItems:            projectLineItems(o.LineItems),
		SubtotalPrice:        moneyOrZero(o.SubtotalPrice),
		TotalDiscounts:       moneyOrZero(o.TotalDiscounts),
		TotalTax:             moneyOrZero(o.TotalTax),
		ShippingLines:        projectShippingLines(o.ShippingLines),
		Fulfillments:         projectFulfillments(o.Fulfillments),
	}
}

// LineTotal multiplies unit price by quantity, rounded half away from zero to
// two places. It returns nil when the price is not a decimal.
func LineTotal(price string, quantity int64) *string {
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return nil
	}
	total := p.Mul(decimal.NewFromInt(quantity)).Round(2).StringFixed(2)
	return &total
}

func projectCustomer(c *models.RawCustomer) models.ResolvedCustomer {
	if c == nil {
		return models.ResolvedCustomer{Name: unavailable, Email: unavailable}
	}
	email := unavailable
	if c.Email != nil && *c.Email != "" {
		email = *c.Email
	}
	return models.ResolvedCustomer{
		Name:  strings.TrimSpace(c.FirstName + " " + c.LastName),
		Email: email,
	}
}

func shippingAddress(o models.RawOrder) []byte {
	if len(o.ShippingAddress) == 0 {
		return nil
	}
	return o.ShippingAddress
}

func projectLineItems(items []models.RawLineItem) []models.ResolvedLineItem {
	out := make([]models.ResolvedLineItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.ResolvedLineItem{
			Title:      it.Title,
			Quantity:   it.Quantity,
			Price:      it.Price,
			TotalPrice: LineTotal(it.Price, it.Quantity),
		})
	}
	return out
}

func projectShippingLines(lines []models.RawShippingLine) []models.ResolvedShippingLine {
	out := make([]models.ResolvedShippingLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, models.ResolvedShippingLine{Title: l.Title, Price: l.Price})
	}
	return out
}

func projectFulfillments(fs []models.RawFulfillment) []models.ResolvedFulfillment {
	out := make([]models.ResolvedFulfillment, 0, len(fs))
	for _, f := range fs {
		out = append(out, models.ResolvedFulfillment{
			TrackingNumber:  f.TrackingNumber,
			TrackingURL:     f.TrackingURL,
			TrackingCompany: f.TrackingCompany,
			Status:          f.Status,
		})
	}
	return out
}

func moneyOrZero(v string) string {
	if v == "" {
		return zeroMoney
	}
	return v
}

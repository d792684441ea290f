// Package models holds the data structures shared across the application:
// the raw order records of the store admin API and the public projection
// returned to customers.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OrderQuery is the body of a customer lookup request. Both fields are only
// checked for presence; email format and numeric order numbers are not
// enforced so custom order-name schemes keep working.
type OrderQuery struct {
	OrderNumber FlexString `json:"orderNumber" validate:"required"`
	Email       string     `json:"email" validate:"required"`
}

// FlexString accepts both JSON strings and JSON numbers, storefront themes
// send the order number either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("orderNumber must be a string or a number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// RawOrder is an order record as returned by the admin REST API. Only the
// fields this service reads are declared; the full payload is kept in Raw.
type RawOrder struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	OrderNumber       int64             `json:"order_number"`
	Email             string            `json:"email"`
	CreatedAt         string            `json:"created_at"`
	Currency          string            `json:"currency"`
	TotalPrice        string            `json:"total_price"`
	SubtotalPrice     string            `json:"subtotal_price"`
	TotalDiscounts    string            `json:"total_discounts"`
	TotalTax          string            `json:"total_tax"`
	FinancialStatus   *string           `json:"financial_status"`
	FulfillmentStatus *string           `json:"fulfillment_status"`
	Note              *string           `json:"note"`
	NoteAttributes    []NoteAttribute   `json:"note_attributes"`
	Tags              string            `json:"tags"`
	Customer          *RawCustomer      `json:"customer"`
	ShippingAddress   json.RawMessage   `json:"shipping_address"`
	LineItems         []RawLineItem     `json:"line_items"`
	ShippingLines     []RawShippingLine `json:"shipping_lines"`
	Fulfillments      []RawFulfillment  `json:"fulfillments"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the declared fields and keeps a copy of the payload.
func (o *RawOrder) UnmarshalJSON(data []byte) error {
	type plain RawOrder
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = RawOrder(p)
	o.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type RawCustomer struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
}

type RawLineItem struct {
	Title    string `json:"title"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
}

type RawShippingLine struct {
	Title  string  `json:"title"`
	Price  string  `json:"price"`
	Code   *string `json:"code"`
	Source *string `json:"source"`
}

// RawFulfillment is a shipment record attached to an order.
type RawFulfillment struct {
	ID              int64    `json:"id"`
	Status          *string  `json:"status"`
	TrackingNumber  *string  `json:"tracking_number"`
	TrackingURL     *string  `json:"tracking_url"`
	TrackingCompany *string  `json:"tracking_company"`
	TrackingURLs    []string `json:"tracking_urls"`
}

type NoteAttribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// OrdersEnvelope is the body of GET /orders.json.
type OrdersEnvelope struct {
	Orders []RawOrder `json:"orders"`
}

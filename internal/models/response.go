package models

import "encoding/json"

// ResolvedOrder is the customer-facing projection of a RawOrder.
type ResolvedOrder struct {
	ID                   int64                  `json:"id"`
	OrderNumber          int64                  `json:"orderNumber"`
	Name                 string                 `json:"name"`
	Email                string                 `json:"email"`
	CreatedAt            string                 `json:"createdAt"`
	TotalPrice           string                 `json:"totalPrice"`
	Currency             string                 `json:"currency"`
	FinancialStatus      *string                `json:"financialStatus"`
	FulfillmentStatus    *string                `json:"fulfillmentStatus"`
	CoordinadoraTracking *string                `json:"coordinadoraTracking"`
	Customer             ResolvedCustomer       `json:"customer"`
	ShippingAddress      json.RawMessage        `json:"shippingAddress"`
	LineItems            []ResolvedLineItem     `json:"lineItems"`
	SubtotalPrice        string                 `json:"subtotalPrice"`
	TotalDiscounts       string                 `json:"totalDiscounts"`
	TotalTax             string                 `json:"totalTax"`
	ShippingLines        []ResolvedShippingLine `json:"shippingLines"`
	Fulfillments         []ResolvedFulfillment  `json:"fulfillments"`
}

type ResolvedCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ResolvedLineItem struct {
	Title      string  `json:"title"`
	Quantity   int64   `json:"quantity"`
	Price      string  `json:"price"`
	TotalPrice *string `json:"totalPrice"`
}

type ResolvedShippingLine struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

type ResolvedFulfillment struct {
	TrackingNumber  *string `json:"trackingNumber"`
	TrackingURL     *string `json:"trackingUrl"`
	TrackingCompany *string `json:"trackingCompany"`
	Status          *string `json:"status"`
}

// SearchResponse is the envelope of every lookup response.
type SearchResponse struct {
	Success bool           `json:"success"`
	Order   *ResolvedOrder `json:"order,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   any            `json:"error,omitempty"`
}

// OrderSummary is a short listing row used by the diagnostic endpoints.
type OrderSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	OrderNumber int64  `json:"order_number"`
	Email       string `json:"email"`
	CreatedAt   string `json:"created_at"`
	TotalPrice  string `json:"total_price"`
}

// Shop is the subset of GET /shop.json used to verify credentials.
type Shop struct {
	Name     string `json:"name"`
	PlanName string `json:"plan_name"`
	Domain   string `json:"domain"`
}

// StatusUpdateRequest is the body of the fulfillment status update endpoint.
type StatusUpdateRequest struct {
	OrderID int64 `json:"orderId" validate:"required,gt=0"`
}

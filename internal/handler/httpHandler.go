package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"order-tracker/internal/config"
	"order-tracker/internal/logger/sl"
	"order-tracker/internal/models"
	"order-tracker/internal/service"
	"order-tracker/internal/shopify"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	msgInvalidBody     = "order number and email are required"
	msgUnavailable     = "the store API is temporarily unavailable, try again later"
	msgRejected        = "the store API rejected the request"
	msgMalformed       = "the store API returned an unreadable response"
	msgInternal        = "internal server error"
	msgNotFoundRoute   = "route not found"
	msgStatusUpdated   = "order marked as fulfilled"
	msgInvalidStatusIn = "orderId must be a positive number"
)

// checkedVersions are the admin API versions tried by the version check.
var checkedVersions = []string{"2024-10", "2024-07", "2024-04", "2024-01", "2023-10", "2023-07"}

//go:generate mockery --name=OrderProvider --output=./mocks --case=underscore
type OrderProvider interface {
	SearchOrder(ctx context.Context, q models.OrderQuery) (models.SearchResponse, error)
	MarkFulfilled(ctx context.Context, req models.StatusUpdateRequest) error
	ListOrders(ctx context.Context, email string) ([]models.OrderSummary, error)
}

// StoreChecker checks credentials and API versions against the store.
//
//go:generate mockery --name=StoreChecker --output=./mocks --case=underscore
type StoreChecker interface {
	GetShop(ctx context.Context) (models.Shop, error)
	CheckVersion(ctx context.Context, version string) (models.Shop, error)
}

type OrderHandler struct {
	service OrderProvider
	checker StoreChecker
	store   config.ShopifyConfig
	log     *slog.Logger
	now     func() time.Time
}

func NewOrderHandler(s OrderProvider, checker StoreChecker, store config.ShopifyConfig, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: s,
		checker: checker,
		store:   store,
		log:     log.With(slog.String("component", "handler")),
		now:     time.Now,
	}
}

// SearchOrderHandler resolves {orderNumber, email} into the public order.
// A missing order is answered with 200 and success false.
func (h *OrderHandler) SearchOrderHandler(c *gin.Context) {
	var q models.OrderQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.SearchResponse{Success: false, Message: msgInvalidBody})
		return
	}
	ctx := c.Request.Context()

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("http.request.order_number", string(q.OrderNumber)))

	resp, err := h.service.SearchOrder(ctx, q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HealthHandler reports liveness and whether store credentials are set.
func (h *OrderHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "OK",
		"shopifyConfigured": h.store.Configured(),
		"shopifyDomain":     h.store.Domain,
		"apiVersion":        h.store.APIVersion,
		"timestamp":         h.now().UTC().Format(time.RFC3339),
	})
}

func (h *OrderHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.SearchResponse{Success: false, Message: msgInvalidStatusIn})
		return
	}

	if err := h.service.MarkFulfilled(c.Request.Context(), req); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SearchResponse{Success: true, Message: msgStatusUpdated})
}

// DebugTokenHandler calls shop.json with the configured credentials.
func (h *OrderHandler) DebugTokenHandler(c *gin.Context) {
	ctx := c.Request.Context()
	h.log.InfoContext(ctx, "token check",
		slog.String("domain", h.store.Domain),
		slog.String("api_version", h.store.APIVersion),
		slog.String("token", h.store.MaskedToken()),
	)

	shop, err := h.checker.GetShop(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "access token is valid",
		"shop":    shop,
		"token":   h.store.MaskedToken(),
	})
}

type versionResult struct {
	Version    string `json:"version"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode,omitempty"`
	ShopName   string `json:"shopName,omitempty"`
	Error      string `json:"error,omitempty"`
}

// TestAPIVersionsHandler tries shop.json against every known API version.
func (h *OrderHandler) TestAPIVersionsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	results := make([]versionResult, 0, len(checkedVersions))
	for _, v := range checkedVersions {
		res := versionResult{Version: v}
		shop, err := h.checker.CheckVersion(ctx, v)
		var rejected *shopify.RejectedError
		switch {
		case err == nil:
			res.Success = true
			res.StatusCode = http.StatusOK
			res.ShopName = shop.Name
		case errors.As(err, &rejected):
			res.StatusCode = rejected.StatusCode
			res.Error = rejected.Reason()
		default:
			res.Error = err.Error()
		}
		results = append(results, res)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"currentVersion": h.store.APIVersion,
		"results":        results,
	})
}

func (h *OrderHandler) DebugOrdersHandler(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

func notFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.SearchResponse{Success: false, Message: msgNotFoundRoute})
}

// Diagnostic kinds sent in the error field when there is no upstream body.
const (
	kindUpstreamUnavailable = "upstream_unavailable"
	kindUpstreamMalformed   = "upstream_malformed"
	kindInternal            = "internal"
)

func diagnostic(kind string) gin.H {
	return gin.H{"kind": kind}
}

// writeError maps service and upstream errors to the response envelope.
func (h *OrderHandler) writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	var rejected *shopify.RejectedError

	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, models.SearchResponse{Success: false, Message: err.Error()})
	case errors.Is(err, shopify.ErrUpstreamUnavailable):
		h.log.WarnContext(ctx, "store API unavailable", sl.Err(err), sl.Traced(ctx))
		c.JSON(http.StatusServiceUnavailable, models.SearchResponse{
			Success: false,
			Message: msgUnavailable,
			Error:   diagnostic(kindUpstreamUnavailable),
		})
	case errors.Is(err, shopify.ErrUpstreamMalformed):
		h.log.ErrorContext(ctx, "store API response malformed", sl.Err(err), sl.Traced(ctx))
		c.JSON(http.StatusBadGateway, models.SearchResponse{
			Success: false,
			Message: msgMalformed,
			Error:   diagnostic(kindUpstreamMalformed),
		})
	case errors.As(err, &rejected):
		status := rejected.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		h.log.WarnContext(ctx, "store API rejected request",
			slog.Int("upstream_status", rejected.StatusCode),
			slog.String("reason", rejected.Reason()),
			sl.Traced(ctx),
		)
		c.JSON(status, models.SearchResponse{Success: false, Message: msgRejected, Error: rejected.Payload()})
	default:
		h.log.ErrorContext(ctx, "request failed", sl.Err(err), sl.Traced(ctx))
		c.JSON(http.StatusInternalServerError, models.SearchResponse{
			Success: false,
			Message: msgInternal,
			Error:   diagnostic(kindInternal),
		})
	}
}

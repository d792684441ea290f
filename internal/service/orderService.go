// Package service holds the lookup use cases: it validates the customer
// input, asks the store for candidate orders and hands them to the resolver.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"order-tracker/internal/logger/sl"
	"order-tracker/internal/metric"
	"order-tracker/internal/models"
	"order-tracker/internal/resolver"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrValidation is returned before any upstream call when the input is incomplete.
var ErrValidation = errors.New("validation failed")

const (
	msgRequiredFields = "order number and email are required"
	debugListLimit    = 10
)

// OrderFetcher is the store admin API as seen by the service.
//
//go:generate mockery --name=OrderFetcher --output=./mocks --case=underscore
type OrderFetcher interface {
	FetchCandidateOrders(ctx context.Context, email, exactName string) ([]models.RawOrder, error)
	ListOrders(ctx context.Context, email string, limit int) ([]models.RawOrder, error)
	MarkOrderFulfilled(ctx context.Context, orderID int64) error
}

type OrderService struct {
	fetcher  OrderFetcher
	validate *validator.Validate
	log      *slog.Logger
}

func NewOrderService(fetcher OrderFetcher, log *slog.Logger) *OrderService {
	return &OrderService{
		fetcher:  fetcher,
		validate: validator.New(),
		log:      log.With(slog.String("component", "orderService")),
	}
}

// SearchOrder looks up one order of a customer. A missing order is a normal
// outcome: the envelope has Success false and the error is nil.
func (s *OrderService) SearchOrder(ctx context.Context, q models.OrderQuery) (models.SearchResponse, error) {
	ctx, span := otel.Tracer("orderService").Start(ctx, "Service.SearchOrder")
	defer span.End()

	if err := s.validate.Struct(q); err != nil {
		metric.LookupsTotal.WithLabelValues("invalid").Inc()
		return models.SearchResponse{}, fmt.Errorf("%w: %s", ErrValidation, msgRequiredFields)
	}

	requested := string(q.OrderNumber)
	span.SetAttributes(attribute.String("order.number", resolver.NormalizeOrderNumber(requested)))

	candidates, err := s.fetcher.FetchCandidateOrders(ctx, q.Email, "")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch candidate orders")
		metric.LookupsTotal.WithLabelValues("error").Inc()
		s.log.ErrorContext(ctx, "fetch candidate orders", sl.Err(err), sl.Traced(ctx))
		return models.SearchResponse{}, fmt.Errorf("fetch candidate orders: %w", err)
	}
	span.SetAttributes(attribute.Int("order.candidates", len(candidates)))

	order, ok := resolver.Resolve(candidates, requested)
	if !ok {
		span.AddEvent("order not found")
		metric.LookupsTotal.WithLabelValues("not_found").Inc()
		s.log.InfoContext(ctx, "order not found",
			slog.String("order_number", requested),
			slog.Int("candidates", len(candidates)),
		)
		return models.SearchResponse{Success: false, Message: resolver.NotFoundMessage}, nil
	}

	span.AddEvent("order resolved")
	span.SetAttributes(attribute.Bool("order.tracking", order.CoordinadoraTracking != nil))
	metric.LookupsTotal.WithLabelValues("found").Inc()
	s.log.InfoContext(ctx, "order resolved",
		slog.Int64("order_id", order.ID),
		slog.Bool("has_tracking", order.CoordinadoraTracking != nil),
	)

	return models.SearchResponse{Success: true, Order: &order}, nil
}

// MarkFulfilled sets the fulfillment status of an order to fulfilled.
func (s *OrderService) MarkFulfilled(ctx context.Context, req models.StatusUpdateRequest) error {
	ctx, span := otel.Tracer("orderService").Start(ctx, "Service.MarkFulfilled")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: orderId must be a positive number", ErrValidation)
	}
	span.SetAttributes(attribute.Int64("order.id", req.OrderID))

	if err := s.fetcher.MarkOrderFulfilled(ctx, req.OrderID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mark order fulfilled")
		s.log.ErrorContext(ctx, "mark order fulfilled", slog.Int64("order_id", req.OrderID), sl.Err(err))
		return fmt.Errorf("mark order %d fulfilled: %w", req.OrderID, err)
	}

	s.log.InfoContext(ctx, "order marked fulfilled", slog.Int64("order_id", req.OrderID))
	return nil
}

// ListOrders returns a short summary of the latest orders of an email.
func (s *OrderService) ListOrders(ctx context.Context, email string) ([]models.OrderSummary, error) {
	ctx, span := otel.Tracer("orderService").Start(ctx, "Service.ListOrders")
	defer span.End()

	if err := s.validate.Var(email, "required"); err != nil {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	orders, err := s.fetcher.ListOrders(ctx, email, debugListLimit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list orders")
		return nil, fmt.Errorf("list orders: %w", err)
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, models.OrderSummary{
			ID:          o.ID,
			Name:        o.Name,
			OrderNumber: o.OrderNumber,
			Email:       o.Email,
			CreatedAt:   o.CreatedAt,
			TotalPrice:  o.TotalPrice,
		})
	}
	span.SetAttributes(attribute.Int("order.count", len(summaries)))

	return summaries, nil
}

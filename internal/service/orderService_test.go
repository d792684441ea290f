package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"order-tracker/internal/models"
	"order-tracker/internal/resolver"
	"order-tracker/internal/service/mocks"
	"order-tracker/internal/shopify"

	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*mocks.OrderFetcher, *OrderService) {
	mockFetcher := mocks.NewOrderFetcher(t)
	svc := NewOrderService(mockFetcher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return mockFetcher, svc
}

func ptr(s string) *string { return &s }

func TestOrderService_SearchOrder_Found(t *testing.T) {
	// Arrange
	mockFetcher, svc := setup(t)
	email := "a@b.com"
	candidates := []models.RawOrder{
		{ID: 1, Name: "#1001", OrderNumber: 1001, Email: email},
		{
			ID:           2,
			Name:         "#1002",
			OrderNumber:  1002,
			Email:        email,
			Fulfillments: []models.RawFulfillment{{TrackingNumber: ptr("COORD123")}},
		},
	}
	mockFetcher.On("FetchCandidateOrders", mock.Anything, email, "").Return(candidates, nil)

	// Act
	resp, err := svc.SearchOrder(context.Background(), models.OrderQuery{OrderNumber: "#1002 ", Email: email})

	// Assert
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Order)
	assert.Equal(t, int64(2), resp.Order.ID)
	assert.Equal(t, "COORD123", *resp.Order.CoordinadoraTracking)
}

func TestOrderService_SearchOrder_NotFound(t *testing.T) {
	gofakeit.Seed(1)
	email := gofakeit.Email()

	t.Run("no candidates", func(t *testing.T) {
		mockFetcher, svc := setup(t)
		mockFetcher.On("FetchCandidateOrders", mock.Anything, email, "").Return([]models.RawOrder{}, nil)

		resp, err := svc.SearchOrder(context.Background(), models.OrderQuery{OrderNumber: "1001", Email: email})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Nil(t, resp.Order)
		assert.Equal(t, resolver.NotFoundMessage, resp.Message)
	})

	t.Run("no matching number", func(t *testing.T) {
		mockFetcher, svc := setup(t)
		mockFetcher.On("FetchCandidateOrders", mock.Anything, email, "").
			Return([]models.RawOrder{{ID: 1, Name: "#1001", OrderNumber: 1001}}, nil)

		resp, err := svc.SearchOrder(context.Background(), models.OrderQuery{OrderNumber: "2002", Email: email})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, resolver.NotFoundMessage, resp.Message)
	})
}

func TestOrderService_SearchOrder_Validation(t *testing.T) {
	tests := map[string]models.OrderQuery{
		"missing order number": {Email: "a@b.com"},
		"missing email":        {OrderNumber: "1001"},
		"both missing":         {},
	}
	for name, q := range tests {
		t.Run(name, func(t *testing.T) {
			mockFetcher, svc := setup(t)

			_, err := svc.SearchOrder(context.Background(), q)

			assert.ErrorIs(t, err, ErrValidation)
			mockFetcher.AssertNotCalled(t, "FetchCandidateOrders", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_SearchOrder_UpstreamErrors(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		mockFetcher, svc := setup(t)
		upstreamErr := errors.Join(shopify.ErrUpstreamUnavailable, errors.New("dial tcp: connection refused"))
		mockFetcher.On("FetchCandidateOrders", mock.Anything, "a@b.com", "").Return(nil, upstreamErr)

		_, err := svc.SearchOrder(context.Background(), models.OrderQuery{OrderNumber: "1", Email: "a@b.com"})

		assert.ErrorIs(t, err, shopify.ErrUpstreamUnavailable)
	})

	t.Run("rejected", func(t *testing.T) {
		mockFetcher, svc := setup(t)
		mockFetcher.On("FetchCandidateOrders", mock.Anything, "a@b.com", "").
			Return(nil, &shopify.RejectedError{StatusCode: 401})

		_, err := svc.SearchOrder(context.Background(), models.OrderQuery{OrderNumber: "1", Email: "a@b.com"})

		var rejected *shopify.RejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, 401, rejected.StatusCode)
	})
}

func TestOrderService_MarkFulfilled(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockFetcher, svc := setup(t)
		mockFetcher.On("MarkOrderFulfilled", mock.Anything, int64(42)).Return(nil)

		assert.NoError(t, svc.MarkFulfilled(context.Background(), models.StatusUpdateRequest{OrderID: 42}))
	})

	t.Run("invalid id", func(t *testing.T) {
		mockFetcher, svc := setup(t)

		err := svc.MarkFulfilled(context.Background(), models.StatusUpdateRequest{})

		assert.ErrorIs(t, err, ErrValidation)
		mockFetcher.AssertNotCalled(t, "MarkOrderFulfilled", mock.Anything, mock.Anything)
	})

	t.Run("upstream error", func(t *testing.T) {
		mockFetcher, svc := setup(t)
		mockFetcher.On("MarkOrderFulfilled", mock.Anything, int64(7)).Return(&shopify.RejectedError{StatusCode: 403})

		err := svc.MarkFulfilled(context.Background(), models.StatusUpdateRequest{OrderID: 7})

		var rejected *shopify.RejectedError
		assert.ErrorAs(t, err, &rejected)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Run("summaries", func(t *testing.T) {
		mockFetcher, svc := setup(t)
		mockFetcher.On("ListOrders", mock.Anything, "a@b.com", 10).Return([]models.RawOrder{
			{ID: 1, Name: "#1001", OrderNumber: 1001, Email: "a@b.com", TotalPrice: "10.00"},
		}, nil)

		got, err := svc.ListOrders(context.Background(), "a@b.com")

		require.NoError(t, err)
		assert.Equal(t, []models.OrderSummary{
			{ID: 1, Name: "#1001", OrderNumber: 1001, Email: "a@b.com", TotalPrice: "10.00"},
		}, got)
	})

	t.Run("empty email", func(t *testing.T) {
		mockFetcher, svc := setup(t)

		_, err := svc.ListOrders(context.Background(), "")

		assert.ErrorIs(t, err, ErrValidation)
		mockFetcher.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything, mock.Anything)
	})
}

package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"
	"storefront-client/internal/models"
)

// ErrEmptyCart rejects a submission before any network call is made.
var ErrEmptyCart = errors.New("cart is empty")

// Service is the order submission pipeline. It serializes a cart snapshot
// plus delivery metadata into the backend's order payload, performs exactly
// one network call, and interprets the result. It never touches the cart:
// clearing after success is the caller's decision.
type Service struct {
	api    *api.Client
	logger *logger.Logger
}

// NewService creates the submission pipeline.
func NewService(client *api.Client, log *logger.Logger) *Service {
	return &Service{
		api:    client,
		logger: log,
	}
}

// Submit places an order for the given cart snapshot. lines must be the
// cart's List() output; its order is preserved in the payload. Fails with
// ErrEmptyCart or a ValidationError before dispatch, and with a
// TransportError or BackendRejection after.
func (s *Service) Submit(ctx context.Context, session models.Session, lines []models.LineItem, details models.DeliveryDetails) (*models.OrderConfirmation, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	requestID := logger.GenerateRequestID()
	request := buildRequest(session.CustomerID, lines, details)

	s.logger.Info("order_submitting", "Submitting order", requestID, map[string]interface{}{
		"customer_id": session.CustomerID,
		"line_count":  len(request.Items),
	})

	envelope, err := s.api.Post(ctx, api.PathPlaceOrder, request, requestID)
	if err != nil {
		s.logger.Error("order_submit_failed", "Order submission failed", requestID, err, nil)
		return nil, err
	}

	if !envelope.Success {
		s.logger.Warn("order_rejected", "Backend rejected the order", requestID, map[string]interface{}{
			"message": envelope.Message,
		})
		return nil, &api.BackendRejection{Message: envelope.Message}
	}

	var confirmation models.OrderConfirmation
	if err := json.Unmarshal(envelope.Data, &confirmation); err != nil {
		return nil, fmt.Errorf("failed to parse order confirmation: %w", err)
	}

	s.logger.Info("order_placed", "Order placed successfully", requestID, map[string]interface{}{
		"order_id": confirmation.OrderID,
		"order_no": confirmation.OrderNo,
	})

	return &confirmation, nil
}

// buildRequest maps the cart snapshot to the wire payload. Line order
// matches cart display order so server logs stay reproducible.
func buildRequest(customerID string, lines []models.LineItem, details models.DeliveryDetails) models.PlaceOrderRequest {
	items := make([]models.PlaceOrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.PlaceOrderItem{
			ItemID:   line.ItemID,
			LotNo:    line.LotNo,
			Quantity: line.OrderedQuantity,
		})
	}

	orderDate := details.OrderDate
	if orderDate == "" {
		orderDate = models.Today()
	}

	return models.PlaceOrderRequest{
		CustomerID:      customerID,
		Items:           items,
		OrderDate:       orderDate,
		DeliveryDate:    details.DeliveryDate,
		TransporterName: details.TransporterName,
		Remarks:         details.Remarks,
	}
}

package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"
	"storefront-client/internal/models"
)

// ErrNoOrders is the non-fatal empty state: the backend reported no rows.
var ErrNoOrders = errors.New("no order history")

// Service fetches flat order-line rows and folds them into per-order
// groups for display. Results are recomputed on every fetch.
type Service struct {
	api    *api.Client
	logger *logger.Logger
}

// NewService creates the history aggregator.
func NewService(client *api.Client, log *logger.Logger) *Service {
	return &Service{
		api:    client,
		logger: log,
	}
}

// Fetch retrieves the history feed grouped by order, newest order first.
func (s *Service) Fetch(ctx context.Context) ([]models.GroupedOrder, error) {
	requestID := logger.GenerateRequestID()

	envelope, err := s.api.Get(ctx, api.PathOrderHistory, nil, requestID)
	if err != nil {
		s.logger.Error("history_fetch_failed", "Failed to fetch order history", requestID, err, nil)
		return nil, err
	}

	if !envelope.Success || len(envelope.Data) == 0 {
		return nil, ErrNoOrders
	}

	var lines []models.OrderHistoryLine
	if err := json.Unmarshal(envelope.Data, &lines); err != nil {
		return nil, fmt.Errorf("failed to parse order history: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrNoOrders
	}

	grouped := Group(lines)

	s.logger.Debug("history_fetched", "Fetched order history", requestID, map[string]interface{}{
		"line_count":  len(lines),
		"order_count": len(grouped),
	})

	return grouped, nil
}

// Group folds flat history lines into one group per order ID. Lines keep
// their arrival order within a group, and the group's date is the first
// observed date for that order. Groups are sorted by date descending; the
// sort is stable, so groups sharing a date keep their first-seen order.
func Group(lines []models.OrderHistoryLine) []models.GroupedOrder {
	index := make(map[int]int)
	grouped := make([]models.GroupedOrder, 0)

	for _, line := range lines {
		i, ok := index[line.OrderID]
		if !ok {
			i = len(grouped)
			index[line.OrderID] = i
			grouped = append(grouped, models.GroupedOrder{
				OrderID:   line.OrderID,
				OrderDate: line.OrderDate,
			})
		}
		grouped[i].Items = append(grouped[i].Items, line)
	}

	sort.SliceStable(grouped, func(a, b int) bool {
		return models.ParseOrderDate(grouped[a].OrderDate).After(models.ParseOrderDate(grouped[b].OrderDate))
	})

	return grouped
}

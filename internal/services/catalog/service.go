package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"
	"storefront-client/internal/models"
)

// Service reads the catalog: categories, items, and per-item stock. The
// stock rows it returns seed the quantity selection flow.
type Service struct {
	api    *api.Client
	logger *logger.Logger
}

// NewService creates the catalog reader.
func NewService(client *api.Client, log *logger.Logger) *Service {
	return &Service{
		api:    client,
		logger: log,
	}
}

// Categories lists the category/sub-category rows.
func (s *Service) Categories(ctx context.Context) ([]models.CategoryRow, error) {
	var rows []models.CategoryRow
	if err := s.fetch(ctx, api.PathItemCategories, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ItemsBySubCategory lists the items under one sub-category.
func (s *Service) ItemsBySubCategory(ctx context.Context, subCategoryID int) ([]models.CatalogItem, error) {
	query := url.Values{"subCategoryId": []string{strconv.Itoa(subCategoryID)}}

	var items []models.CatalogItem
	if err := s.fetch(ctx, api.PathItemsBySubCategory, query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ItemStock lists an item's lots with their available quantities.
func (s *Service) ItemStock(ctx context.Context, itemID int) ([]models.CatalogLot, error) {
	query := url.Values{"itemId": []string{strconv.Itoa(itemID)}}

	var lots []models.CatalogLot
	if err := s.fetch(ctx, api.PathItemStock, query, &lots); err != nil {
		return nil, err
	}
	return lots, nil
}

func (s *Service) fetch(ctx context.Context, path string, query url.Values, out interface{}) error {
	requestID := logger.GenerateRequestID()

	envelope, err := s.api.Get(ctx, path, query, requestID)
	if err != nil {
		s.logger.Error("catalog_fetch_failed", "Catalog request failed", requestID, err, map[string]interface{}{
			"path": path,
		})
		return err
	}

	if !envelope.Success {
		return &api.BackendRejection{Message: envelope.Message}
	}

	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse catalog response: %w", err)
	}
	return nil
}

package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"
)

func newService(baseURL string) *Service {
	log := logger.New("catalog-test")
	return NewService(api.NewClient(baseURL, 2*time.Second, log), log)
}

func TestItemStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sf/getItemDetailswithStock", r.URL.Path)
		assert.Equal(t, "11", r.URL.Query().Get("itemId"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":[
			{"ITEM_ID":11,"ITEM_NAME":"Cashew W320","LOT_NO":"LOT-A","VAKAL_NO":"VK-1","ITEM_MARKS":"M1","UNIT_NAME":"BAG","AVAILABLE_QTY":120.5,"NET_QUANTITY":118},
			{"ITEM_ID":11,"ITEM_NAME":"Cashew W320","LOT_NO":"LOT-B","VAKAL_NO":"VK-2","ITEM_MARKS":"","UNIT_NAME":"BAG","AVAILABLE_QTY":30,"NET_QUANTITY":30}
		]}`)
	}))
	defer server.Close()

	lots, err := newService(server.URL).ItemStock(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, "LOT-A", lots[0].LotNo)
	assert.Equal(t, 120.5, lots[0].AvailableQty)
	assert.Equal(t, "BAG", lots[1].UnitName)
}

func TestCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sf/getItemCatSubCat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":[
			{"CATEGORY_ID":1,"CATEGORY_NAME":"Dry Fruits","SUB_CATEGORY_ID":4,"SUB_CATEGORY_NAME":"Cashew"}
		]}`)
	}))
	defer server.Close()

	rows, err := newService(server.URL).Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cashew", rows[0].SubCategoryName)
}

func TestItemsBySubCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sf/getItemsBySubCategory", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("subCategoryId"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":[{"ITEM_ID":11,"ITEM_NAME":"Cashew W320","UNIT_NAME":"BAG"}]}`)
	}))
	defer server.Close()

	items, err := newService(server.URL).ItemsBySubCategory(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 11, items[0].ItemID)
}

func TestBackendFailureIsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":false,"message":"catalog offline"}`)
	}))
	defer server.Close()

	_, err := newService(server.URL).Categories(context.Background())
	var rejection *api.BackendRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "catalog offline", rejection.Message)
}

func TestEmptyDataYieldsEmptySlice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true}`)
	}))
	defer server.Close()

	lots, err := newService(server.URL).ItemStock(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, lots)
}

package history

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
	"storefront-client/internal/models"
)

func line(orderID int, date string, itemID int) models.OrderHistoryLine {
	return models.OrderHistoryLine{
		OrderID:   orderID,
		ItemID:    itemID,
		ItemName:  "Cashew W320",
		OrderDate: date,
		Quantity:  2,
		LotNo:     "LOT-1",
	}
}

func TestGroupCollectsLinesPerOrder(t *testing.T) {
	grouped := Group([]models.OrderHistoryLine{
		line(1, "2024-01-02", 10),
		line(2, "2024-01-01", 20),
		line(1, "2024-01-02", 30),
		line(1, "2024-01-02", 40),
	})

	require.Len(t, grouped, 2)

	first := grouped[0]
	assert.Equal(t, 1, first.OrderID)
	require.Len(t, first.Items, 3)
	assert.Equal(t, []int{10, 30, 40}, []int{first.Items[0].ItemID, first.Items[1].ItemID, first.Items[2].ItemID},
		"lines keep arrival order within a group")

	assert.Equal(t, 2, grouped[1].OrderID)
}

func TestGroupSortsByDateDescendingStable(t *testing.T) {
	// A is oldest; B and C share a date and arrive in that order.
	grouped := Group([]models.OrderHistoryLine{
		line(100, "2024-01-02", 1), // A
		line(200, "2024-01-05", 2), // B
		line(300, "2024-01-05", 3), // C
	})

	require.Len(t, grouped, 3)
	assert.Equal(t, []int{200, 300, 100}, []int{grouped[0].OrderID, grouped[1].OrderID, grouped[2].OrderID},
		"ties keep first-seen order")
}

func TestGroupDateFromFirstObservedLine(t *testing.T) {
	grouped := Group([]models.OrderHistoryLine{
		line(1, "2024-03-10", 10),
		line(1, "2024-03-11", 20), // divergent date on a later line is ignored
	})

	require.Len(t, grouped, 1)
	assert.Equal(t, "2024-03-10", grouped[0].OrderDate)
	assert.Len(t, grouped[0].Items, 2)
}

func TestGroupUnparseableDatesSortLast(t *testing.T) {
	grouped := Group([]models.OrderHistoryLine{
		line(1, "not-a-date", 10),
		line(2, "2024-01-05", 20),
	})

	require.Len(t, grouped, 2)
	assert.Equal(t, 2, grouped[0].OrderID)
	assert.Equal(t, 1, grouped[1].OrderID)
}

func newService(baseURL string) *Service {
	log := logger.New("history-test")
	return NewService(api.NewClient(baseURL, 2*time.Second, log), log)
}

func TestFetchGroupsBackendRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sf/getOrderHistory", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":[
			{"ORDER_ID":7,"CUSTOMERID":"1279","ITEM_ID":1,"ITEM_NAME":"Cashew W320","ORDER_DATE":"2024-01-05","QUANTITY":4,"LOT_NO":"LOT-1"},
			{"ORDER_ID":5,"CUSTOMERID":"1279","ITEM_ID":2,"ITEM_NAME":"Almond NP","ORDER_DATE":"2024-01-02","QUANTITY":1,"LOT_NO":"LOT-9"},
			{"ORDER_ID":7,"CUSTOMERID":"1279","ITEM_ID":3,"ITEM_NAME":"Raisin","ORDER_DATE":"2024-01-05","QUANTITY":2,"LOT_NO":"LOT-2"}
		]}`)
	}))
	defer server.Close()

	grouped, err := newService(server.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, grouped, 2)
	assert.Equal(t, 7, grouped[0].OrderID)
	assert.Len(t, grouped[0].Items, 2)
	assert.Equal(t, 5, grouped[1].OrderID)
	assert.False(t, grouped[0].IsExpanded, "groups start collapsed")
}

func TestFetchEmptyStates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no data field", body: `{"success":true}`},
		{name: "empty array", body: `{"success":true,"data":[]}`},
		{name: "backend reports failure", body: `{"success":false,"message":"no rows"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := newService(server.URL).Fetch(context.Background())
			require.ErrorIs(t, err, ErrNoOrders)
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newService(server.URL).Fetch(context.Background())
	var transport *api.TransportError
	require.ErrorAs(t, err, &transport)
}

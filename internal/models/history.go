package models

import "time"

// OrderHistoryLine is one flat row of the order history feed.
type OrderHistoryLine struct {
	OrderID    int    `json:"ORDER_ID"`
	CustomerID string `json:"CUSTOMERID"`
	ItemID     int    `json:"ITEM_ID"`
	ItemName   string `json:"ITEM_NAME"`
	OrderDate  string `json:"ORDER_DATE"`
	Quantity   int    `json:"QUANTITY"`
	LotNo      string `json:"LOT_NO"`
}

// GroupedOrder collects the history lines sharing one order ID. OrderDate
// is taken from the first line observed for the group. IsExpanded is
// display state owned by the caller.
type GroupedOrder struct {
	OrderID    int
	OrderDate  string
	Items      []OrderHistoryLine
	IsExpanded bool
}

// historyDateLayouts are tried in order when sorting groups.
var historyDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseOrderDate parses a history date string. Unparseable dates return the
// zero time, which sorts such groups last.
func ParseOrderDate(s string) time.Time {
	for _, layout := range historyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

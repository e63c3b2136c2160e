package models

// LineKey identifies a cart line. The same item can appear once per lot.
type LineKey struct {
	ItemID int
	LotNo  string
}

// LineItem is one orderable unit: an item from a specific lot with a
// user-chosen quantity. Field names mirror the backend's stock rows.
type LineItem struct {
	ItemID          int     `json:"ITEM_ID"`
	ItemName        string  `json:"ITEM_NAME"`
	LotNo           string  `json:"LOT_NO"`
	VakalNo         string  `json:"VAKAL_NO"`
	ItemMarks       string  `json:"ITEM_MARKS"`
	UnitName        string  `json:"UNIT_NAME"`
	AvailableQty    float64 `json:"AVAILABLE_QTY"`
	NetQuantity     float64 `json:"NET_QUANTITY"`
	OrderedQuantity int     `json:"ORDERED_QUANTITY"`
}

// Key returns the identity of this line within a cart.
func (li LineItem) Key() LineKey {
	return LineKey{ItemID: li.ItemID, LotNo: li.LotNo}
}

// Validate checks the quantity invariant: 0 < ordered <= available.
func (li LineItem) Validate() error {
	if li.OrderedQuantity <= 0 {
		return ValidationError{
			Field:   "ordered_quantity",
			Message: "ordered quantity must be greater than 0",
		}
	}
	if float64(li.OrderedQuantity) > li.AvailableQty {
		return ValidationError{
			Field:   "ordered_quantity",
			Message: "ordered quantity exceeds available stock",
		}
	}
	return nil
}

// NewLineItem builds a cart line from a catalog stock row.
func NewLineItem(lot CatalogLot, quantity int) LineItem {
	return LineItem{
		ItemID:          lot.ItemID,
		ItemName:        lot.ItemName,
		LotNo:           lot.LotNo,
		VakalNo:         lot.VakalNo,
		ItemMarks:       lot.ItemMarks,
		UnitName:        lot.UnitName,
		AvailableQty:    lot.AvailableQty,
		NetQuantity:     lot.NetQuantity,
		OrderedQuantity: quantity,
	}
}

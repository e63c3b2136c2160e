package models

// CategoryRow is one row of the category/sub-category listing.
type CategoryRow struct {
	CategoryID      int    `json:"CATEGORY_ID"`
	CategoryName    string `json:"CATEGORY_NAME"`
	SubCategoryID   int    `json:"SUB_CATEGORY_ID"`
	SubCategoryName string `json:"SUB_CATEGORY_NAME"`
}

// CatalogItem is one item within a sub-category.
type CatalogItem struct {
	ItemID   int    `json:"ITEM_ID"`
	ItemName string `json:"ITEM_NAME"`
	UnitName string `json:"UNIT_NAME"`
}

// CatalogLot is one stock row for an item: a lot with its available
// quantity. These seed the quantity selection flow; the ceilings are
// immutable once fetched.
type CatalogLot struct {
	ItemID       int     `json:"ITEM_ID"`
	ItemName     string  `json:"ITEM_NAME"`
	LotNo        string  `json:"LOT_NO"`
	VakalNo      string  `json:"VAKAL_NO"`
	ItemMarks    string  `json:"ITEM_MARKS"`
	UnitName     string  `json:"UNIT_NAME"`
	AvailableQty float64 `json:"AVAILABLE_QTY"`
	NetQuantity  float64 `json:"NET_QUANTITY"`
}

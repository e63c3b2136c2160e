package api

// Backend endpoint paths. These are part of the backend contract.
const (
	PathLogin              = "/sf/getUserAccountID"
	PathItemCategories     = "/sf/getItemCatSubCat"
	PathItemsBySubCategory = "/sf/getItemsBySubCategory"
	PathItemStock          = "/sf/getItemDetailswithStock"
	PathPlaceOrder         = "/sf/placeOrder"
	PathOrderHistory       = "/sf/getOrderHistory"
)

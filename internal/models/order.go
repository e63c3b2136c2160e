package models

import "time"

// DeliveryDetails carries the order-level metadata entered at confirmation.
type DeliveryDetails struct {
	OrderDate       string
	DeliveryDate    string
	TransporterName string
	Remarks         string
}

// Validate checks the fields the backend requires to be non-empty.
func (d DeliveryDetails) Validate() error {
	if d.DeliveryDate == "" {
		return ValidationError{
			Field:   "delivery_date",
			Message: "delivery date is required",
		}
	}
	if d.TransporterName == "" {
		return ValidationError{
			Field:   "transporter_name",
			Message: "transporter name is required",
		}
	}
	return nil
}

// Today returns the order date the original client defaults to.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// PlaceOrderItem is one line of the order payload. Field names are part of
// the backend contract and must be preserved verbatim.
type PlaceOrderItem struct {
	ItemID   int    `json:"ItemID"`
	LotNo    string `json:"LotNo"`
	Quantity int    `json:"Quantity"`
}

// PlaceOrderRequest is the order submission payload.
type PlaceOrderRequest struct {
	CustomerID      string           `json:"CustomerID"`
	Items           []PlaceOrderItem `json:"items"`
	OrderDate       string           `json:"orderDate"`
	DeliveryDate    string           `json:"deliveryDate"`
	TransporterName string           `json:"transporterName"`
	Remarks         string           `json:"remarks"`
}

// OrderConfirmation is the successful submission result, forwarded by the
// caller to the display route.
type OrderConfirmation struct {
	OrderID int    `json:"orderId"`
	OrderNo string `json:"orderNo"`
}

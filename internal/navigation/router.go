package navigation

import (
	"fmt"

	"storefront-client/internal/logger"
	"storefront-client/internal/models"
)

// Route names the screens the core hands results to.
type Route string

const (
	RouteHome         Route = "Home"
	RouteOrderHistory Route = "OrderHistoryScreen"
	RouteLogin        Route = "LoginScreen"
)

// Params is the typed bundle carried across a transition. Exactly the
// payloads the core produces: a fresh confirmation or a grouped order.
type Params struct {
	Confirmation *models.OrderConfirmation
	Order        *models.GroupedOrder
	CustomerID   string
}

// Router is the navigation collaborator. Navigate pushes a named route;
// Reset clears the stack back to a root route with optional seed params.
type Router interface {
	Navigate(route Route, params Params) error
	Reset(route Route, params Params) error
}

// LogRouter records transitions without a screen stack; the CLI renders
// results inline, so a transition is just an audit line.
type LogRouter struct {
	logger *logger.Logger
}

// NewLogRouter creates a router that logs transitions.
func NewLogRouter(log *logger.Logger) *LogRouter {
	return &LogRouter{logger: log}
}

func (r *LogRouter) Navigate(route Route, params Params) error {
	r.logger.Info("navigate", fmt.Sprintf("Navigating to %s", route), "", paramFields(params))
	return nil
}

func (r *LogRouter) Reset(route Route, params Params) error {
	r.logger.Info("navigation_reset", fmt.Sprintf("Resetting stack to %s", route), "", paramFields(params))
	return nil
}

func paramFields(params Params) map[string]interface{} {
	fields := map[string]interface{}{}
	if params.Confirmation != nil {
		fields["order_no"] = params.Confirmation.OrderNo
	}
	if params.Order != nil {
		fields["order_id"] = params.Order.OrderID
	}
	if params.CustomerID != "" {
		fields["customer_id"] = params.CustomerID
	}
	return fields
}

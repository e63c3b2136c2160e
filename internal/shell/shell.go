package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"
	"storefront-client/internal/models"
	"storefront-client/internal/navigation"
	"storefront-client/internal/services/cart"
	"storefront-client/internal/services/catalog"
	"storefront-client/internal/services/history"
	"storefront-client/internal/services/order"
	"storefront-client/internal/services/selection"
	"storefront-client/internal/session"
)

// Shell drives one customer session from a command loop. It owns the
// caller-side responsibilities the core services leave open: blocking
// re-entry while a submit is in flight, clearing the cart after a
// confirmed order, and forwarding results through the navigation router.
type Shell struct {
	sessions *session.Manager
	catalog  *catalog.Service
	orders   *order.Service
	history  *history.Service
	router   navigation.Router
	logger   *logger.Logger
	out      io.Writer

	cart *cart.Store
	flow *selection.Flow

	stock       map[models.LineKey]models.CatalogLot
	lastHistory []models.GroupedOrder
	submitting  bool
}

// New creates a shell with a fresh cart.
func New(sessions *session.Manager, catalogSvc *catalog.Service, orderSvc *order.Service, historySvc *history.Service, router navigation.Router, log *logger.Logger, out io.Writer) *Shell {
	s := &Shell{
		sessions: sessions,
		catalog:  catalogSvc,
		orders:   orderSvc,
		history:  historySvc,
		router:   router,
		logger:   log,
		out:      out,
		stock:    make(map[models.LineKey]models.CatalogLot),
	}
	s.resetCart()
	return s
}

// Run reads commands until EOF, "quit", or context cancellation.
// Cancellation is checked between commands: a blocked read on in is not
// interrupted, so after a signal the loop ends once the current line
// arrives or the reader is closed.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, "storefront client - type 'help' for commands")

	scanner := bufio.NewScanner(in)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		if quit := s.Execute(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Execute runs one command line. It returns true when the session should end.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "help":
		s.printHelp()
	case "login":
		s.cmdLogin(ctx, args[1:])
	case "logout":
		s.cmdLogout()
	case "categories":
		s.cmdCategories(ctx)
	case "items":
		s.cmdItems(ctx, args[1:])
	case "lots":
		s.cmdLots(ctx, args[1:])
	case "add":
		s.cmdAdd(ctx, args[1:])
	case "remove":
		s.cmdRemove(args[1:])
	case "cart":
		s.cmdCart()
	case "clear":
		s.cart.Clear()
		fmt.Fprintln(s.out, "cart cleared")
	case "submit":
		s.cmdSubmit(ctx, args[1:])
	case "history":
		s.cmdHistory(ctx)
	case "open":
		s.cmdOpen(args[1:])
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q - type 'help'\n", args[0])
	}
	return false
}

// Cart exposes the session's cart for inspection.
func (s *Shell) Cart() *cart.Store {
	return s.cart
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `commands:
  login <username> <password>
  logout
  categories
  items <subCategoryId>
  lots <itemId>
  add <itemId> <lotNo> <quantity>
  remove <itemId> <lotNo>
  cart
  clear
  submit <deliveryDate> <transporter> [remarks...]
  history
  open <orderId>
  quit`)
}

func (s *Shell) cmdLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: login <username> <password>")
		return
	}

	requestID := logger.GenerateRequestID()

	sess, err := s.sessions.Login(ctx, args[0], args[1])
	if err != nil {
		s.logger.Warn("login_failed", "Login attempt rejected", requestID, map[string]interface{}{
			"username": args[0],
		})
		s.printError(err)
		return
	}

	// Each login starts an empty ordering session.
	s.resetCart()
	s.logger.Info("login_succeeded", "Customer session established", requestID, map[string]interface{}{
		"customer_id": sess.CustomerID,
	})
	fmt.Fprintf(s.out, "welcome, %s (customer %s)\n", sess.DisplayName, sess.CustomerID)
}

func (s *Shell) cmdLogout() {
	if err := s.sessions.Logout(); err != nil {
		s.printError(err)
		return
	}
	s.resetCart()
	s.logger.Info("logout", "Customer session ended", logger.GenerateRequestID(), nil)
	fmt.Fprintln(s.out, "logged out")
}

func (s *Shell) cmdCategories(ctx context.Context) {
	if !s.requireLogin() {
		return
	}

	rows, err := s.catalog.Categories(ctx)
	if err != nil {
		s.printError(err)
		return
	}
	for _, row := range rows {
		fmt.Fprintf(s.out, "%4d  %-20s %4d  %s\n", row.CategoryID, row.CategoryName, row.SubCategoryID, row.SubCategoryName)
	}
}

func (s *Shell) cmdItems(ctx context.Context, args []string) {
	if !s.requireLogin() {
		return
	}
	subCategoryID, ok := s.parseID(args, "usage: items <subCategoryId>")
	if !ok {
		return
	}

	items, err := s.catalog.ItemsBySubCategory(ctx, subCategoryID)
	if err != nil {
		s.printError(err)
		return
	}
	for _, item := range items {
		fmt.Fprintf(s.out, "%6d  %-30s %s\n", item.ItemID, item.ItemName, item.UnitName)
	}
}

func (s *Shell) cmdLots(ctx context.Context, args []string) {
	if !s.requireLogin() {
		return
	}
	itemID, ok := s.parseID(args, "usage: lots <itemId>")
	if !ok {
		return
	}

	lots, err := s.fetchStock(ctx, itemID)
	if err != nil {
		s.printError(err)
		return
	}
	for _, lot := range lots {
		fmt.Fprintf(s.out, "%6d  lot %-12s vakal %-10s available %g %s\n",
			lot.ItemID, lot.LotNo, lot.VakalNo, lot.AvailableQty, lot.UnitName)
	}
}

func (s *Shell) cmdAdd(ctx context.Context, args []string) {
	if !s.requireLogin() {
		return
	}
	if len(args) != 3 {
		fmt.Fprintln(s.out, "usage: add <itemId> <lotNo> <quantity>")
		return
	}

	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(s.out, "itemId must be a number")
		return
	}
	lotNo := args[1]

	lot, ok := s.stock[models.LineKey{ItemID: itemID, LotNo: lotNo}]
	if !ok {
		if _, err := s.fetchStock(ctx, itemID); err != nil {
			s.printError(err)
			return
		}
		if lot, ok = s.stock[models.LineKey{ItemID: itemID, LotNo: lotNo}]; !ok {
			fmt.Fprintf(s.out, "item %d has no lot %s\n", itemID, lotNo)
			return
		}
	}

	if err := s.flow.Begin(lot); err != nil {
		s.printError(err)
		return
	}
	if seeded := s.flow.Seeded(); seeded > 0 {
		fmt.Fprintf(s.out, "already in cart with quantity %d, updating\n", seeded)
	}

	if err := s.flow.Enter(args[2]); err != nil {
		s.flow.Cancel()
		var invalid selection.InvalidQuantityError
		if errors.As(err, &invalid) {
			switch invalid.Reason {
			case selection.ReasonNonNumeric:
				fmt.Fprintf(s.out, "enter a whole number: %s\n", invalid.Message)
			case selection.ReasonOutOfRange:
				fmt.Fprintf(s.out, "quantity not available: %s\n", invalid.Message)
			}
			return
		}
		s.printError(err)
		return
	}

	item, err := s.flow.Commit()
	if err != nil {
		s.printError(err)
		return
	}
	fmt.Fprintf(s.out, "added %s lot %s x%d (%d lines in cart)\n",
		item.ItemName, item.LotNo, item.OrderedQuantity, s.cart.TotalDistinctLines())
}

func (s *Shell) cmdRemove(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: remove <itemId> <lotNo>")
		return
	}
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(s.out, "itemId must be a number")
		return
	}
	s.cart.Remove(itemID, args[1])
	fmt.Fprintf(s.out, "%d lines in cart\n", s.cart.TotalDistinctLines())
}

func (s *Shell) cmdCart() {
	lines := s.cart.List()
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "cart is empty")
		return
	}
	for _, line := range lines {
		fmt.Fprintf(s.out, "%6d  %-30s lot %-12s x%d %s\n",
			line.ItemID, line.ItemName, line.LotNo, line.OrderedQuantity, line.UnitName)
	}
	fmt.Fprintf(s.out, "%d lines, total quantity %d\n", s.cart.TotalDistinctLines(), s.cart.TotalQuantity())
}

func (s *Shell) cmdSubmit(ctx context.Context, args []string) {
	if !s.requireLogin() {
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(s.out, "usage: submit <deliveryDate> <transporter> [remarks...]")
		return
	}
	if s.submitting {
		fmt.Fprintln(s.out, "a submission is already in flight")
		return
	}
	s.submitting = true
	defer func() { s.submitting = false }()

	details := models.DeliveryDetails{
		DeliveryDate:    args[0],
		TransporterName: args[1],
		Remarks:         strings.Join(args[2:], " "),
	}

	requestID := logger.GenerateRequestID()

	confirmation, err := s.orders.Submit(ctx, s.sessions.Current(), s.cart.List(), details)
	if err != nil {
		// The cart survives every failed submission unchanged.
		s.logger.Error("submit_failed", "Order submission failed", requestID, err, map[string]interface{}{
			"lines": s.cart.TotalDistinctLines(),
		})
		s.printError(err)
		return
	}

	s.logger.Info("submit_succeeded", "Order placed", requestID, map[string]interface{}{
		"order_id": confirmation.OrderID,
		"order_no": confirmation.OrderNo,
	})
	fmt.Fprintf(s.out, "order %s placed (id %d)\n", confirmation.OrderNo, confirmation.OrderID)

	if err := s.router.Navigate(navigation.RouteOrderHistory, navigation.Params{
		Confirmation: confirmation,
		CustomerID:   s.sessions.Current().CustomerID,
	}); err != nil {
		s.printError(err)
	}
	s.cart.Clear()
}

func (s *Shell) cmdHistory(ctx context.Context) {
	if !s.requireLogin() {
		return
	}

	grouped, err := s.history.Fetch(ctx)
	if errors.Is(err, history.ErrNoOrders) {
		fmt.Fprintln(s.out, "no orders yet")
		s.lastHistory = nil
		return
	}
	if err != nil {
		s.printError(err)
		return
	}

	s.lastHistory = grouped
	s.printHistory()
}

func (s *Shell) cmdOpen(args []string) {
	orderID, ok := s.parseID(args, "usage: open <orderId>")
	if !ok {
		return
	}
	for i := range s.lastHistory {
		if s.lastHistory[i].OrderID == orderID {
			s.lastHistory[i].IsExpanded = !s.lastHistory[i].IsExpanded
			s.printHistory()
			return
		}
	}
	fmt.Fprintf(s.out, "no fetched order %d - run 'history' first\n", orderID)
}

func (s *Shell) printHistory() {
	for _, group := range s.lastHistory {
		marker := "+"
		if group.IsExpanded {
			marker = "-"
		}
		fmt.Fprintf(s.out, "%s order #%d  %s  (%d items)\n", marker, group.OrderID, group.OrderDate, len(group.Items))
		if !group.IsExpanded {
			continue
		}
		for _, item := range group.Items {
			fmt.Fprintf(s.out, "    %-30s lot %-12s x%d\n", item.ItemName, item.LotNo, item.Quantity)
		}
	}
}

func (s *Shell) resetCart() {
	s.cart = cart.NewStore()
	s.flow = selection.NewFlow(s.cart)
}

func (s *Shell) requireLogin() bool {
	if s.sessions.Current().Authenticated() {
		return true
	}
	fmt.Fprintln(s.out, "please login first")
	return false
}

func (s *Shell) parseID(args []string, usage string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, usage)
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(s.out, usage)
		return 0, false
	}
	return id, true
}

func (s *Shell) fetchStock(ctx context.Context, itemID int) ([]models.CatalogLot, error) {
	lots, err := s.catalog.ItemStock(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for _, lot := range lots {
		s.stock[models.LineKey{ItemID: lot.ItemID, LotNo: lot.LotNo}] = lot
	}
	return lots, nil
}

func (s *Shell) printError(err error) {
	var rejection *api.BackendRejection
	var transport *api.TransportError
	switch {
	case errors.As(err, &rejection):
		fmt.Fprintf(s.out, "rejected by server: %s\n", rejection.Message)
	case errors.As(err, &transport):
		fmt.Fprintf(s.out, "network problem: %s\n", transport.Message)
	case errors.Is(err, order.ErrEmptyCart):
		fmt.Fprintln(s.out, "cart is empty - add items before submitting")
	default:
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

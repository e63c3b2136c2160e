package selection

import (
	"fmt"
	"strconv"

	"storefront-client/internal/models"
	"storefront-client/internal/services/cart"
)

// State is the selection flow's position in its lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateEditing   State = "editing"
	StateValidated State = "validated"
	StateCommitted State = "committed"
)

// Reason distinguishes why a candidate quantity was rejected, so the
// caller can render distinct messages.
type Reason string

const (
	ReasonNonNumeric Reason = "non_numeric"
	ReasonOutOfRange Reason = "out_of_range"
)

// InvalidQuantityError rejects a candidate quantity during selection.
type InvalidQuantityError struct {
	Reason  Reason
	Message string
}

func (e InvalidQuantityError) Error() string {
	return e.Message
}

// Flow validates a candidate quantity against a lot's available stock
// before admitting a line into the cart. States move
// Idle -> Editing -> Validated -> Committed; a rejected candidate stays
// in Editing, and a successful commit returns the flow to Idle.
type Flow struct {
	cart      *cart.Store
	state     State
	lot       models.CatalogLot
	seeded    int
	validated int
}

// NewFlow creates an idle selection flow over the session's cart.
func NewFlow(store *cart.Store) *Flow {
	return &Flow{
		cart:  store,
		state: StateIdle,
	}
}

// State returns the flow's current state.
func (f *Flow) State() State {
	return f.state
}

// Begin opens the selector for an item+lot pair. If the cart already holds
// a line for the pair, the flow is pre-seeded with its ordered quantity
// instead of starting fresh, so committing again overwrites rather than
// duplicates.
func (f *Flow) Begin(lot models.CatalogLot) error {
	if f.state != StateIdle {
		return fmt.Errorf("selection already in progress for item %d lot %s", f.lot.ItemID, f.lot.LotNo)
	}

	f.lot = lot
	f.seeded = 0
	if existing, ok := f.cart.Get(lot.ItemID, lot.LotNo); ok {
		f.seeded = existing.OrderedQuantity
	}
	f.state = StateEditing
	return nil
}

// Seeded returns the quantity the selector should prefill: the existing
// cart quantity for this pair, or zero.
func (f *Flow) Seeded() int {
	return f.seeded
}

// Lot returns the stock row the flow was opened with.
func (f *Flow) Lot() models.CatalogLot {
	return f.lot
}

// Enter validates a candidate quantity. On rejection the flow stays in
// Editing and the error carries the specific reason.
func (f *Flow) Enter(candidate string) error {
	if f.state != StateEditing {
		return fmt.Errorf("no selection in progress")
	}

	quantity, err := strconv.Atoi(candidate)
	if err != nil {
		return InvalidQuantityError{
			Reason:  ReasonNonNumeric,
			Message: fmt.Sprintf("quantity %q is not a number", candidate),
		}
	}
	if quantity <= 0 {
		return InvalidQuantityError{
			Reason:  ReasonOutOfRange,
			Message: "quantity must be greater than 0",
		}
	}
	if float64(quantity) > f.lot.AvailableQty {
		return InvalidQuantityError{
			Reason:  ReasonOutOfRange,
			Message: fmt.Sprintf("quantity %d exceeds available stock of %s", quantity, strconv.FormatFloat(f.lot.AvailableQty, 'f', -1, 64)),
		}
	}

	f.validated = quantity
	f.state = StateValidated
	return nil
}

// Commit admits the validated line into the cart and returns the flow to
// Idle. Committing the same item+lot pair twice updates the single line.
func (f *Flow) Commit() (models.LineItem, error) {
	if f.state != StateValidated {
		return models.LineItem{}, fmt.Errorf("no validated quantity to commit")
	}

	item := models.NewLineItem(f.lot, f.validated)
	if err := f.cart.Upsert(item); err != nil {
		return models.LineItem{}, err
	}

	f.state = StateCommitted
	f.reset()
	return item, nil
}

// Cancel abandons the selection and returns the flow to Idle.
func (f *Flow) Cancel() {
	f.reset()
}

func (f *Flow) reset() {
	f.state = StateIdle
	f.lot = models.CatalogLot{}
	f.seeded = 0
	f.validated = 0
}

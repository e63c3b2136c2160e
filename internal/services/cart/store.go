package cart

import (
	"storefront-client/internal/models"
)

// Store holds the lines of the active ordering session. One store per
// session; it is never persisted and a fresh one is created at login.
// Not safe for concurrent mutation; the session drives it from a single
// interaction loop.
type Store struct {
	items map[models.LineKey]models.LineItem
	order []models.LineKey
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{
		items: make(map[models.LineKey]models.LineItem),
	}
}

// Upsert inserts a line or overwrites the line sharing (itemId, lotNo).
// An overwrite keeps the line's original display position. Lines that
// violate the quantity bound are rejected and the store is left unchanged.
func (s *Store) Upsert(item models.LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	key := item.Key()
	if _, exists := s.items[key]; !exists {
		s.order = append(s.order, key)
	}
	s.items[key] = item
	return nil
}

// Get returns the line for (itemId, lotNo) if present.
func (s *Store) Get(itemID int, lotNo string) (models.LineItem, bool) {
	item, ok := s.items[models.LineKey{ItemID: itemID, LotNo: lotNo}]
	return item, ok
}

// Remove deletes the line for (itemId, lotNo). Removing an absent line is
// a no-op.
func (s *Store) Remove(itemID int, lotNo string) {
	key := models.LineKey{ItemID: itemID, LotNo: lotNo}
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. Called by the session after a successful
// submission, or at logout.
func (s *Store) Clear() {
	s.items = make(map[models.LineKey]models.LineItem)
	s.order = nil
}

// List returns the lines in insertion order. The returned slice is a
// snapshot; mutating it does not affect the store.
func (s *Store) List() []models.LineItem {
	list := make([]models.LineItem, 0, len(s.order))
	for _, key := range s.order {
		list = append(list, s.items[key])
	}
	return list
}

// TotalQuantity sums the ordered quantities across all lines.
func (s *Store) TotalQuantity() int {
	total := 0
	for _, item := range s.items {
		total += item.OrderedQuantity
	}
	return total
}

// TotalDistinctLines returns the number of lines in the cart.
func (s *Store) TotalDistinctLines() int {
	return len(s.items)
}

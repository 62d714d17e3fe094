// Package memory provides process-lifetime storage backends.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/xenking/uto-pedidos/internal/domain/order"
)

var _ order.Store = (*OrderStore)(nil)

// OrderStore is an append-only, insertion-ordered order store. Appends are
// serialized; List returns a copy so readers never see a partial append.
type OrderStore struct {
	mu     sync.RWMutex
	orders []order.Order
}

// NewOrderStore returns an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

// Append adds o after every previously appended order.
func (s *OrderStore) Append(_ context.Context, o order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
	return nil
}

// List returns all orders in submission order.
func (s *OrderStore) List(_ context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders), nil
}

// Len returns the number of stored orders.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

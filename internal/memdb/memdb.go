// Package memdb owns the process-wide in-memory stores. A single DB is built
// at startup and handed to every repository; tests build a fresh one each.
package memdb

import (
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/store"
)

type DB struct {
	Products   *store.Store[model.Product]
	Categories *store.Store[model.Category]
	Inventory  *store.Store[model.Inventory]
	Movements  *store.Store[model.InventoryMovement]

	// Catalog serializes writes that check one collection and write another,
	// such as a product's category reference against a category delete.
	Catalog sync.Mutex
}

func New() *DB {
	return &DB{
		Products:   store.New[model.Product](),
		Categories: store.New[model.Category](),
		Inventory:  store.New[model.Inventory](),
		Movements:  store.New[model.InventoryMovement](),
	}
}

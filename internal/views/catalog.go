// Package views computes the display state behind each screen: dashboard
// stats, the paged item list and item details. It talks to the API only
// through the small interfaces below.
package views

import (
	"context"
	"io"
	"log"

	"github.com/hongminglow/stockroom/internal/api"
	"github.com/hongminglow/stockroom/internal/models"
)

// Reader lists and fetches one entity type.
type Reader[T any] interface {
	GetAll(ctx context.Context, params api.Params) (models.Page[T], error)
	GetByID(ctx context.Context, id int64) (T, error)
}

// ItemStore is the item resource including writes.
type ItemStore interface {
	Reader[models.Item]
	Create(ctx context.Context, data any) (models.Item, error)
	Update(ctx context.Context, id int64, data any) (models.Item, error)
	Delete(ctx context.Context, id int64) error
}

// Catalog is everything the inventory screens read from.
type Catalog struct {
	Items      ItemStore
	Categories Reader[models.Category]
	Suppliers  Reader[models.Supplier]
	Logger     *log.Logger
}

// CatalogFrom adapts the inventory API.
func CatalogFrom(inv *api.InventoryAPI, logger *log.Logger) Catalog {
	return Catalog{
		Items:      inv.Items,
		Categories: inv.Categories,
		Suppliers:  inv.Suppliers,
		Logger:     logger,
	}
}

func (c Catalog) logf(format string, args ...any) {
	logger := c.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	logger.Printf(format, args...)
}

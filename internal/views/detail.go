package views

import (
	"context"
	"fmt"

	"github.com/hongminglow/stockroom/internal/models"
)

// ItemDetail is one item with its category and supplier resolved when
// possible.
type ItemDetail struct {
	Item     models.Item
	Category *models.Category
	Supplier *models.Supplier
	LowStock bool
}

// LoadItemDetail fetches the item, then its category and supplier. Only the
// item fetch is fatal; the lookups are best effort.
func LoadItemDetail(ctx context.Context, catalog Catalog, id int64) (ItemDetail, error) {
	item, err := catalog.Items.GetByID(ctx, id)
	if err != nil {
		catalog.logf("item fetch error: %v", err)
		return ItemDetail{}, fmt.Errorf("failed to fetch item details: %w", err)
	}

	detail := ItemDetail{Item: item, LowStock: IsLowStock(item)}
	if item.Category != nil {
		if category, err := catalog.Categories.GetByID(ctx, *item.Category); err != nil {
			catalog.logf("category fetch error: %v", err)
		} else {
			detail.Category = &category
		}
	}
	if item.Supplier != nil {
		if supplier, err := catalog.Suppliers.GetByID(ctx, *item.Supplier); err != nil {
			catalog.logf("supplier fetch error: %v", err)
		} else {
			detail.Supplier = &supplier
		}
	}
	return detail, nil
}

// CategoryName is the category label shown on the detail screen.
func (d ItemDetail) CategoryName() string {
	if d.Category == nil {
		return "No category"
	}
	return d.Category.Name
}

package views

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/stockroom/internal/models"
)

// RecentLimit is how many items the dashboard previews.
const RecentLimit = 5

// IsLowStock reports quantity <= threshold. Items missing either value are
// never low stock.
func IsLowStock(item models.Item) bool {
	if item.Quantity == nil || item.LowStockThreshold == nil {
		return false
	}
	return *item.Quantity <= *item.LowStockThreshold
}

// FilterLowStock keeps the low-stock items in order.
func FilterLowStock(items []models.Item) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if IsLowStock(item) {
			out = append(out, item)
		}
	}
	return out
}

// TotalValue sums price * quantity. Unparseable prices and missing
// quantities count as zero.
func TotalValue(items []models.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity == nil {
			continue
		}
		total = total.Add(item.Price.Decimal().Mul(decimal.NewFromInt(int64(*item.Quantity))))
	}
	return total
}

// RecentItems returns up to n items that have a creation time, newest first.
func RecentItems(items []models.Item, n int) []models.Item {
	dated := make([]models.Item, 0, len(items))
	for _, item := range items {
		if item.CreatedAt != nil {
			dated = append(dated, item)
		}
	}
	slices.SortStableFunc(dated, func(a, b models.Item) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return head(dated, n)
}

func head(items []models.Item, n int) []models.Item {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

package views

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/stockroom/internal/models"
)

// Stats are the dashboard headline numbers. TotalItems is the server count;
// the rest are computed over the fetched page.
type Stats struct {
	TotalItems int
	LowStock   int
	Categories int
	TotalValue decimal.Decimal
}

type Dashboard struct {
	Stats         Stats
	RecentItems   []models.Item
	LowStockItems []models.Item
}

// LoadDashboard fetches items and categories together and derives the stats.
// If either fetch fails the whole load fails.
func LoadDashboard(ctx context.Context, catalog Catalog) (Dashboard, error) {
	var (
		items      models.Page[models.Item]
		categories models.Page[models.Category]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = catalog.Items.GetAll(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = catalog.Categories.GetAll(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		catalog.logf("dashboard error: %v", err)
		return Dashboard{}, fmt.Errorf("failed to fetch dashboard data: %w", err)
	}

	lowStock := FilterLowStock(items.Results)
	return Dashboard{
		Stats: Stats{
			TotalItems: items.Count,
			LowStock:   len(lowStock),
			Categories: len(categories.Results),
			TotalValue: TotalValue(items.Results),
		},
		RecentItems:   RecentItems(items.Results, RecentLimit),
		LowStockItems: head(lowStock, RecentLimit),
	}, nil
}

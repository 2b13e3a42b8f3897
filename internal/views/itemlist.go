package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/stockroom/internal/api"
	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/models/dto"
)

// ErrStale is returned by a load that finished after a newer load started.
// Its results were discarded.
var ErrStale = errors.New("superseded by a newer request")

// Filters narrow the item list. Zero values mean "no filter".
type Filters struct {
	Search       string
	Category     int64
	Supplier     int64
	LowStockOnly bool
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.Search != "" || f.Category != 0 || f.Supplier != 0 || f.LowStockOnly
}

func (f Filters) params(page int) api.Params {
	return api.Params{
		"limit":    PageSize,
		"offset":   Offset(page, PageSize),
		"search":   f.Search,
		"category": idParam(f.Category),
		"supplier": idParam(f.Supplier),
	}
}

func idParam(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// ItemListState is what the item list screen renders.
type ItemListState struct {
	Items       []models.Item
	Categories  []models.Category
	Suppliers   []models.Supplier
	Filters     Filters
	TotalItems  int
	TotalPages  int
	CurrentPage int
	Loading     bool
	Error       string
}

// ItemList drives the paged, filterable item list. Every load gets a
// generation number and only the newest one may publish its results.
type ItemList struct {
	catalog   Catalog
	debouncer *Debouncer

	mu         sync.Mutex
	state      ItemListState
	generation uint64
	onChange   func(ItemListState)
}

// NewItemList returns a list on page 1. debounce is the quiet period for
// filter changes.
func NewItemList(catalog Catalog, debounce time.Duration) *ItemList {
	return &ItemList{
		catalog:   catalog,
		debouncer: NewDebouncer(debounce),
		state:     ItemListState{CurrentPage: 1},
	}
}

// OnChange sets the callback invoked after every published state change.
func (l *ItemList) OnChange(fn func(ItemListState)) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

func (l *ItemList) State() ItemListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Close cancels any pending debounced search.
func (l *ItemList) Close() {
	l.debouncer.Cancel()
}

// Load fetches page (1-based) with the current filters, together with the
// category and supplier lists.
func (l *ItemList) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	var (
		gen     uint64
		filters Filters
	)
	l.update(func(st *ItemListState) bool {
		l.generation++
		gen = l.generation
		filters = st.Filters
		st.Loading = true
		return true
	})

	var (
		items      models.Page[models.Item]
		categories models.Page[models.Category]
		suppliers  models.Page[models.Supplier]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = l.catalog.Items.GetAll(gctx, filters.params(page))
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = l.catalog.Categories.GetAll(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		suppliers, err = l.catalog.Suppliers.GetAll(gctx, nil)
		return err
	})
	err := g.Wait()

	results := items.Results
	if filters.LowStockOnly {
		results = FilterLowStock(results)
	}
	current := l.update(func(st *ItemListState) bool {
		if gen != l.generation {
			return false
		}
		st.Loading = false
		if err != nil {
			st.Error = "Failed to fetch data"
			return true
		}
		st.Items = results
		st.TotalItems = items.Count
		st.TotalPages = TotalPages(items.Count, PageSize)
		st.Categories = categories.Results
		st.Suppliers = suppliers.Results
		st.CurrentPage = page
		st.Error = ""
		return true
	})
	if !current {
		return ErrStale
	}
	if err != nil {
		l.catalog.logf("data fetch error: %v", err)
		return err
	}
	return nil
}

// SetFilters applies f. Active filters refetch page 1 after the debounce
// delay; clearing every filter refetches immediately.
func (l *ItemList) SetFilters(ctx context.Context, f Filters) error {
	l.mu.Lock()
	l.state.Filters = f
	l.mu.Unlock()

	if !f.Active() {
		l.debouncer.Cancel()
		return l.Load(ctx, 1)
	}
	l.debouncer.Trigger(ctx, func(ctx context.Context) {
		err := l.Load(ctx, 1)
		if err != nil && !errors.Is(err, ErrStale) && !errors.Is(err, context.Canceled) {
			l.catalog.logf("search error: %v", err)
		}
	})
	return nil
}

// Apply sets f and loads page right away, dropping any pending debounced
// fetch.
func (l *ItemList) Apply(ctx context.Context, f Filters, page int) error {
	l.debouncer.Cancel()
	l.mu.Lock()
	l.state.Filters = f
	l.mu.Unlock()
	return l.Load(ctx, page)
}

// GoToPage loads page n with the current filters.
func (l *ItemList) GoToPage(ctx context.Context, n int) error {
	return l.Load(ctx, n)
}

// Create adds an item and reloads the current page.
func (l *ItemList) Create(ctx context.Context, in dto.ItemInput) (models.Item, error) {
	item, err := l.catalog.Items.Create(ctx, in)
	if err != nil {
		l.fail("Failed to add item", err)
		return models.Item{}, err
	}
	return item, l.refresh(ctx)
}

// Update saves an item and reloads the current page.
func (l *ItemList) Update(ctx context.Context, id int64, in dto.ItemInput) (models.Item, error) {
	item, err := l.catalog.Items.Update(ctx, id, in)
	if err != nil {
		l.fail("Failed to update item", err)
		return models.Item{}, err
	}
	return item, l.refresh(ctx)
}

// Delete removes an item and reloads the current page.
func (l *ItemList) Delete(ctx context.Context, id int64) error {
	if err := l.catalog.Items.Delete(ctx, id); err != nil {
		l.fail("Failed to delete item", err)
		return err
	}
	return l.refresh(ctx)
}

func (l *ItemList) refresh(ctx context.Context) error {
	err := l.Load(ctx, l.State().CurrentPage)
	if errors.Is(err, ErrStale) {
		return nil
	}
	return err
}

func (l *ItemList) fail(msg string, err error) {
	l.catalog.logf("%s: %v", msg, err)
	l.update(func(st *ItemListState) bool {
		st.Error = msg
		return true
	})
}

// update applies fn under the lock and, if fn reports a change, notifies the
// OnChange callback outside it.
func (l *ItemList) update(fn func(*ItemListState) bool) bool {
	l.mu.Lock()
	changed := fn(&l.state)
	snap, notify := l.state, l.onChange
	l.mu.Unlock()

	if changed && notify != nil {
		notify(snap)
	}
	return changed
}

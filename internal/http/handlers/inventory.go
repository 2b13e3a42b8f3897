package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/hongminglow/stockroom/internal/http/respond"
	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/models/dto"
	"github.com/hongminglow/stockroom/internal/storage/sandbox"
)

// InventoryHandler serves categories, suppliers and items.
type InventoryHandler struct {
	store      *sandbox.Store
	categories *resource[models.Category, dto.CategoryInput]
	suppliers  *resource[models.Supplier, dto.SupplierInput]
	items      *resource[models.Item, dto.ItemInput]
}

func NewInventoryHandler(store *sandbox.Store, now func() time.Time) *InventoryHandler {
	h := &InventoryHandler{store: store}
	h.categories = &resource[models.Category, dto.CategoryInput]{
		table:    store.Categories,
		now:      now,
		validate: func(in dto.CategoryInput, _ bool) error { return requireName(in.Name) },
		build: func(id int64, in dto.CategoryInput, now time.Time) models.Category {
			return models.Category{ID: id, Name: strings.TrimSpace(in.Name), Description: in.Description, CreatedAt: &now}
		},
		apply: func(c models.Category, in dto.CategoryInput, _ time.Time) models.Category {
			c.Name, c.Description = strings.TrimSpace(in.Name), in.Description
			return c
		},
		filter: searchFilter(func(c models.Category) string { return c.Name + " " + c.Description }),
	}
	h.suppliers = &resource[models.Supplier, dto.SupplierInput]{
		table:    store.Suppliers,
		now:      now,
		validate: func(in dto.SupplierInput, _ bool) error { return requireName(in.Name) },
		build: func(id int64, in dto.SupplierInput, now time.Time) models.Supplier {
			return models.Supplier{ID: id, Name: strings.TrimSpace(in.Name), ContactEmail: in.ContactEmail, Phone: in.Phone, Address: in.Address, CreatedAt: &now}
		},
		apply: func(s models.Supplier, in dto.SupplierInput, _ time.Time) models.Supplier {
			s.Name, s.ContactEmail, s.Phone, s.Address = strings.TrimSpace(in.Name), in.ContactEmail, in.Phone, in.Address
			return s
		},
		filter: searchFilter(func(s models.Supplier) string { return s.Name + " " + s.ContactEmail }),
	}
	h.items = &resource[models.Item, dto.ItemInput]{
		table:    store.Items,
		now:      now,
		validate: h.validateItem,
		build: func(id int64, in dto.ItemInput, now time.Time) models.Item {
			item := applyItem(models.Item{ID: id, CreatedAt: &now}, in)
			item.UpdatedAt = &now
			return item
		},
		apply: func(item models.Item, in dto.ItemInput, now time.Time) models.Item {
			item = applyItem(item, in)
			item.UpdatedAt = &now
			return item
		},
		filter: itemFilter,
	}
	return h
}

// Register mounts every inventory route.
func (h *InventoryHandler) Register(r *mux.Router) {
	r.HandleFunc("/items/low_stock/", h.handleLowStock).Methods(http.MethodGet)
	r.HandleFunc("/items/by_category/", h.handleByCategory).Methods(http.MethodGet)
	h.categories.Register(r, "/categories/")
	h.suppliers.Register(r, "/suppliers/")
	h.items.Register(r, "/items/")
}

func (h *InventoryHandler) handleLowStock(w http.ResponseWriter, r *http.Request) {
	rows := h.store.Items.List(func(item models.Item) bool {
		return item.Quantity != nil && item.LowStockThreshold != nil && *item.Quantity <= *item.LowStockThreshold
	})
	page, err := paginate(rows, r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

func (h *InventoryHandler) handleByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok, err := idParam(r.URL.Query(), "category")
	if err != nil || !ok {
		respond.Error(w, http.StatusBadRequest, "category parameter is required")
		return
	}
	rows := h.store.Items.List(func(item models.Item) bool {
		return item.Category != nil && *item.Category == id
	})
	page, err := paginate(rows, r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

func (h *InventoryHandler) validateItem(in dto.ItemInput, _ bool) error {
	if err := requireName(in.Name); err != nil {
		return err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(string(in.Price)))
	if err != nil || price.IsNegative() {
		return errors.New("price must be a non-negative decimal")
	}
	if in.Quantity < 0 || in.LowStockThreshold < 0 {
		return errors.New("quantity and low_stock_threshold must be non-negative")
	}
	if in.Category != nil {
		if _, err := h.store.Categories.Get(*in.Category); err != nil {
			return errors.New("category does not exist")
		}
	}
	if in.Supplier != nil {
		if _, err := h.store.Suppliers.Get(*in.Supplier); err != nil {
			return errors.New("supplier does not exist")
		}
	}
	return nil
}

func applyItem(item models.Item, in dto.ItemInput) models.Item {
	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.Price = models.MoneyFromDecimal(in.Price.Decimal())
	item.Quantity = models.IntPtr(in.Quantity)
	item.LowStockThreshold = models.IntPtr(in.LowStockThreshold)
	item.Category = in.Category
	item.Supplier = in.Supplier
	return item
}

func itemFilter(q url.Values) (func(models.Item) bool, error) {
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	category, hasCategory, err := idParam(q, "category")
	if err != nil {
		return nil, err
	}
	supplier, hasSupplier, err := idParam(q, "supplier")
	if err != nil {
		return nil, err
	}
	return func(item models.Item) bool {
		if search != "" && !strings.Contains(strings.ToLower(item.Name+" "+item.Description), search) {
			return false
		}
		if hasCategory && (item.Category == nil || *item.Category != category) {
			return false
		}
		if hasSupplier && (item.Supplier == nil || *item.Supplier != supplier) {
			return false
		}
		return true
	}, nil
}

func searchFilter[T any](text func(T) string) func(url.Values) (func(T) bool, error) {
	return func(q url.Values) (func(T) bool, error) {
		search := strings.ToLower(strings.TrimSpace(q.Get("search")))
		if search == "" {
			return nil, nil
		}
		return func(row T) bool {
			return strings.Contains(strings.ToLower(text(row)), search)
		}, nil
	}
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	return nil
}

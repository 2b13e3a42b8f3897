package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hongminglow/stockroom/internal/models"
)

// InventoryAPI groups the categories, suppliers and items endpoints.
type InventoryAPI struct {
	Categories *Resource[models.Category]
	Suppliers  *Resource[models.Supplier]
	Items      *ItemsAPI
}

func NewInventoryAPI(client *Client) *InventoryAPI {
	return &InventoryAPI{
		Categories: NewResource[models.Category](client, "/categories/"),
		Suppliers:  NewResource[models.Supplier](client, "/suppliers/"),
		Items:      &ItemsAPI{Resource: NewResource[models.Item](client, "/items/")},
	}
}

// ItemsAPI adds the item-specific query presets to the CRUD resource.
type ItemsAPI struct {
	*Resource[models.Item]
}

func (a *ItemsAPI) LowStock(ctx context.Context) (models.Page[models.Item], error) {
	return call[models.Page[models.Item]](ctx, a.client, a.base+"low_stock/", RequestOptions{})
}

func (a *ItemsAPI) ByCategory(ctx context.Context, categoryID int64) (models.Page[models.Item], error) {
	path := fmt.Sprintf("%sby_category/?category=%d", a.base, categoryID)
	return call[models.Page[models.Item]](ctx, a.client, path, RequestOptions{})
}

func (a *ItemsAPI) Search(ctx context.Context, query string) (models.Page[models.Item], error) {
	return call[models.Page[models.Item]](ctx, a.client, a.base+"?search="+url.QueryEscape(query), RequestOptions{})
}

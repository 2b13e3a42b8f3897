package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hongminglow/stockroom/internal/models"
)

// Resource is CRUD over one REST collection rooted at base, e.g. "/items/".
type Resource[T any] struct {
	client *Client
	base   string
}

// NewResource binds a collection path to the client.
func NewResource[T any](client *Client, base string) *Resource[T] {
	return &Resource[T]{client: client, base: base}
}

// Path returns the detail path for id.
func (r *Resource[T]) Path(id int64) string {
	return fmt.Sprintf("%s%d/", r.base, id)
}

func (r *Resource[T]) GetAll(ctx context.Context, params Params) (models.Page[T], error) {
	return call[models.Page[T]](ctx, r.client, r.base+Query(params), RequestOptions{})
}

func (r *Resource[T]) GetByID(ctx context.Context, id int64) (T, error) {
	return call[T](ctx, r.client, r.Path(id), RequestOptions{})
}

func (r *Resource[T]) Create(ctx context.Context, data any) (T, error) {
	return call[T](ctx, r.client, r.base, RequestOptions{Method: http.MethodPost, Body: data})
}

func (r *Resource[T]) Update(ctx context.Context, id int64, data any) (T, error) {
	return call[T](ctx, r.client, r.Path(id), RequestOptions{Method: http.MethodPut, Body: data})
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	_, err := r.client.Do(ctx, r.Path(id), RequestOptions{Method: http.MethodDelete})
	return err
}

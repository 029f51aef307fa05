package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
)

// restResource implements Resource for one collection path, e.g. /api/clientes.
type restResource[T models.Entity] struct {
	c    *HTTPClient
	path string
}

func newResource[T models.Entity](c *HTTPClient, path string) *restResource[T] {
	return &restResource[T]{c: c, path: path}
}

func (r *restResource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r *restResource[T]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := r.c.doJSON(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *restResource[T]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := r.c.doJSON(ctx, http.MethodGet, r.itemPath(id), nil, &item)
	return item, err
}

func (r *restResource[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	err := r.c.doJSON(ctx, http.MethodPost, r.path, item, &created)
	return created, err
}

func (r *restResource[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	var updated T
	err := r.c.doJSON(ctx, http.MethodPut, r.itemPath(id), item, &updated)
	return updated, err
}

func (r *restResource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.doJSON(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

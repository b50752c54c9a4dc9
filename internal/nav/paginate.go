package nav

import (
	"context"

	"twilly/internal/service"
)

// FirstPageFunc fetches the first page of a list.
type FirstPageFunc[T any] func(ctx context.Context) (service.Page[T], error)

// NextPageFunc fetches the page identified by cursor.
type NextPageFunc[T any] func(ctx context.Context, cursor string) (service.Page[T], error)

// FetchAll fetches the first page and then follows NextPageURL until it is
// empty, returning every item in response order.
//
// The cursor of each page is passed to next verbatim. If any fetch fails the
// error is returned unchanged and the items fetched so far are dropped.
func FetchAll[T any](ctx context.Context, first FirstPageFunc[T], next NextPageFunc[T]) ([]T, error) {
	page, err := first(ctx)
	if err != nil {
		return nil, err
	}
	items := page.Items

	for page.NextPageURL != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err = next(ctx, page.NextPageURL)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}

	return items, nil
}

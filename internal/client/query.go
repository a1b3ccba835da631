package client

import (
	"context"
	"strings"
)

const (
	kindBoxes = "boxes"
	kindBox   = "box"
	kindItems = "items"
	kindItem  = "item"
)

// QueryKey identifies one cached query result. Empty fields act as wildcards
// when a key is used to invalidate.
type QueryKey struct {
	Kind   string
	ID     string
	Search string
	Cursor string
}

func BoxesKey() QueryKey {
	return QueryKey{Kind: kindBoxes}
}

func BoxesSearchKey(search string) QueryKey {
	return QueryKey{Kind: kindBoxes, Search: search}
}

func BoxKey(id string) QueryKey {
	return QueryKey{Kind: kindBox, ID: id}
}

func ItemsKey() QueryKey {
	return QueryKey{Kind: kindItems}
}

func ItemsSearchKey(search string) QueryKey {
	return QueryKey{Kind: kindItems, Search: search}
}

// ItemsPageKey caches one page of a box's items. ID holds the box id.
func ItemsPageKey(boxID, search, cursor string) QueryKey {
	return QueryKey{Kind: kindItems, ID: boxID, Search: search, Cursor: "page:" + cursor}
}

func ItemKey(id string) QueryKey {
	return QueryKey{Kind: kindItem, ID: id}
}

func (k QueryKey) matches(prefix QueryKey) bool {
	return k.Kind == prefix.Kind &&
		(prefix.ID == "" || k.ID == prefix.ID) &&
		(prefix.Search == "" || k.Search == prefix.Search) &&
		(prefix.Cursor == "" || k.Cursor == prefix.Cursor)
}

func (k QueryKey) String() string {
	parts := []string{k.Kind}
	for _, part := range []string{k.ID, k.Search, k.Cursor} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "/")
}

// Query pairs a cache key with the call that fills it.
type Query[T any] struct {
	Key   QueryKey
	Fetch func(ctx context.Context) (T, error)
}

func (c *Client) BoxesQuery(search string) Query[[]Box] {
	key := BoxesKey()
	if search != "" {
		key = BoxesSearchKey(search)
	}
	return Query[[]Box]{
		Key: key,
		Fetch: func(ctx context.Context) ([]Box, error) {
			return c.ListBoxes(ctx, search)
		},
	}
}

func (c *Client) BoxQuery(id string) Query[*BoxDetail] {
	return Query[*BoxDetail]{
		Key: BoxKey(id),
		Fetch: func(ctx context.Context) (*BoxDetail, error) {
			return c.GetBox(ctx, id)
		},
	}
}

func (c *Client) ItemsQuery(search string) Query[[]Item] {
	key := ItemsKey()
	if search != "" {
		key = ItemsSearchKey(search)
	}
	return Query[[]Item]{
		Key: key,
		Fetch: func(ctx context.Context) ([]Item, error) {
			return c.ListItems(ctx, ItemsFilter{Search: search})
		},
	}
}

func (c *Client) ItemsPageQuery(filter ItemsFilter, limit int, cursor string) Query[*ItemPage] {
	return Query[*ItemPage]{
		Key: ItemsPageKey(filter.BoxID, filter.Search, cursor),
		Fetch: func(ctx context.Context) (*ItemPage, error) {
			return c.ListItemsPage(ctx, filter, limit, cursor)
		},
	}
}

func (c *Client) ItemQuery(id string) Query[*Item] {
	return Query[*Item]{
		Key: ItemKey(id),
		Fetch: func(ctx context.Context) (*Item, error) {
			return c.GetItem(ctx, id)
		},
	}
}

package client

import (
	"context"

	"github.com/HugoJF/boxbox/internal/dto"
)

// Store is the read/write surface the UI layer talks to. Reads go through the
// query cache, writes go to the API and then apply the matching cache rule.
type Store struct {
	client *Client
	cache  *QueryCache
	tasks  *TaskRegistry
}

func NewStore(client *Client, cache *QueryCache, tasks *TaskRegistry) *Store {
	return &Store{client: client, cache: cache, tasks: tasks}
}

func (s *Store) Client() *Client {
	return s.client
}

func (s *Store) Cache() *QueryCache {
	return s.cache
}

func (s *Store) Tasks() *TaskRegistry {
	return s.tasks
}

func (s *Store) Boxes(ctx context.Context, search string) ([]Box, error) {
	return Fetch(ctx, s.cache, s.client.BoxesQuery(search))
}

func (s *Store) Box(ctx context.Context, id string) (*BoxDetail, error) {
	return Fetch(ctx, s.cache, s.client.BoxQuery(id))
}

func (s *Store) Items(ctx context.Context, search string) ([]Item, error) {
	return Fetch(ctx, s.cache, s.client.ItemsQuery(search))
}

func (s *Store) ItemsPage(ctx context.Context, filter ItemsFilter, limit int, cursor string) (*ItemPage, error) {
	return Fetch(ctx, s.cache, s.client.ItemsPageQuery(filter, limit, cursor))
}

func (s *Store) Item(ctx context.Context, id string) (*Item, error) {
	return Fetch(ctx, s.cache, s.client.ItemQuery(id))
}

func (s *Store) CreateBox(ctx context.Context, req dto.BoxCreateDTO) (*Box, error) {
	box, err := s.client.CreateBox(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.BoxChanged(box.ID)
	return box, nil
}

func (s *Store) UpdateBox(ctx context.Context, id string, req dto.BoxUpdateDTO) (*Box, error) {
	box, err := s.client.UpdateBox(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.cache.BoxChanged(id)
	return box, nil
}

// DeleteBox also forgets the box's items, they are gone with it.
func (s *Store) DeleteBox(ctx context.Context, id string) error {
	if err := s.client.DeleteBox(ctx, id); err != nil {
		return err
	}
	s.cache.BoxChanged(id)
	s.cache.Invalidate(ItemsKey(), QueryKey{Kind: kindItem})
	return nil
}

func (s *Store) CreateItem(ctx context.Context, req dto.ItemCreateDTO) (*Item, error) {
	item, err := s.client.CreateItem(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.InsertOptimisticItem(*item)
	return item, nil
}

// UpdateItem is a user edit. Any enrichment still pending for the item is
// cancelled first and its result discarded, the user's values win.
func (s *Store) UpdateItem(ctx context.Context, id string, req dto.ItemUpdateDTO) (*Item, error) {
	s.tasks.Cancel(id)

	previous, _ := Get[*Item](s.cache, ItemKey(id))
	item, err := s.client.UpdateItem(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if previous != nil && previous.BoxID != item.BoxID {
		s.cache.RemoveItem(*previous)
		s.cache.ItemSettled(previous.BoxID, item.BoxID)
		s.cache.Set(ItemKey(item.ID), item)
		return item, nil
	}
	s.cache.UpsertItem(*item)
	if previous == nil {
		// The box the item came from is unknown, any cached box may list it.
		s.cache.ItemSettled()
		s.cache.Invalidate(QueryKey{Kind: kindBox})
	}
	return item, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.tasks.Cancel(id)

	item, err := s.Item(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.cache.RemoveItem(*item)
	return nil
}

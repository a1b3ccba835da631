package services

import (
	"errors"
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/HugoJF/boxbox/internal/helpers"
	"github.com/HugoJF/boxbox/internal/models"
	"github.com/HugoJF/boxbox/internal/repository"
	"strings"
)

type CreateItemInput struct {
	BoxID       string
	Name        string
	Description string
	Quantity    int
	Image       string
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	Quantity    *int
	BoxID       *string
}

type ItemQuery struct {
	BoxID  string
	Search string
	Cursor string
	Limit  int
	// Paginate switches the listing to pages of at most Limit rows.
	Paginate bool
}

type ItemPage struct {
	Items      []models.Item
	NextCursor *string
}

type ItemService interface {
	CreateItem(input CreateItemInput) (*models.Item, error)
	GetItemByID(id string) (*models.Item, error)
	UpdateItem(id string, input UpdateItemInput) (*models.Item, error)
	DeleteItem(id string) error
	ListItems(query ItemQuery) (*ItemPage, error)
}

type itemServiceImpl struct {
	itemRepo   repository.ItemRepository
	pagination config.PaginationConfig
}

func NewItemService(itemRepository repository.ItemRepository, configuration *config.Configuration) ItemService {
	return &itemServiceImpl{itemRepo: itemRepository, pagination: configuration.Pagination}
}

func (s *itemServiceImpl) CreateItem(input CreateItemInput) (*models.Item, error) {
	if strings.TrimSpace(input.BoxID) == "" {
		return nil, newValidationError("boxId is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, newValidationError("name is required")
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	image := input.Image
	if helpers.IsBlank(image) {
		image = models.PlaceholderImage
	}
	item := &models.Item{
		BoxID:       input.BoxID,
		Name:        name,
		Description: input.Description,
		Quantity:    quantity,
		Image:       image,
	}
	if err := s.itemRepo.CreateInBox(item); err != nil {
		return nil, notFoundOr(err, "box not found")
	}
	return item, nil
}

func (s *itemServiceImpl) GetItemByID(id string) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "item not found")
	}
	return item, nil
}

// UpdateItem applies the provided fields. Moving the item to another box
// shifts one unit of item count between the boxes atomically.
func (s *itemServiceImpl) UpdateItem(id string, input UpdateItemInput) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "item not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, newValidationError("name cannot be empty")
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, newValidationError("quantity must be a positive integer")
		}
		item.Quantity = *input.Quantity
	}
	if input.BoxID != nil && strings.TrimSpace(*input.BoxID) != "" {
		item.BoxID = *input.BoxID
	}

	if err := s.itemRepo.UpdateAndMove(item); err != nil {
		return nil, notFoundOr(err, "box not found")
	}
	return item, nil
}

// DeleteItem looks the item up first so the owning box's count can be
// decremented. A missing item reports ErrNotFound without side effects.
func (s *itemServiceImpl) DeleteItem(id string) error {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return notFoundOr(err, "item not found")
	}
	if err := s.itemRepo.DeleteFromBox(item); err != nil {
		return notFoundOr(err, "item not found")
	}
	return nil
}

func (s *itemServiceImpl) ListItems(query ItemQuery) (*ItemPage, error) {
	filter := repository.ItemFilter{BoxID: query.BoxID, Search: query.Search}
	if !query.Paginate {
		items, err := s.itemRepo.FindItems(filter)
		if err != nil {
			return nil, err
		}
		return &ItemPage{Items: nonNil(items)}, nil
	}

	if query.Cursor != "" {
		cursor, err := helpers.DecodeCursor(query.Cursor)
		if err != nil {
			if errors.Is(err, helpers.ErrInvalidCursor) {
				return nil, newValidationError("invalid cursor")
			}
			return nil, err
		}
		filter.Cursor = cursor
	}

	limit := s.clampLimit(query.Limit)
	// One extra row tells whether another page exists.
	filter.Limit = limit + 1
	items, err := s.itemRepo.FindItems(filter)
	if err != nil {
		return nil, err
	}

	page := &ItemPage{Items: nonNil(items)}
	if len(items) > limit {
		page.Items = items[:limit]
		last := page.Items[limit-1]
		next := helpers.EncodeCursor(last.CreatedAt, last.ID)
		page.NextCursor = &next
	}
	return page, nil
}

func (s *itemServiceImpl) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.pagination.DefaultLimit
	}
	if limit > s.pagination.MaxLimit {
		limit = s.pagination.MaxLimit
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

func nonNil(items []models.Item) []models.Item {
	if items == nil {
		return []models.Item{}
	}
	return items
}

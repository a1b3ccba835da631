package services

import (
	"errors"
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/HugoJF/boxbox/internal/helpers"
	"github.com/HugoJF/boxbox/internal/models"
	"github.com/HugoJF/boxbox/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) FindByID(id string) (*models.Item, error) {
	args := m.Called(id)
	item, ok := args.Get(0).(*models.Item)
	if !ok {
		return nil, args.Error(1)
	}
	return item, args.Error(1)
}

func (m *MockItemRepository) Update(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockItemRepository) FindAll() ([]models.Item, error) {
	args := m.Called()
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) FindItems(filter repository.ItemFilter) ([]models.Item, error) {
	args := m.Called(filter)
	items, _ := args.Get(0).([]models.Item)
	return items, args.Error(1)
}

func (m *MockItemRepository) CreateInBox(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateAndMove(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteFromBox(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func newTestItemService(repo repository.ItemRepository) ItemService {
	return NewItemService(repo, config.Default())
}

func intPtr(i int) *int {
	return &i
}

func TestItemService_CreateItem_Defaults(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateItemInput
		expectedImage string
		expectedQty   int
	}{
		{
			name:          "no image",
			input:         CreateItemInput{BoxID: "box-1", Name: "Drill"},
			expectedImage: models.PlaceholderImage,
			expectedQty:   1,
		},
		{
			name:          "blank image",
			input:         CreateItemInput{BoxID: "box-1", Name: "Drill", Image: "  \n", Quantity: 3},
			expectedImage: models.PlaceholderImage,
			expectedQty:   3,
		},
		{
			name:          "image kept",
			input:         CreateItemInput{BoxID: "box-1", Name: "Drill", Image: "data:image/png;base64,AAAA", Quantity: -2},
			expectedImage: "data:image/png;base64,AAAA",
			expectedQty:   1,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockItemRepository)
			service := newTestItemService(mockRepo)
			mockRepo.On("CreateInBox", mock.AnythingOfType("*models.Item")).Return(nil)

			item, err := service.CreateItem(tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedImage, item.Image)
			assert.Equal(t, tt.expectedQty, item.Quantity)
			assert.Equal(t, "box-1", item.BoxID)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestItemService_CreateItem_Validation(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)

	_, err := service.CreateItem(CreateItemInput{Name: "Drill"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateItem(CreateItemInput{BoxID: "box-1"})
	assert.ErrorIs(t, err, ErrValidation)

	mockRepo.AssertNotCalled(t, "CreateInBox", mock.Anything)
}

func TestItemService_CreateItem_UnknownBox(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)
	mockRepo.On("CreateInBox", mock.Anything).Return(gorm.ErrRecordNotFound)

	_, err := service.CreateItem(CreateItemInput{BoxID: "missing", Name: "Drill"})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "box not found")
}

func TestItemService_GetItemByID(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)

	item := &models.Item{BaseModel: models.BaseModel{ID: "1"}, Name: "Test Item"}
	mockRepo.On("FindByID", "1").Return(item, nil)
	mockRepo.On("FindByID", "2").Return(nil, gorm.ErrRecordNotFound)

	foundItem, err := service.GetItemByID("1")
	assert.NoError(t, err)
	assert.Equal(t, "Test Item", foundItem.Name)

	_, err = service.GetItemByID("2")
	assert.ErrorIs(t, err, ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestItemService_UpdateItem_MovesBox(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)

	item := &models.Item{BaseModel: models.BaseModel{ID: "1"}, BoxID: "old", Name: "Lamp", Quantity: 1}
	mockRepo.On("FindByID", "1").Return(item, nil)
	mockRepo.On("UpdateAndMove", item).Return(nil)

	updated, err := service.UpdateItem("1", UpdateItemInput{
		Name:     strPtr("Desk lamp"),
		Quantity: intPtr(2),
		BoxID:    strPtr("new"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Desk lamp", updated.Name)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, "new", updated.BoxID)
	mockRepo.AssertExpectations(t)
}

func TestItemService_UpdateItem_RejectsBadQuantity(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)
	mockRepo.On("FindByID", "1").Return(&models.Item{BaseModel: models.BaseModel{ID: "1"}, BoxID: "b", Name: "Lamp"}, nil)

	_, err := service.UpdateItem("1", UpdateItemInput{Quantity: intPtr(0)})

	assert.ErrorIs(t, err, ErrValidation)
	mockRepo.AssertNotCalled(t, "UpdateAndMove", mock.Anything)
}

func TestItemService_DeleteItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)

	item := &models.Item{BaseModel: models.BaseModel{ID: "1"}, BoxID: "box-1"}
	mockRepo.On("FindByID", "1").Return(item, nil)
	mockRepo.On("DeleteFromBox", item).Return(nil)

	err := service.DeleteItem("1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestItemService_DeleteItem_NotFoundHasNoSideEffects(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)
	mockRepo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	err := service.DeleteItem("missing")

	assert.ErrorIs(t, err, ErrNotFound)
	mockRepo.AssertNotCalled(t, "DeleteFromBox", mock.Anything)
}

func TestItemService_ListItems_Unpaginated(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)
	mockRepo.On("FindItems", repository.ItemFilter{Search: "drill"}).Return(nil, nil)

	page, err := service.ListItems(ItemQuery{Search: "drill"})

	assert.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestItemService_ListItems_Paginated(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Item{
		{BaseModel: models.BaseModel{ID: "c", CreatedAt: now}},
		{BaseModel: models.BaseModel{ID: "b", CreatedAt: now.Add(-time.Minute)}},
		{BaseModel: models.BaseModel{ID: "a", CreatedAt: now.Add(-2 * time.Minute)}},
	}
	mockRepo.On("FindItems", repository.ItemFilter{BoxID: "box", Limit: 3}).Return(rows, nil)

	page, err := service.ListItems(ItemQuery{BoxID: "box", Limit: 2, Paginate: true})

	assert.NoError(t, err)
	assert.Len(t, page.Items, 2)
	if assert.NotNil(t, page.NextCursor) {
		cursor, err := helpers.DecodeCursor(*page.NextCursor)
		assert.NoError(t, err)
		assert.Equal(t, "b", cursor.ID)
		assert.True(t, cursor.CreatedAt.Equal(rows[1].CreatedAt))
	}
}

func TestItemService_ListItems_LimitClamped(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)
	mockRepo.On("FindItems", repository.ItemFilter{Limit: 51}).Return([]models.Item{}, nil)
	mockRepo.On("FindItems", repository.ItemFilter{Limit: 21}).Return([]models.Item{}, nil)

	page, err := service.ListItems(ItemQuery{Limit: 500, Paginate: true})
	assert.NoError(t, err)
	assert.Nil(t, page.NextCursor)

	_, err = service.ListItems(ItemQuery{Paginate: true})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestItemService_ListItems_InvalidCursor(t *testing.T) {
	mockRepo := new(MockItemRepository)
	service := newTestItemService(mockRepo)

	_, err := service.ListItems(ItemQuery{Cursor: "not-a-cursor!", Paginate: true})

	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, errors.Is(err, ErrNotFound))
	mockRepo.AssertNotCalled(t, "FindItems", mock.Anything)
}

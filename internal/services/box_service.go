package services

import (
	"github.com/HugoJF/boxbox/internal/models"
	"github.com/HugoJF/boxbox/internal/repository"
	"strings"
)

type BoxUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

type BoxService interface {
	CreateBox(name, description, color string) (*models.Box, error)
	GetBoxByID(id string) (*models.Box, error)
	UpdateBox(id string, update BoxUpdate) (*models.Box, error)
	DeleteBox(id string) error
	GetBoxes(search string) ([]models.Box, error)
	ReconcileItemCounts() (int, error)
}

func NewBoxService(boxRepo repository.BoxRepository) BoxService {
	return &boxServiceImpl{boxRepo: boxRepo}
}

type boxServiceImpl struct {
	boxRepo repository.BoxRepository
}

func (s *boxServiceImpl) CreateBox(name, description, color string) (*models.Box, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name is required")
	}
	if strings.TrimSpace(color) == "" {
		color = models.DefaultBoxColor
	}
	box := &models.Box{Name: name, Description: description, Color: color}
	if err := s.boxRepo.Create(box); err != nil {
		return nil, err
	}
	return box, nil
}

// GetBoxByID returns the box together with its items, newest first.
func (s *boxServiceImpl) GetBoxByID(id string) (*models.Box, error) {
	box, err := s.boxRepo.FindWithItems(id)
	if err != nil {
		return nil, notFoundOr(err, "box not found")
	}
	if box.Items == nil {
		box.Items = []models.Item{}
	}
	return box, nil
}

func (s *boxServiceImpl) UpdateBox(id string, update BoxUpdate) (*models.Box, error) {
	box, err := s.boxRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "box not found")
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, newValidationError("name cannot be empty")
		}
		box.Name = name
	}
	if update.Description != nil {
		box.Description = *update.Description
	}
	if update.Color != nil && strings.TrimSpace(*update.Color) != "" {
		box.Color = *update.Color
	}
	if err := s.boxRepo.UpdateDetails(box); err != nil {
		return nil, err
	}
	updated, err := s.boxRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "box not found")
	}
	return updated, nil
}

// DeleteBox removes the box. Its items go with it through the foreign key
// cascade.
func (s *boxServiceImpl) DeleteBox(id string) error {
	if _, err := s.boxRepo.FindByID(id); err != nil {
		return notFoundOr(err, "box not found")
	}
	return s.boxRepo.Delete(id)
}

func (s *boxServiceImpl) GetBoxes(search string) ([]models.Box, error) {
	boxes, err := s.boxRepo.Search(search)
	if err != nil {
		return nil, err
	}
	if boxes == nil {
		boxes = []models.Box{}
	}
	return boxes, nil
}

func (s *boxServiceImpl) ReconcileItemCounts() (int, error) {
	return s.boxRepo.RecountItems()
}

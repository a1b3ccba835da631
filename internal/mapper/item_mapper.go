package mapper

import (
	"github.com/HugoJF/boxbox/internal/dto"
	"github.com/HugoJF/boxbox/internal/models"
	"github.com/HugoJF/boxbox/internal/services"
)

func ToItemGetDTO(item *models.Item) dto.ItemGetDTO {
	return dto.ItemGetDTO{
		ID:          item.ID,
		BoxID:       item.BoxID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Image:       item.Image,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func ToItemsGetDTOs(items []models.Item) []dto.ItemGetDTO {
	itemsGetDTOs := make([]dto.ItemGetDTO, 0, len(items))
	for i := range items {
		itemsGetDTOs = append(itemsGetDTOs, ToItemGetDTO(&items[i]))
	}
	return itemsGetDTOs
}

func ToItemPageDTO(page *services.ItemPage) dto.ItemPageDTO {
	return dto.ItemPageDTO{
		Items:      ToItemsGetDTOs(page.Items),
		NextCursor: page.NextCursor,
	}
}

func ToItemCreateInput(d dto.ItemCreateDTO) services.CreateItemInput {
	return services.CreateItemInput{
		BoxID:       d.BoxID,
		Name:        d.Name,
		Description: d.Description,
		Quantity:    d.Quantity,
		Image:       d.Image,
	}
}

func ToItemUpdateInput(d dto.ItemUpdateDTO) services.UpdateItemInput {
	return services.UpdateItemInput{
		Name:        d.Name,
		Description: d.Description,
		Quantity:    d.Quantity,
		BoxID:       d.BoxID,
	}
}

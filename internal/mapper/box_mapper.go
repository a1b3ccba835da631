package mapper

import (
	"github.com/HugoJF/boxbox/internal/dto"
	"github.com/HugoJF/boxbox/internal/models"
	"github.com/HugoJF/boxbox/internal/services"
)

func ToBoxGetDTO(box *models.Box) dto.BoxGetDTO {
	return dto.BoxGetDTO{
		ID:          box.ID,
		Name:        box.Name,
		Description: box.Description,
		Color:       box.Color,
		ItemCount:   box.ItemCount,
		CreatedAt:   box.CreatedAt,
		UpdatedAt:   box.UpdatedAt,
	}
}

func ToBoxesGetDTOs(boxes []models.Box) []dto.BoxGetDTO {
	boxGetDTOs := make([]dto.BoxGetDTO, 0, len(boxes))
	for i := range boxes {
		boxGetDTOs = append(boxGetDTOs, ToBoxGetDTO(&boxes[i]))
	}
	return boxGetDTOs
}

// ToBoxDetailDTO always emits an items array, empty for an empty box.
func ToBoxDetailDTO(box *models.Box) dto.BoxDetailDTO {
	return dto.BoxDetailDTO{
		BoxGetDTO: ToBoxGetDTO(box),
		Items:     ToItemsGetDTOs(box.Items),
	}
}

func ToBoxUpdate(d dto.BoxUpdateDTO) services.BoxUpdate {
	return services.BoxUpdate{
		Name:        d.Name,
		Description: d.Description,
		Color:       d.Color,
	}
}

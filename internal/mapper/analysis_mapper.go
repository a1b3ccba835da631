package mapper

import (
	"github.com/HugoJF/boxbox/internal/dto"
	"github.com/HugoJF/boxbox/internal/services"
)

func ToAnalysisDTO(analysis *services.Analysis) dto.AnalysisDTO {
	return dto.AnalysisDTO{
		Name:        analysis.Name,
		Description: analysis.Description,
		Quantity:    analysis.Quantity,
	}
}

func ToCompareResultDTOs(results []services.ProfileAnalysis) []dto.CompareResultDTO {
	resultDTOs := make([]dto.CompareResultDTO, 0, len(results))
	for _, result := range results {
		resultDTO := dto.CompareResultDTO{Profile: result.Profile, Model: result.Model}
		if result.Err != nil {
			resultDTO.Error = result.Err.Error()
		} else if result.Analysis != nil {
			analysisDTO := ToAnalysisDTO(result.Analysis)
			resultDTO.Result = &analysisDTO
		}
		resultDTOs = append(resultDTOs, resultDTO)
	}
	return resultDTOs
}

func ToQRCodeDTO(code *services.QRCode) dto.QRCodeDTO {
	return dto.QRCodeDTO{QRCode: code.DataURL, URL: code.URL}
}

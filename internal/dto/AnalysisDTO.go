package dto

type AnalyzeRequestDTO struct {
	Image   string `json:"image"`
	Profile string `json:"profile,omitempty"`
}

type AnalysisDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type CompareRequestDTO struct {
	Image    string   `json:"image"`
	Profiles []string `json:"profiles,omitempty"`
}

type CompareResultDTO struct {
	Profile string       `json:"profile"`
	Model   string       `json:"model"`
	Result  *AnalysisDTO `json:"result,omitempty"`
	Error   string       `json:"error,omitempty"`
}

package dto

type QRCodeDTO struct {
	QRCode string `json:"qrCode"`
	URL    string `json:"url"`
}

type SuccessDTO struct {
	Success bool `json:"success"`
}

type ReconcileDTO struct {
	Corrected int `json:"corrected"`
}

type ErrorDTO struct {
	Error string `json:"error"`
}

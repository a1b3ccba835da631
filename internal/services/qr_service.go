package services

import (
	"encoding/base64"
	"fmt"
	"github.com/HugoJF/boxbox/internal/config"
	"github.com/skip2/go-qrcode"
	"strings"
)

const qrCodeSize = 512

type QRCode struct {
	DataURL string
	URL     string
}

type QRService interface {
	BoxQRCode(boxID string) (*QRCode, error)
}

type qrServiceImpl struct {
	publicURL string
}

func NewQRService(configuration *config.Configuration) QRService {
	return &qrServiceImpl{publicURL: configuration.Server.PublicURL}
}

// BoxQRCode renders a PNG QR code pointing at the box page. The box does not
// have to exist, labels can be printed ahead of time.
func (s *qrServiceImpl) BoxQRCode(boxID string) (*QRCode, error) {
	if strings.TrimSpace(boxID) == "" {
		return nil, newValidationError("box id is required")
	}
	url := fmt.Sprintf("%s/box/%s", s.publicURL, boxID)
	png, err := qrcode.Encode(url, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return &QRCode{
		DataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		URL:     url,
	}, nil
}

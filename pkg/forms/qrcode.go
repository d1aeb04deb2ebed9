package forms

import (
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// generateQR renders content as a PNG QR code of size pixels.
func generateQR(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.Join(ErrQRCode, errors.New("empty content"))
	}
	switch {
	case size <= 0:
		size = defaultQRSize
	case size > maxQRSize:
		size = maxQRSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrQRCode, err)
	}
	return png, nil
}

package utils

import (
	"encoding/base64"
	"errors"

	"github.com/skip2/go-qrcode"
)

// GeneratePixQR gera o QR do código PIX "copia e cola" em base64, pronto
// para colocar em <img src="...">
func GeneratePixQR(pixCode string) (string, error) {
	if pixCode == "" {
		return "", errors.New("código PIX vazio")
	}

	png, err := qrcode.Encode(pixCode, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

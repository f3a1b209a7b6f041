package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(restaurantID string, tableNumber int) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

// ScanURL is the customer entry point printed on a table.
func (g DefaultQRGenerator) ScanURL(restaurantID string, tableNumber int) string {
	return fmt.Sprintf("%s/customer/scan?restaurant=%s&table=%d", g.BaseURL, url.QueryEscape(restaurantID), tableNumber)
}

func (g DefaultQRGenerator) Generate(restaurantID string, tableNumber int) ([]byte, error) {
	return qrcode.Encode(g.ScanURL(restaurantID, tableNumber), qrcode.Medium, 256)
}

package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(categoryID string) ([]byte, error)
	Link(categoryID string) string
}

// DefaultQRGenerator renders table cards pointing at the public menu page,
// optionally anchored at one category.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Link(categoryID string) string {
	link := strings.TrimRight(g.BaseURL, "/") + "/"
	if categoryID != "" {
		link += "#" + categoryID
	}
	return link
}

func (g DefaultQRGenerator) Generate(categoryID string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.Link(categoryID), qrcode.Medium, size)
}

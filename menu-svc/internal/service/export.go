package service

import (
	"io"
	"strings"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"CategoryID", "Category", "ItemID", "Name", "Price", "Discount", "FinalPrice", "Ingredients", "Tags", "Image",
}

// WriteMenuJSON writes the canonical pretty-printed menu file.
func WriteMenuJSON(w io.Writer, menu domain.Menu) error {
	data, err := domain.EncodeMenu(menu)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteMenuXLSX writes one spreadsheet row per item. Embedded data-URL images
// are replaced by a marker since spreadsheet cells cap out well below their size.
func WriteMenuXLSX(w io.Writer, menu domain.Menu) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Menu")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, cat := range menu {
		for _, it := range cat.Items {
			final, _ := domain.PriceWithDiscount(it.Price, it.Discount)
			img := it.Img
			if strings.HasPrefix(img, "data:") {
				img = "(embedded image)"
			}

			row := sheet.AddRow()
			row.AddCell().SetValue(cat.ID)
			row.AddCell().SetValue(cat.Title)
			row.AddCell().SetValue(it.ID)
			row.AddCell().SetValue(it.Name)
			row.AddCell().SetInt(it.Price)
			row.AddCell().SetInt(it.Discount)
			row.AddCell().SetInt(final)
			row.AddCell().SetValue(it.Ingredients)
			row.AddCell().SetValue(strings.Join(it.Tags, ","))
			row.AddCell().SetValue(img)
		}
	}

	return file.Write(w)
}

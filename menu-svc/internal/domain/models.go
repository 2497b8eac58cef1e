package domain

import (
	"fmt"
	"strings"
)

const (
	MinDiscount = 0
	MaxDiscount = 100
)

type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Discount    int      `json:"discount"`
	Ingredients string   `json:"ingredients"`
	Tags        []string `json:"tags"`
	Img         string   `json:"img"`
}

type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Tag   string `json:"tag"`
	Items []Item `json:"items"`
}

// Menu is the ordered list of categories; order is display order.
type Menu []Category

func ClampDiscount(d int) int {
	if d < MinDiscount {
		return MinDiscount
	}
	if d > MaxDiscount {
		return MaxDiscount
	}
	return d
}

// PriceWithDiscount returns the price to charge and, when a discount applies,
// the original price. orig is 0 when there is nothing to strike through.
func PriceWithDiscount(price, discount int) (final, orig int) {
	if discount <= 0 {
		return price, 0
	}
	final = (price*(100-ClampDiscount(discount)) + 50) / 100
	if final < 0 {
		final = 0
	}
	return final, price
}

func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (it Item) clone() Item {
	out := it
	if it.Tags != nil {
		out.Tags = append([]string(nil), it.Tags...)
	}
	return out
}

func (c Category) Clone() Category {
	out := c
	out.Items = make([]Item, len(c.Items))
	for i, it := range c.Items {
		out.Items[i] = it.clone()
	}
	return out
}

func (c Category) ItemIndex(id string) int {
	for i, it := range c.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (m Menu) Clone() Menu {
	if m == nil {
		return nil
	}
	out := make(Menu, len(m))
	for i, c := range m {
		out[i] = c.Clone()
	}
	return out
}

func (m Menu) CategoryIndex(id string) int {
	for i, c := range m {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Normalize repairs legacy payloads in place: missing item ids are derived
// from the name, discounts are clamped, prices floored at zero and a missing
// category tag falls back to the category id.
func (m Menu) Normalize() {
	for ci := range m {
		cat := &m[ci]
		if cat.Tag == "" {
			cat.Tag = cat.ID
		}
		if cat.Items == nil {
			cat.Items = []Item{}
		}
		for ii := range cat.Items {
			it := &cat.Items[ii]
			if it.ID == "" {
				it.ID = Slug(it.Name)
			}
			if it.Price < 0 {
				it.Price = 0
			}
			it.Discount = ClampDiscount(it.Discount)
			if it.Tags == nil {
				it.Tags = []string{}
			}
		}
	}
}

func (m Menu) Validate() error {
	seenCats := make(map[string]struct{}, len(m))
	for _, cat := range m {
		if strings.TrimSpace(cat.ID) == "" {
			return fmt.Errorf("category %q has an empty id", cat.Title)
		}
		if _, dup := seenCats[cat.ID]; dup {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		seenCats[cat.ID] = struct{}{}

		seenItems := make(map[string]struct{}, len(cat.Items))
		for _, it := range cat.Items {
			if it.ID == "" {
				return fmt.Errorf("item %q in category %q has an empty id", it.Name, cat.ID)
			}
			if _, dup := seenItems[it.ID]; dup {
				return fmt.Errorf("duplicate item id %q in category %q", it.ID, cat.ID)
			}
			seenItems[it.ID] = struct{}{}
			if it.Price < 0 {
				return fmt.Errorf("item %q has negative price", it.ID)
			}
			if it.Discount < MinDiscount || it.Discount > MaxDiscount {
				return fmt.Errorf("item %q has discount %d out of range", it.ID, it.Discount)
			}
		}
	}
	return nil
}

type FlatItem struct {
	Item
	CategoryID string `json:"cat"`
}

func FlattenItems(m Menu) []FlatItem {
	var out []FlatItem
	for _, cat := range m {
		for _, it := range cat.Items {
			out = append(out, FlatItem{Item: it.clone(), CategoryID: cat.ID})
		}
	}
	return out
}

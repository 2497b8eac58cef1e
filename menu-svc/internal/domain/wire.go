package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeMenu renders the canonical file format: a pretty-printed JSON array of
// categories. HTML escaping is off so data URLs and ampersands survive as-is.
func EncodeMenu(m Menu) ([]byte, error) {
	if m == nil {
		m = Menu{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func DecodeMenu(data []byte) (Menu, error) {
	var m Menu
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("decode menu: payload is not a category array")
	}
	return m, nil
}

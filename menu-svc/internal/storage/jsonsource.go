package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"cafe-menu/menu-svc/internal/domain"
)

const maxMenuBytes = 8 << 20

// JSONSource fetches a read-only menu.json published at a plain URL.
type JSONSource struct {
	URL    string
	Client *http.Client
}

func NewJSONSource(url string, client *http.Client) *JSONSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &JSONSource{URL: url, Client: client}
}

func (s *JSONSource) Fetch(ctx context.Context) (domain.Menu, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrRemoteNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrTransport, s.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMenuBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	menu, err := domain.DecodeMenu(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse menu from %s: %v", domain.ErrTransport, s.URL, err)
	}
	return menu, nil
}

package domain

import "time"

const EventMenuUpdated = "menu_updated"

type MenuEvent struct {
	Type       string    `json:"type"`
	Action     string    `json:"action"`
	Origin     string    `json:"origin"`
	CategoryID string    `json:"category_id,omitempty"`
	ItemID     string    `json:"item_id,omitempty"`
	Remote     string    `json:"remote"`
	Timestamp  time.Time `json:"timestamp"`
}

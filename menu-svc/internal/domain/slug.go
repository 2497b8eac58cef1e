package domain

import "github.com/gosimple/slug"

// Slug derives the key used as category and item identity from a display name.
func Slug(name string) string {
	return slug.Make(name)
}

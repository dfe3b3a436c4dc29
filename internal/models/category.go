package models

import (
	"strings"

	"gorm.io/gorm"
)

// DefaultColor is used for categories whose taxonomy source does not
// specify a color anywhere in their ancestor chain.
const DefaultColor = "#8A8A8A"

// Category is a single node of the category taxonomy, stored flat with a
// back-reference to its parent by name. Color and the subscription flag
// are already resolved (inherited) when the taxonomy is loaded, so reads
// never need to walk the parent chain for them.
type Category struct {
	DefaultModel
	Name           string `gorm:"uniqueIndex"` // Unique across the entire taxonomy, not just among siblings
	Color          string
	Parent         *string // Name of the parent category. nil for roots
	IsSubscription bool
	Position       uint `gorm:"index"` // Pre-order position in the loaded taxonomy
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Color == "" {
		c.Color = DefaultColor
	}

	return nil
}

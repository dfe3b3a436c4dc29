// Package hierarchy answers queries about the category taxonomy.
//
// All functions are pure and operate on the flat category list produced by
// the taxonomy loader. Categories are identified by name, which is unique
// across the entire taxonomy. Unknown names never produce errors: a
// transaction can reference a category that was removed when the taxonomy
// was reloaded, and every caller must tolerate that.
package hierarchy

import (
	"github.com/ledgerlight/backend/internal/models"
)

// find returns the category with the given name.
func find(categories []models.Category, name string) (models.Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}

	return models.Category{}, false
}

// AncestorChain returns the names from the root ancestor down to name,
// inclusive.
//
// If name does not exist in the list, it is returned as its own singleton
// chain so that callers can treat unknown categories as parentless.
func AncestorChain(categories []models.Category, name string) []string {
	chain := []string{name}

	current, ok := find(categories, name)
	if !ok {
		return chain
	}

	// The loader guarantees acyclic chains, but the walk still tracks
	// visited names so that a corrupted store cannot loop forever.
	seen := map[string]bool{name: true}

	for current.Parent != nil {
		parent, ok := find(categories, *current.Parent)
		if !ok || seen[parent.Name] {
			break
		}

		chain = append([]string{parent.Name}, chain...)
		seen[parent.Name] = true
		current = parent
	}

	return chain
}

// Descendants returns all categories below name: its direct children,
// their children, and so on. The order is a pre-order flattening per
// child, with children visited in list order.
func Descendants(categories []models.Category, name string) []models.Category {
	var result []models.Category

	for _, c := range categories {
		if c.Parent == nil || *c.Parent != name {
			continue
		}

		result = append(result, c)
		result = append(result, Descendants(categories, c.Name)...)
	}

	return result
}

// Level returns the depth of the category. Roots are level 0.
func Level(categories []models.Category, name string) int {
	return len(AncestorChain(categories, name)) - 1
}

// Root returns the name of the category's root ancestor.
func Root(categories []models.Category, name string) string {
	return AncestorChain(categories, name)[0]
}

// Roots returns all categories without a parent, in list order.
func Roots(categories []models.Category) []models.Category {
	var result []models.Category

	for _, c := range categories {
		if c.Parent == nil {
			result = append(result, c)
		}
	}

	return result
}

// IsSubscription reports the resolved subscription flag for the category.
// The loader already resolves inheritance, so this is a plain lookup.
// Unknown categories are never subscriptions.
func IsSubscription(categories []models.Category, name string) bool {
	c, ok := find(categories, name)
	return ok && c.IsSubscription
}

// Color returns the resolved color for the category. Unknown categories
// get the default color.
func Color(categories []models.Category, name string) string {
	c, ok := find(categories, name)
	if !ok || c.Color == "" {
		return models.DefaultColor
	}

	return c.Color
}

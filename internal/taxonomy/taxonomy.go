// Package taxonomy loads the hierarchical category taxonomy from a
// declarative YAML source and flattens it into the category list used by
// the rest of the backend.
package taxonomy

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ledgerlight/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// MaxDepth is the maximum number of levels in a category chain,
// the root included. Nodes nested deeper are dropped silently.
const MaxDepth = 4

// Node is a single node of the taxonomy source tree.
//
// Color and Subscription are optional: when unset, the value is inherited
// from the nearest ancestor that sets it. A root without a color gets
// models.DefaultColor, a root without a subscription flag is not a
// subscription.
type Node struct {
	Name         string `yaml:"name"`
	Color        string `yaml:"color"`
	Subscription *bool  `yaml:"subscription"`
	Children     []Node `yaml:"children"`
}

type source struct {
	Categories []Node `yaml:"categories"`
}

// Parse reads a YAML taxonomy and returns the flattened category list in
// pre-order: every node is immediately followed by its entire subtree.
// Consumers rely on this ordering.
func Parse(r io.Reader) ([]models.Category, error) {
	var src source

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&src); err != nil {
		return nil, fmt.Errorf("could not parse taxonomy: %w", err)
	}

	if len(src.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy source does not define any categories")
	}

	return Flatten(src.Categories), nil
}

// Flatten resolves inherited attributes for a taxonomy tree and returns
// the flat, pre-ordered category list.
func Flatten(roots []Node) []models.Category {
	var categories []models.Category
	seen := map[string]bool{}

	for _, root := range roots {
		categories = flatten(categories, seen, root, nil, models.DefaultColor, false, 0)
	}

	return categories
}

// flatten appends node and its subtree to categories.
//
// color and subscription carry the values inherited from the parent call.
// depth 0 is a root; recursion stops before depth reaches MaxDepth.
func flatten(categories []models.Category, seen map[string]bool, node Node, parent *string, color string, subscription bool, depth int) []models.Category {
	if depth >= MaxDepth {
		return categories
	}

	name := strings.TrimSpace(node.Name)
	if name == "" {
		return categories
	}

	if seen[name] {
		// The first occurrence wins, the name is the unique key
		log.Warn().Str("category", name).Msg("duplicate category name in taxonomy source, ignoring")
		return categories
	}
	seen[name] = true

	if node.Color != "" {
		color = node.Color
	}

	if node.Subscription != nil {
		subscription = *node.Subscription
	}

	categories = append(categories, models.Category{
		Name:           name,
		Color:          color,
		Parent:         parent,
		IsSubscription: subscription,
	})

	for _, child := range node.Children {
		categories = flatten(categories, seen, child, &name, color, subscription, depth+1)
	}

	return categories
}

// Load reads the taxonomy from a file path or an http(s) URL.
//
// Load fails soft: any fetch or parse error logs a warning and falls back
// to the default taxonomy. An empty category list would leave the user
// unable to categorize anything, which is worse than a stale taxonomy.
func Load(location string) []models.Category {
	categories, err := load(location)
	if err != nil {
		log.Warn().Err(err).Str("source", location).Msg("falling back to default taxonomy")
		return Default()
	}

	return categories
}

func load(location string) ([]models.Category, error) {
	if location == "" {
		return nil, fmt.Errorf("no taxonomy source configured")
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		client := http.Client{Timeout: 10 * time.Second}

		resp, err := client.Get(location)
		if err != nil {
			return nil, fmt.Errorf("could not fetch taxonomy: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("could not fetch taxonomy: HTTP %d", resp.StatusCode)
		}

		return Parse(resp.Body)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("could not open taxonomy file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func boolPtr(b bool) *bool { return &b }

// Default returns the hardcoded fallback taxonomy.
func Default() []models.Category {
	return Flatten([]Node{
		{Name: "Income", Color: "#A3BE8C", Children: []Node{
			{Name: "Salary"},
			{Name: "Interest"},
		}},
		{Name: "Food & Dining", Color: "#D08770", Children: []Node{
			{Name: "Groceries"},
			{Name: "Restaurants", Children: []Node{
				{Name: "Fine Dining"},
			}},
		}},
		{Name: "Housing", Color: "#BF616A", Children: []Node{
			{Name: "Rent"},
			{Name: "Utilities"},
		}},
		{Name: "Transport", Color: "#81A1C1", Children: []Node{
			{Name: "Fuel"},
			{Name: "Public Transport"},
		}},
		{Name: "Streaming Services", Color: "#B48EAD", Subscription: boolPtr(true), Children: []Node{
			{Name: "Video Streaming"},
			{Name: "Music Streaming"},
		}},
		{Name: "Health", Color: "#88C0D0", Children: []Node{
			{Name: "Pharmacy"},
			{Name: "Doctor"},
		}},
		{Name: "Shopping", Color: "#EBCB8B"},
		{Name: "Savings", Color: "#5E81AC"},
	})
}

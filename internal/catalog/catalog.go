package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

// Item is one sellable catalog entry. Price is whole rupees.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Section groups items under a display title on the menu list.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Catalog is the immutable id -> item mapping loaded at startup.
type Catalog struct {
	sections []Section
	byID     map[string]Item
}

// New builds a Catalog from ordered sections. Item ids must be unique and
// prices non-negative.
func New(sections []Section) (*Catalog, error) {
	byID := make(map[string]Item)
	for _, section := range sections {
		if strings.TrimSpace(section.Title) == "" {
			return nil, fmt.Errorf("catalog: section without title")
		}
		for _, item := range section.Items {
			if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
				return nil, fmt.Errorf("catalog: item in %q missing id or name", section.Title)
			}
			if item.Price < 0 {
				return nil, fmt.Errorf("catalog: item %q has negative price", item.ID)
			}
			if _, ok := byID[item.ID]; ok {
				return nil, fmt.Errorf("catalog: duplicate item id %q", item.ID)
			}
			byID[item.ID] = item
		}
	}
	if len(byID) == 0 {
		return nil, fmt.Errorf("catalog: no items")
	}
	return &Catalog{sections: sections, byID: byID}, nil
}

// LoadFile reads a JSON array of sections from path.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var sections []Section
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return New(sections)
}

// Default returns the built-in handcrafted-goods catalog.
func Default() *Catalog {
	c, err := New([]Section{
		{
			Title: "🧶 Handknitted Items",
			Items: []Item{
				{ID: "scarf_1", Name: "Wool Scarf", Price: 450},
				{ID: "beanie_1", Name: "Cozy Beanie", Price: 350},
			},
		},
		{
			Title: "🏺 Pottery",
			Items: []Item{
				{ID: "mug_1", Name: "Handcrafted Mug", Price: 250},
				{ID: "bowl_1", Name: "Decorative Bowl", Price: 500},
			},
		},
		{
			Title: "🧵 Embroidery",
			Items: []Item{
				{ID: "hoop_1", Name: "Embroidery Hoop", Price: 650},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the item for id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Sections renders the catalog as list-message sections, one row per item
// with the price appended to the title.
func (c *Catalog) Sections() []domain.ListSection {
	out := make([]domain.ListSection, 0, len(c.sections))
	for _, section := range c.sections {
		rows := make([]domain.ListRow, 0, len(section.Items))
		for _, item := range section.Items {
			rows = append(rows, domain.ListRow{
				ID:    item.ID,
				Title: fmt.Sprintf("%s - ₹%d", item.Name, item.Price),
			})
		}
		out = append(out, domain.ListSection{Title: section.Title, Rows: rows})
	}
	return out
}

// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package imagery

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nutriplan/internal/models"
)

// KeywordImage pairs a lowercase keyword with the image shown for recipes
// whose name contains it.
type KeywordImage struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
}

// Catalog is the static image table. Keywords are matched in slice order.
type Catalog struct {
	Keywords []KeywordImage            `json:"keywords"`
	Defaults map[models.Slot][]string `json:"defaults"`
	Fallback string                   `json:"fallback"`
}

// GenericFallbackURL is returned when neither a keyword nor a slot matches.
const GenericFallbackURL = "https://images.unsplash.com/photo-1498837167922-ddd27525d352?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"

// DefaultCatalog returns the built-in image table.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Keywords: []KeywordImage{
			// breakfast
			{"pancake", "https://images.unsplash.com/photo-1554520735-0a6b8b6ce8b7?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"egg", "https://images.unsplash.com/photo-1482049016688-2d3e1b311543?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"oatmeal", "https://images.unsplash.com/photo-1517673132405-a56a62b18caf?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"toast", "https://images.unsplash.com/photo-1525351484163-7529414344d8?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"cereal", "https://images.unsplash.com/photo-1545081575-8e0137c5b8eb?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"smoothie", "https://images.unsplash.com/photo-1553530666-ba11a90bb0ae?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			// lunch
			{"salad", "https://images.unsplash.com/photo-1546793665-c74683f339c1?ixlib=rb-1.2.1&auto=format&fit=crop&w=1051&q=80"},
			{"sandwich", "https://images.unsplash.com/photo-1528735602780-2552fd46c7af?ixlib=rb-1.2.1&auto=format&fit=crop&w=1053&q=80"},
			{"soup", "https://images.unsplash.com/photo-1547592166-23ac45744acd?ixlib=rb-1.2.1&auto=format&fit=crop&w=1051&q=80"},
			{"wrap", "https://images.unsplash.com/photo-1550304943-4f24f54ddde9?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"pasta", "https://images.unsplash.com/photo-1563379926898-05f4575a45d8?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			// dinner
			{"steak", "https://images.unsplash.com/photo-1544025162-d76694265947?ixlib=rb-1.2.1&auto=format&fit=crop&w=1049&q=80"},
			{"fish", "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"chicken", "https://images.unsplash.com/photo-1532550907401-a500c9a57435?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"rice", "https://images.unsplash.com/photo-1536489885071-87983c3e2859?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"vegetable", "https://images.unsplash.com/photo-1540420773420-3366772f4999?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"curry", "https://images.unsplash.com/photo-1565557623262-b51c2513a641?ixlib=rb-1.2.1&auto=format&fit=crop&w=1051&q=80"},
			{"pizza", "https://images.unsplash.com/photo-1513104890138-7c749659a591?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
			{"burger", "https://images.unsplash.com/photo-1550547660-d9450f859349?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80"},
		},
		Defaults: map[models.Slot][]string{
			models.SlotBreakfast: {
				"https://images.unsplash.com/photo-1533089860892-a9c9f5a37eb5?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80",
				"https://images.unsplash.com/photo-1525351484163-7529414344d8?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80",
				"https://images.unsplash.com/photo-1482049016688-2d3e1b311543?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80",
			},
			models.SlotLunch: {
				"https://images.unsplash.com/photo-1547496502-affa22d38842?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80",
				"https://images.unsplash.com/photo-1546793665-c74683f339c1?ixlib=rb-1.2.1&auto=format&fit=crop&w=1051&q=80",
				"https://images.unsplash.com/photo-1543339308-43e59d6b73a6?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80",
			},
			models.SlotDinner: {
				"https://images.unsplash.com/photo-1559847844-5315695dadae?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80",
				"https://images.unsplash.com/photo-1544025162-d76694265947?ixlib=rb-1.2.1&auto=format&fit=crop&w=1049&q=80",
				"https://images.unsplash.com/photo-1536489885071-87983c3e2859?ixlib=rb-1.2.1&auto=format&fit=crop&w=1050&q=80",
			},
		},
		Fallback: GenericFallbackURL,
	}
}

// Validate checks that the catalog can always produce a non-empty URL.
func (c *Catalog) Validate() error {
	if c.Fallback == "" {
		return errors.New("catalog fallback URL is required")
	}
	seen := make(map[string]struct{}, len(c.Keywords))
	for i, k := range c.Keywords {
		if k.Keyword == "" || k.URL == "" {
			return fmt.Errorf("catalog keyword %d: keyword and url are required", i)
		}
		if k.Keyword != strings.ToLower(k.Keyword) {
			return fmt.Errorf("catalog keyword %q must be lowercase", k.Keyword)
		}
		if _, dup := seen[k.Keyword]; dup {
			return fmt.Errorf("catalog keyword %q declared twice", k.Keyword)
		}
		seen[k.Keyword] = struct{}{}
	}
	for slot, urls := range c.Defaults {
		if !slot.Valid() {
			return fmt.Errorf("catalog defaults: unknown meal slot %q", slot)
		}
		for _, u := range urls {
			if u == "" {
				return fmt.Errorf("catalog defaults for %s contain an empty url", slot)
			}
		}
	}
	for _, slot := range models.Slots() {
		if len(c.Defaults[slot]) == 0 {
			return fmt.Errorf("catalog defaults for %s are required", slot)
		}
	}
	return nil
}

// LoadCatalog reads a JSON catalog. Missing sections are filled from the
// built-in catalog so a file may override only its keyword list.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode image catalog: %w", err)
	}

	def := DefaultCatalog()
	if len(c.Keywords) == 0 {
		c.Keywords = def.Keywords
	}
	if len(c.Defaults) == 0 {
		c.Defaults = def.Defaults
	}
	if c.Fallback == "" {
		c.Fallback = def.Fallback
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalogFile is LoadCatalog on a file path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open image catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

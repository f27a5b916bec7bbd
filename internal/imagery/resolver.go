// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

package imagery

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/nutriplan/internal/models"
)

// Resolver maps recipe names to illustrative image URLs.
type Resolver struct {
	catalog *Catalog

	// rng picks among slot defaults; math/rand is not safe for concurrent use.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewResolver builds a resolver over catalog. A nil catalog selects
// DefaultCatalog. A zero seed seeds from the clock so repeated runs vary;
// tests pass a fixed seed.
func NewResolver(catalog *Catalog, seed int64) (*Resolver, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid image catalog: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Resolver{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // image choice is cosmetic
	}, nil
}

// Resolve returns the image for recipeName. The first catalog keyword found
// in the lowercased name wins. Without a match a slot default is drawn at
// random; for an unknown slot the generic fallback is returned.
func (r *Resolver) Resolve(recipeName string, slot models.Slot) string {
	if url, ok := r.Match(recipeName); ok {
		return url
	}

	defaults := r.catalog.Defaults[slot]
	if len(defaults) == 0 {
		return r.catalog.Fallback
	}

	r.rngMu.Lock()
	i := r.rng.Intn(len(defaults))
	r.rngMu.Unlock()
	return defaults[i]
}

// Match returns the URL of the first keyword contained in recipeName.
func (r *Resolver) Match(recipeName string) (string, bool) {
	name := strings.ToLower(recipeName)
	for _, k := range r.catalog.Keywords {
		if strings.Contains(name, k.Keyword) {
			return k.URL, true
		}
	}
	return "", false
}

// Defaults returns a copy of the default image list for slot.
func (r *Resolver) Defaults(slot models.Slot) []string {
	return append([]string(nil), r.catalog.Defaults[slot]...)
}

// Fallback returns the generic image used for unknown slots.
func (r *Resolver) Fallback() string {
	return r.catalog.Fallback
}

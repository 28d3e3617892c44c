package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Entity kinds with independent slug namespaces.
const (
	EntityProduct        = "product"
	EntityProductVariant = "product_variant"
)

var invalidChars = regexp.MustCompile("[^a-z0-9]+")

// Make normalizes free text into a URL-safe slug: lowercased, runs of
// invalid characters collapsed to "-", separators trimmed at both ends.
func Make(s string) string {
	s = strings.ToLower(s)
	s = invalidChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Prober answers whether a slug is already taken for an entity kind.
// Repositories implement it against the datastore, tests against a map.
type Prober interface {
	SlugExists(ctx context.Context, entity, slug string) (bool, error)
}

// Allocator hands out slugs unique at the instant of check. The final
// insert stays the authority: the slug columns carry unique constraints and
// the writer retries allocation when an insert loses the race.
type Allocator struct {
	prober Prober
}

func NewAllocator(p Prober) *Allocator {
	return &Allocator{prober: p}
}

// Allocate slugifies baseText and probes for collisions, appending -1, -2,
// ... until a free slug is found.
func (a *Allocator) Allocate(ctx context.Context, baseText, entity string) (string, error) {
	base := Make(baseText)
	candidate := base
	suffix := 1

	for {
		exists, err := a.prober.SlugExists(ctx, entity, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
		suffix++
	}
}

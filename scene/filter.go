// Package scene holds the collision world a navigation volume queries:
// static geometry records for build-time blockage analysis and a registry
// of live capsule obstacles for dynamic occupancy probes.
package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies scene entries for overlap filtering. Queries carry a
// mask of categories and match entries whose category is in the mask.
type Category uint32

const (
	WorldStatic Category = 1 << iota
	WorldDynamic
	Pawn
	Vehicle
	Projectile
)

// MaskAll matches every category.
const MaskAll = WorldStatic | WorldDynamic | Pawn | Vehicle | Projectile

// ErrUnknownCategory is returned when a category name cannot be resolved.
var ErrUnknownCategory = errors.New("scene: unknown category name")

var categoryNames = []struct {
	category Category
	name     string
}{
	{WorldStatic, "world_static"},
	{WorldDynamic, "world_dynamic"},
	{Pawn, "pawn"},
	{Vehicle, "vehicle"},
	{Projectile, "projectile"},
}

// String renders a category mask as pipe-joined names.
func (c Category) String() string {
	if c == 0 {
		return "none"
	}
	parts := make([]string, 0, len(categoryNames))
	for _, entry := range categoryNames {
		if c&entry.category != 0 {
			parts = append(parts, entry.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("category(0x%x)", uint32(c))
	}
	return strings.Join(parts, "|")
}

// Matches reports whether the category is included in the mask.
func (c Category) Matches(mask Category) bool {
	return c&mask != 0
}

// MaskFromNames builds a category mask from names such as "world_static".
// An empty list yields MaskAll.
func MaskFromNames(names []string) (Category, error) {
	if len(names) == 0 {
		return MaskAll, nil
	}
	var mask Category
	for _, name := range names {
		found := false
		for _, entry := range categoryNames {
			if entry.name == name {
				mask |= entry.category
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
	}
	return mask, nil
}

package profile

import (
	"math"
	"sort"
)

// Profile defines placeholder parameters for a kind of asset.
type Profile struct {
	Name        string
	ComponentsX int  // horizontal components (long side when AspectAware)
	ComponentsY int  // vertical components (short side when AspectAware)
	ThumbSize   int  // longest side of the thumbnail the hash is computed on
	AspectAware bool // orient and scale components to the image shape
}

// Built-in profiles.
var profiles = map[string]Profile{
	"placeholder": {
		Name:        "placeholder",
		ComponentsX: 4,
		ComponentsY: 3,
		ThumbSize:   64,
		AspectAware: true,
	},
	"detailed": {
		Name:        "detailed",
		ComponentsX: 6,
		ComponentsY: 5,
		ThumbSize:   96,
		AspectAware: true,
	},
	"minimal": {
		Name:        "minimal",
		ComponentsX: 3,
		ComponentsY: 3,
		ThumbSize:   32,
		AspectAware: false,
	},
}

// Get returns a profile by name. Falls back to placeholder if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["placeholder"]
	p.Name = name // preserve requested name
	return p
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Components returns the component counts to use for an image of the
// given size.
//
// Fixed profiles return ComponentsX × ComponentsY unchanged.  Aspect-aware
// profiles give the larger count to the image's longer side and shrink
// the shorter side's count by the aspect ratio, never below 1 and never
// below the profile's smaller count.
func (p Profile) Components(width, height int) (int, int) {
	cx, cy := clampComponents(p.ComponentsX), clampComponents(p.ComponentsY)
	if !p.AspectAware || width <= 0 || height <= 0 {
		return cx, cy
	}

	long, short := cx, cy
	if short > long {
		long, short = short, long
	}

	ratio := float64(width) / float64(height)
	if ratio < 1 {
		ratio = 1 / ratio
	}
	shortSide := clampComponents(int(math.Round(float64(long) / ratio)))
	if shortSide < short {
		shortSide = short
	}
	if shortSide > long {
		shortSide = long
	}

	if width >= height {
		return long, shortSide
	}
	return shortSide, long
}

func clampComponents(n int) int {
	if n < 1 {
		return 1
	}
	if n > 9 {
		return 9
	}
	return n
}

package core

import (
	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Light is a parallel (directional) or point light source
type Light struct {
	Parallel bool
	Position math.Vec3 // direction for parallel lights, world position otherwise
	Power    Color
}

// NewParallelLight creates a directional light
func NewParallelLight(direction math.Vec3, power Color) Light {
	return Light{Parallel: true, Position: direction, Power: power}
}

// NewPointLight creates a point light
func NewPointLight(position math.Vec3, power Color) Light {
	return Light{Parallel: false, Position: position, Power: power}
}

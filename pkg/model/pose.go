package model

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

type Position struct {
	X, Y, Z float64
}

func (p Position) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z)
}

// Mirror negates x and y, mapping the right side's view onto the left side's
func (p Position) Mirror() Position {
	return Position{X: -p.X, Y: -p.Y, Z: p.Z}
}

// Pose is a position with an optional rotation.
// Rotation uses Real as w, Imag/Jmag/Kmag as x/y/z.
type Pose struct {
	Position Position
	Rotation *quat.Number
}

func (p Pose) HasRotation() bool {
	return p.Rotation != nil
}

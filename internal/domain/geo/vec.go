package geo

import "math"

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlanarDistance ignores height, matching how creatures judge range.
func PlanarDistance(a, b Vec3) float64 {
	return math.Hypot(b.X-a.X, b.Z-a.Z)
}

// StepToward moves from toward to on the ground plane by at most step.
// Height is left for the caller to re-anchor.
func StepToward(from, to Vec3, step float64) Vec3 {
	dx := to.X - from.X
	dz := to.Z - from.Z
	d := math.Hypot(dx, dz)
	if d == 0 {
		d = 1
	}
	return Vec3{
		X: from.X + dx/d*step,
		Y: from.Y,
		Z: from.Z + dz/d*step,
	}
}

type GroundFunc func(x, z float64) float64

func FlatGround(float64, float64) float64 { return 0 }

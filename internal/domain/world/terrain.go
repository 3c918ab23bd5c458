package world

import "math"

const (
	BiomeSnow   = "snow"
	BiomeDesert = "desert"
	BiomeGrass  = "grass"
)

func BiomeAt(x, z float64) string {
	v := math.Sin(x*0.004) + math.Cos(z*0.004)
	switch {
	case v > 0.6:
		return BiomeSnow
	case v < -0.6:
		return BiomeDesert
	default:
		return BiomeGrass
	}
}

package runtime

import "math"

// SimpleHeights is the rolling-hills heightmap the client renders.
func SimpleHeights(x, z float64) float64 {
	f := func(n float64) float64 { return math.Sin(n*0.09) + math.Sin(n*0.021) }
	return (f(x) + f(z) + math.Sin((x+z)*0.035)) * 1.2
}

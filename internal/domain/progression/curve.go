package progression

import "math"

// XPToNext is the xp needed to advance from level to level+1. Saves depend on
// this exact curve; do not tune it.
func XPToNext(level int) int {
	next := math.Floor(float64(level) + 300*math.Pow(2, float64(level)/7))
	return int(math.Floor(next / 4))
}

// TotalXPForLevel is the cumulative xp required to reach level from level 1.
func TotalXPForLevel(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += XPToNext(l)
	}
	return total
}

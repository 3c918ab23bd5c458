package ports

type Terrain interface {
	GroundHeightAt(x, z float64) float64
}

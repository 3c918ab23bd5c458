package runtime

import (
	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/geo"
	"runeforge/internal/domain/world"
)

type Config struct {
	Seed      uint64
	Nodes     int
	Creatures int
	// Heights defaults to SimpleHeights.
	Heights geo.GroundFunc
}

func DefaultConfig() Config {
	gen := world.DefaultGenConfig()
	return Config{
		Seed:      gen.Seed,
		Nodes:     gen.Nodes,
		Creatures: gen.Creatures,
		Heights:   SimpleHeights,
	}
}

// Provider is the server-side terrain and world factory.
type Provider struct {
	cfg Config
}

func NewProvider(cfg Config) Provider {
	def := DefaultConfig()
	if cfg.Heights == nil {
		cfg.Heights = def.Heights
	}
	if cfg.Nodes < 0 {
		cfg.Nodes = def.Nodes
	}
	if cfg.Creatures < 0 {
		cfg.Creatures = def.Creatures
	}
	return Provider{cfg: cfg}
}

func (p Provider) GroundHeightAt(x, z float64) float64 {
	return p.cfg.Heights(x, z)
}

// Build spawns a world for cat on this provider's terrain.
func (p Provider) Build(cat *catalog.Catalog) *world.World {
	return world.Generate(cat, world.GenConfig{
		Seed:      p.cfg.Seed,
		Nodes:     p.cfg.Nodes,
		Creatures: p.cfg.Creatures,
	}, p.GroundHeightAt)
}

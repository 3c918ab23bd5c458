package catalog

type Category string

const (
	CategoryTool     Category = "tool"
	CategoryWeapon   Category = "weapon"
	CategoryArmor    Category = "armor"
	CategoryFood     Category = "food"
	CategoryMaterial Category = "material"
)

type Slot string

const (
	SlotHead Slot = "head"
	SlotBody Slot = "body"
)

type ToolKind string

const (
	ToolHatchet ToolKind = "hatchet"
	ToolPickaxe ToolKind = "pickaxe"
)

// ItemDefinition is a tagged union over Category. Which of Power, Tool,
// Armor, Slot and Heal may be set depends on the category; see validateItem.
type ItemDefinition struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  Category       `json:"category"`
	Stackable bool           `json:"stackable,omitempty"`
	Power     int            `json:"power,omitempty"`
	Tool      ToolKind       `json:"tool,omitempty"`
	Armor     int            `json:"armor,omitempty"`
	Slot      Slot           `json:"slot,omitempty"`
	Heal      int            `json:"heal,omitempty"`
	Requires  map[string]int `json:"requires,omitempty"`
}

func (d ItemDefinition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

type ItemQty struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

type Recipe struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Output ItemQty   `json:"output"`
	Inputs []ItemQty `json:"inputs"`
	Skill  string    `json:"skill"`
	XP     int       `json:"xp"`
}

type GoalKind string

const (
	GoalGather GoalKind = "gather"
	GoalCraft  GoalKind = "craft"
	GoalSlay   GoalKind = "slay"
)

type GoalTemplate struct {
	Kind GoalKind `json:"kind"`
	Item string   `json:"item"`
	Or   string   `json:"or,omitempty"`
	Qty  int      `json:"qty"`
}

type QuestTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Goals       []GoalTemplate `json:"goals"`
	Rewards     []ItemQty      `json:"rewards,omitempty"`
	XP          map[string]int `json:"xp,omitempty"`
}

type NodeTemplate struct {
	Kind           string            `json:"kind"`
	Yield          string            `json:"yield"`
	BiomeYield     map[string]string `json:"biome_yield,omitempty"`
	Tool           ToolKind          `json:"tool"`
	Skill          string            `json:"skill"`
	XP             int               `json:"xp"`
	HP             int               `json:"hp"`
	RespawnSeconds float64           `json:"respawn_seconds"`
	Weight         float64           `json:"weight"`
}

// YieldFor returns the item a node of this kind drops in biome.
func (n NodeTemplate) YieldFor(biome string) string {
	if y, ok := n.BiomeYield[biome]; ok {
		return y
	}
	return n.Yield
}

// CreatureTemplate stats scale linearly with level: stat = Base + PerLevel*level.
type CreatureTemplate struct {
	Kind           string    `json:"kind"`
	MinLevel       int       `json:"min_level"`
	MaxLevel       int       `json:"max_level"`
	BaseHP         int       `json:"base_hp"`
	HPPerLevel     int       `json:"hp_per_level"`
	BaseDamage     int       `json:"base_damage"`
	DamagePerLevel int       `json:"damage_per_level"`
	BaseAggro      float64   `json:"base_aggro"`
	AggroPerLevel  float64   `json:"aggro_per_level"`
	BaseRadius     float64   `json:"base_radius"`
	RadiusPerLevel float64   `json:"radius_per_level"`
	Speed          float64   `json:"speed"`
	XP             int       `json:"xp"`
	RespawnSeconds float64   `json:"respawn_seconds"`
	Loot           []ItemQty `json:"loot,omitempty"`
}

type QuestOffer struct {
	Quest string `json:"quest"`
	After string `json:"after,omitempty"`
}

type NPCTemplate struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Dialog   []string     `json:"dialog,omitempty"`
	Offers   []QuestOffer `json:"offers,omitempty"`
	Farewell string       `json:"farewell,omitempty"`
	X        float64      `json:"x"`
	Z        float64      `json:"z"`
}

type PlayerTemplate struct {
	MaxHP      int       `json:"max_hp"`
	MaxStamina float64   `json:"max_stamina"`
	Inventory  []ItemQty `json:"inventory"`
}

// File is the on-disk catalog document. Catalog is the validated, indexed view of it.
type File struct {
	Skills    []string           `json:"skills"`
	Items     []ItemDefinition   `json:"items"`
	Recipes   []Recipe           `json:"recipes"`
	Quests    []QuestTemplate    `json:"quests"`
	Nodes     []NodeTemplate     `json:"nodes"`
	Creatures []CreatureTemplate `json:"creatures"`
	NPCs      []NPCTemplate      `json:"npcs"`
	Player    PlayerTemplate     `json:"player"`
}

package catalog

func material(id, name string) ItemDefinition {
	return ItemDefinition{ID: id, Name: name, Category: CategoryMaterial, Stackable: true}
}

func tool(id, name string, kind ToolKind, power int, skill string, level int) ItemDefinition {
	return ItemDefinition{ID: id, Name: name, Category: CategoryTool, Tool: kind, Power: power, Requires: map[string]int{skill: level}}
}

func weapon(id, name string, power, level int) ItemDefinition {
	return ItemDefinition{ID: id, Name: name, Category: CategoryWeapon, Power: power, Requires: map[string]int{"combat": level}}
}

func armor(id, name string, slot Slot, value, level int) ItemDefinition {
	return ItemDefinition{ID: id, Name: name, Category: CategoryArmor, Slot: slot, Armor: value, Requires: map[string]int{"combat": level}}
}

// DefaultFile returns a fresh copy of the built-in tables.
func DefaultFile() File {
	return File{
		Skills: []string{"woodcutting", "mining", "crafting", "smithing", "fishing", "combat"},
		Items: []ItemDefinition{
			material("log", "Log"),
			material("fiber", "Plant Fiber"),
			material("ore", "Copper Ore"),
			material("bar", "Bronze Bar"),
			material("stick", "Stick"),
			material("slime-goo", "Slime Goo"),
			{ID: "bread", Name: "Bread", Category: CategoryFood, Heal: 8},
			tool("bronze-axe", "Bronze Hatchet", ToolHatchet, 1, "woodcutting", 1),
			tool("iron-axe", "Iron Hatchet", ToolHatchet, 2, "woodcutting", 5),
			tool("steel-axe", "Steel Hatchet", ToolHatchet, 3, "woodcutting", 10),
			tool("bronze-pick", "Bronze Pickaxe", ToolPickaxe, 1, "mining", 1),
			tool("iron-pick", "Iron Pickaxe", ToolPickaxe, 2, "mining", 5),
			tool("steel-pick", "Steel Pickaxe", ToolPickaxe, 3, "mining", 10),
			weapon("bronze-sword", "Bronze Sword", 2, 1),
			weapon("iron-sword", "Iron Sword", 3, 6),
			weapon("steel-sword", "Steel Sword", 5, 12),
			armor("leather-cap", "Leather Cap", SlotHead, 1, 2),
			armor("iron-helm", "Iron Helm", SlotHead, 2, 8),
		},
		Recipes: []Recipe{
			{ID: "split-log", Name: "Split Log", Output: ItemQty{"stick", 2}, Inputs: []ItemQty{{"log", 1}}, Skill: "crafting", XP: 5},
			{ID: "smelt-bronze", Name: "Smelt Bronze", Output: ItemQty{"bar", 1}, Inputs: []ItemQty{{"ore", 2}}, Skill: "smithing", XP: 8},
			{ID: "forge-iron-axe", Name: "Forge Iron Hatchet", Output: ItemQty{"iron-axe", 1}, Inputs: []ItemQty{{"bar", 2}, {"stick", 1}}, Skill: "smithing", XP: 15},
			{ID: "forge-iron-pick", Name: "Forge Iron Pickaxe", Output: ItemQty{"iron-pick", 1}, Inputs: []ItemQty{{"bar", 2}, {"stick", 1}}, Skill: "smithing", XP: 15},
			{ID: "forge-iron-sword", Name: "Forge Iron Sword", Output: ItemQty{"iron-sword", 1}, Inputs: []ItemQty{{"bar", 3}, {"stick", 1}}, Skill: "smithing", XP: 20},
			{ID: "bake-bread", Name: "Bake Bread", Output: ItemQty{"bread", 1}, Inputs: []ItemQty{{"fiber", 3}}, Skill: "crafting", XP: 4},
		},
		Quests: []QuestTemplate{
			{
				ID:          "first-steps",
				Name:        "First Steps",
				Description: "Chop 3 logs and mine 3 ore. Return to the Guide.",
				Goals:       []GoalTemplate{{Kind: GoalGather, Item: "log", Qty: 3}, {Kind: GoalGather, Item: "ore", Qty: 3}},
				Rewards:     []ItemQty{{"bar", 2}, {"stick", 2}},
				XP:          map[string]int{"woodcutting": 10, "mining": 10},
			},
			{
				ID:          "apprentice-smith",
				Name:        "Apprentice Smith",
				Description: "Smelt a bar and forge an iron tool.",
				Goals:       []GoalTemplate{{Kind: GoalCraft, Item: "bar", Qty: 1}, {Kind: GoalCraft, Item: "iron-axe", Or: "iron-pick", Qty: 1}},
				Rewards:     []ItemQty{{"iron-helm", 1}},
				XP:          map[string]int{"smithing": 20},
			},
			{
				ID:          "slime-buster",
				Name:        "Slime Buster",
				Description: "Defeat 3 slimes around the hub.",
				Goals:       []GoalTemplate{{Kind: GoalSlay, Item: "slime", Qty: 3}},
				Rewards:     []ItemQty{{"iron-sword", 1}},
				XP:          map[string]int{"combat": 30},
			},
		},
		Nodes: []NodeTemplate{
			{Kind: "tree", Yield: "log", BiomeYield: map[string]string{"desert": "fiber"}, Tool: ToolHatchet, Skill: "woodcutting", XP: 5, HP: 3, RespawnSeconds: 20, Weight: 0.55},
			{Kind: "rock", Yield: "ore", Tool: ToolPickaxe, Skill: "mining", XP: 5, HP: 4, RespawnSeconds: 25, Weight: 0.45},
		},
		Creatures: []CreatureTemplate{
			{
				Kind: "slime", MinLevel: 1, MaxLevel: 3,
				BaseHP: 6, HPPerLevel: 3,
				BaseDamage: 2, DamagePerLevel: 1,
				BaseAggro: 14, AggroPerLevel: 2,
				BaseRadius: 0.7, RadiusPerLevel: 0.15,
				Speed: 3, XP: 8, RespawnSeconds: 18,
				Loot: []ItemQty{{"slime-goo", 1}},
			},
		},
		NPCs: []NPCTemplate{
			{
				ID:   "guide",
				Name: "Guide",
				Dialog: []string{
					"Welcome to the hub!",
					"Gather, craft, and try fighting slimes.",
					"Stronger gear needs higher skills.",
				},
				Offers: []QuestOffer{
					{Quest: "first-steps"},
					{Quest: "apprentice-smith", After: "first-steps"},
					{Quest: "slime-buster"},
				},
				Farewell: "Good luck, adventurer!",
			},
		},
		Player: PlayerTemplate{
			MaxHP:      30,
			MaxStamina: 100,
			Inventory:  []ItemQty{{"bronze-axe", 1}, {"bronze-pick", 1}, {"bronze-sword", 1}, {"bread", 1}},
		},
	}
}

// Default builds the catalog from the built-in tables. The tables are known
// valid, so a failure here is a programming error.
func Default() *Catalog {
	c, err := New(DefaultFile())
	if err != nil {
		panic(err)
	}
	return c
}

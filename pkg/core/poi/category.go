package poi

import "time"

// CategoryInfo holds display metadata for a category.
type CategoryInfo struct {
	Emoji string
	Color string // hex, e.g. "#ff6b35"
	Label string
}

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWreck,
	CategoryStructure,
	CategoryBiome,
	CategoryResource,
	CategoryLifeboat,
	CategoryLandmark,
	CategoryHazard,
	CategoryBase,
	CategoryBuoy,
	CategoryCave,
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryWreck:     {Emoji: "🚢", Color: "#ff6b35", Label: "Wreck"},
	CategoryStructure: {Emoji: "🏭", Color: "#4ecdc4", Label: "Structure"},
	CategoryBiome:     {Emoji: "🌊", Color: "#45b7d1", Label: "Biome"},
	CategoryResource:  {Emoji: "💎", Color: "#96ceb4", Label: "Resource"},
	CategoryLifeboat:  {Emoji: "⭐", Color: "#ffd700", Label: "Lifeboat"},
	CategoryLandmark:  {Emoji: "🎯", Color: "#f9ca24", Label: "Landmark"},
	CategoryHazard:    {Emoji: "⚠️", Color: "#f0932b", Label: "Hazard"},
	CategoryBase:      {Emoji: "🔧", Color: "#6c5ce7", Label: "Player Base"},
	CategoryBuoy:      {Emoji: "📍", Color: "#a29bfe", Label: "Buoy"},
	CategoryCave:      {Emoji: "🕳️", Color: "#786fa6", Label: "Cave"},
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns display metadata for c. Unknown categories get a neutral entry
// labelled with the raw value.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return CategoryInfo{Emoji: "•", Color: "#999999", Label: string(c)}
}

// LifeboatID is the id of the origin POI seeded into every new map.
const LifeboatID = "lifeboat-5"

// Lifeboat returns the Lifeboat 5 POI that anchors the coordinate system.
func Lifeboat(now time.Time) POI {
	return POI{
		ID:             LifeboatID,
		Name:           "Lifeboat 5",
		Category:       CategoryLifeboat,
		Notes:          "Starting location - coordinate system origin",
		DefinitionMode: ModeCoordinates,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

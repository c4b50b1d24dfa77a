package domain

// Pot type names. Types are fixed; there is no pot crafting.
const (
	PotBasic    = "basic"
	PotGold     = "gold"
	PotTimeskip = "timeskip"
)

// PotSpec holds the shop price and growth modifiers of a pot type
type PotSpec struct {
	Price     int64
	SpeedMult float64
	YieldMult float64
}

// PotSpecs maps pot type names to their specs
var PotSpecs = map[string]PotSpec{
	PotBasic:    {Price: 100, SpeedMult: 1.0, YieldMult: 1.0},
	PotGold:     {Price: 300, SpeedMult: 1.0, YieldMult: 1.5},
	PotTimeskip: {Price: 300, SpeedMult: 0.67, YieldMult: 1.0},
}

// PotInstance is one owned pot. It lives in a user's inventory until placed,
// then belongs to the plot; it is destroyed when the plot is cleared.
type PotInstance struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Type      string  `json:"type"`
	SpeedMult float64 `json:"speed_mult"`
	YieldMult float64 `json:"yield_mult"`
}

// SeedInstance is one tracked seed. Not-mature seeds are plantable; mature
// seeds are sellable, listable and breedable. BasePrice is snapshot at
// creation and never recalculated.
type SeedInstance struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Class     string `json:"class"`
	BasePrice int64  `json:"base_price"`
	Mature    bool   `json:"is_mature"`
}

// PrimordialClasses are the four shop-buyable seed classes. Every other
// class exists only through breeding.
var PrimordialClasses = []string{"fire", "water", "wind", "earth"}

// IsPrimordial reports whether class is one of the four starting classes
func IsPrimordial(class string) bool {
	for _, c := range PrimordialClasses {
		if c == class {
			return true
		}
	}
	return false
}

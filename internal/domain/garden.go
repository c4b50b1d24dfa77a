package domain

// Stage represents the lifecycle stage of a plot
type Stage string

const (
	// StageEmpty covers both bare plots and plots holding an unplanted pot.
	// Which of the two it is follows from PotID being set.
	StageEmpty   Stage = "empty"
	StagePlanted Stage = "planted"
	StageGrowing Stage = "growing"
	StageMature  Stage = "mature"
)

// Floor is one level of a user's garden tower. Floors are append-only:
// once created they stay unlocked forever.
type Floor struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	Idx       int   `json:"idx"`
	Unlocked  bool  `json:"unlocked"`
	TrapCount int   `json:"trap_count"`
}

// Plot is a single planting slot on a floor. A plot with no pot can never
// hold a crop; planting requires a pot first.
type Plot struct {
	ID        int64   `json:"id"`
	FloorID   int64   `json:"floor_id"`
	Slot      int     `json:"slot"`
	Stage     Stage   `json:"stage"`
	PotID     *int64  `json:"pot_id"`
	PotType   *string `json:"pot_type"`
	SeedID    *int64  `json:"seed_id"`
	Class     *string `json:"class"`
	PlantedAt *int64  `json:"planted_at"` // unix millis
	MatureAt  *int64  `json:"mature_at"`  // unix millis
}

// HasPot reports whether the plot currently holds a pot
func (p *Plot) HasPot() bool {
	return p.PotID != nil
}

// HasCrop reports whether a seed is planted in the plot
func (p *Plot) HasCrop() bool {
	return p.SeedID != nil
}

// GrowingPlot pairs an in-progress plot with its owner, for the tick sweep
type GrowingPlot struct {
	Plot    Plot
	OwnerID int64
}

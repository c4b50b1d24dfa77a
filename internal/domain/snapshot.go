package domain

// PlotView is a plot as rendered into a state snapshot. BasePrice is the
// current catalog price of the crop class, present only when a crop is.
type PlotView struct {
	ID        int64   `json:"id"`
	Slot      int     `json:"slot"`
	Stage     Stage   `json:"stage"`
	Class     *string `json:"class"`
	PlantedAt *int64  `json:"planted_at"`
	MatureAt  *int64  `json:"mature_at"`
	PotID     *int64  `json:"pot_id"`
	PotType   *string `json:"pot_type"`
	BasePrice *int64  `json:"base_price,omitempty"`
}

// FloorView is a floor with its plots, ordered by slot
type FloorView struct {
	Floor Floor      `json:"floor"`
	Plots []PlotView `json:"plots"`
}

// StateSnapshot is the full per-user state, served by fetchState and pushed
// over the live connection. Push and fetch use the identical shape.
type StateSnapshot struct {
	Me        User           `json:"me"`
	Floors    []FloorView    `json:"floors"`
	PotInv    []PotInstance  `json:"potInv"`
	SeedInv   []SeedInstance `json:"seedInv"`
	Market    []Listing      `json:"market"`
	TrapPrice int64          `json:"trapPrice"`
	TrapMax   int            `json:"trapMax"`
}

// StealOutcome is the result of a steal attempt. Exactly one of the three
// shapes occurs: success (OK true, Class set), trap (Trap true, Penalty set)
// or a soft failure (Reason set). An unready plot is an expected outcome,
// not an error.
type StealOutcome struct {
	OK      bool   `json:"ok"`
	Class   string `json:"class,omitempty"`
	Trap    bool   `json:"trap,omitempty"`
	Penalty int64  `json:"penalty,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// BreedResult reports a successful breed
type BreedResult struct {
	OutClass string `json:"outClass"`
	Base     int64  `json:"base"`
}

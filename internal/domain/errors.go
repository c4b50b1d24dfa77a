package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	// Not-found errors
	ErrMsgUserNotFound    = "user not found"
	ErrMsgFloorNotFound   = "floor not found"
	ErrMsgPlotNotFound    = "plot not found"
	ErrMsgSeedNotFound    = "seed not found"
	ErrMsgPotNotFound     = "pot not found"
	ErrMsgListingNotFound = "listing not found"
	ErrMsgSessionNotFound = "session not found"

	// Ownership errors
	ErrMsgNotYourFloor = "not your floor"

	// State errors
	ErrMsgPlotOccupied    = "plot already has a pot"
	ErrMsgPlotHasNoPot    = "plot has no pot"
	ErrMsgPlotBusy        = "plot busy"
	ErrMsgPlotNotMature   = "not mature yet"
	ErrMsgSeedNotMature   = "seed must be mature"
	ErrMsgSeedNotPlantable = "seed must be not-planted"
	ErrMsgListingNotOpen  = "listing is not open"

	// Economic errors
	ErrMsgNotEnoughCoins   = "not enough coins"
	ErrMsgAskOutOfBounds   = "ask price out of bounds"
	ErrMsgTrapCapacity     = "trap capacity reached"
	ErrMsgNoEligibleFloor  = "no floor can hold more traps"

	// Validation errors
	ErrMsgInvalidItemType = "invalid item type"
	ErrMsgInvalidPotType  = "invalid pot type"
	ErrMsgQtyOutOfRange   = "qty out of range"
	ErrMsgInvalidUsername = "invalid username"
	ErrMsgStealSelf       = "cannot steal from yourself"
	ErrMsgNoBreedRecipe   = "no breed recipe"
)

// Common domain errors.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, detail) for context.
var (
	// Not-found errors
	ErrUserNotFound    = errors.New(ErrMsgUserNotFound)
	ErrFloorNotFound   = errors.New(ErrMsgFloorNotFound)
	ErrPlotNotFound    = errors.New(ErrMsgPlotNotFound)
	ErrSeedNotFound    = errors.New(ErrMsgSeedNotFound)
	ErrPotNotFound     = errors.New(ErrMsgPotNotFound)
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	// Ownership errors
	ErrNotYourFloor = errors.New(ErrMsgNotYourFloor)

	// State errors
	ErrPlotOccupied     = errors.New(ErrMsgPlotOccupied)
	ErrPlotHasNoPot     = errors.New(ErrMsgPlotHasNoPot)
	ErrPlotBusy         = errors.New(ErrMsgPlotBusy)
	ErrPlotNotMature    = errors.New(ErrMsgPlotNotMature)
	ErrSeedNotMature    = errors.New(ErrMsgSeedNotMature)
	ErrSeedNotPlantable = errors.New(ErrMsgSeedNotPlantable)
	ErrListingNotOpen   = errors.New(ErrMsgListingNotOpen)

	// Economic errors
	ErrNotEnoughCoins  = errors.New(ErrMsgNotEnoughCoins)
	ErrAskOutOfBounds  = errors.New(ErrMsgAskOutOfBounds)
	ErrTrapCapacity    = errors.New(ErrMsgTrapCapacity)
	ErrNoEligibleFloor = errors.New(ErrMsgNoEligibleFloor)

	// Validation errors
	ErrInvalidItemType = errors.New(ErrMsgInvalidItemType)
	ErrInvalidPotType  = errors.New(ErrMsgInvalidPotType)
	ErrQtyOutOfRange   = errors.New(ErrMsgQtyOutOfRange)
	ErrInvalidUsername = errors.New(ErrMsgInvalidUsername)
	ErrStealSelf       = errors.New(ErrMsgStealSelf)
	ErrNoBreedRecipe   = errors.New(ErrMsgNoBreedRecipe)
)

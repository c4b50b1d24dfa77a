package repository

import (
	"context"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
)

// Users defines user persistence. Users are created on first login and
// never deleted. AddCoins clamps the balance at zero; callers validate
// affordability before debiting.
type Users interface {
	GetOrCreateUser(ctx context.Context, username string, startingCoins int64, now int64) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	AddCoins(ctx context.Context, userID int64, delta int64) error
	ListRecentUsers(ctx context.Context, limit int) ([]domain.User, error)
}

// Gardens defines floor and plot persistence. Plot mutations are dumb
// record writes; all lifecycle validation lives in the engine.
type Gardens interface {
	CreateFloor(ctx context.Context, userID int64, idx, plots int) (*domain.Floor, error)
	GetFloor(ctx context.Context, floorID int64) (*domain.Floor, error)
	ListFloors(ctx context.Context, userID int64) ([]domain.Floor, error)
	CountUnlockedFloors(ctx context.Context, userID int64) (int, error)

	GetPlot(ctx context.Context, plotID int64) (*domain.Plot, error)
	GetPlotBySlot(ctx context.Context, floorID int64, slot int) (*domain.Plot, error)
	ListPlots(ctx context.Context, floorID int64) ([]domain.Plot, error)
	ListInProgressPlots(ctx context.Context) ([]domain.GrowingPlot, error)

	SetPlotPot(ctx context.Context, plotID, potID int64, potType string) error
	SetPlotPlanted(ctx context.Context, plotID, seedID int64, class string, plantedAt, matureAt int64) error
	SetPlotStage(ctx context.Context, plotID int64, stage domain.Stage) error
	// ClearPlotCrop resets the crop fields and stage, keeping the pot
	ClearPlotCrop(ctx context.Context, plotID int64) error
	// ClearPlot resets the whole plot, destroying pot and crop references
	ClearPlot(ctx context.Context, plotID int64) error

	AddTrap(ctx context.Context, floorID int64) error
	// ConsumeTrap decrements the floor's trap count if positive, reporting
	// whether a trap was consumed. Must be atomic under concurrent steals.
	ConsumeTrap(ctx context.Context, floorID int64) (bool, error)
}

// Inventory defines seed and pot instance persistence. Reads and removals
// are keyed by id AND owner: an instance owned by another user is not found.
// Ownership transfer is always destroy-in-source plus create-in-destination.
type Inventory interface {
	AddSeed(ctx context.Context, userID int64, class string, basePrice int64, mature bool) (*domain.SeedInstance, error)
	GetSeed(ctx context.Context, seedID, userID int64) (*domain.SeedInstance, error)
	ListSeeds(ctx context.Context, userID int64) ([]domain.SeedInstance, error)
	RemoveSeed(ctx context.Context, seedID, userID int64) error

	AddPot(ctx context.Context, userID int64, potType string, speedMult, yieldMult float64) (*domain.PotInstance, error)
	GetPot(ctx context.Context, potID, userID int64) (*domain.PotInstance, error)
	ListPots(ctx context.Context, userID int64) ([]domain.PotInstance, error)
	RemovePot(ctx context.Context, potID, userID int64) error
}

// Market defines the shared listing board
type Market interface {
	CreateListing(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	GetListing(ctx context.Context, listingID int64) (*domain.Listing, error)
	ListOpenListings(ctx context.Context, limit int) ([]domain.Listing, error)
	// CloseListing flips the listing open -> sold, reporting whether this
	// call won the flip. A second concurrent buyer loses.
	CloseListing(ctx context.Context, listingID int64) (bool, error)
}

// Catalog records the base price of each seed class as bred classes are
// discovered. Primordials are not stored; their price is fixed.
type Catalog interface {
	BasePrice(ctx context.Context, class string) (int64, bool, error)
	UpsertBasePrice(ctx context.Context, class string, price int64) error
}

// Sessions maps opaque session tokens to user ids
type Sessions interface {
	CreateSession(ctx context.Context, token string, userID int64, now int64) error
	GetSession(ctx context.Context, token string) (int64, error)
}

// Audit appends action records for successful mutations
type Audit interface {
	LogAction(ctx context.Context, userID int64, action string, payload []byte, at int64) error
}

// Store aggregates all persistence concerns the engine depends on
type Store interface {
	Users
	Gardens
	Inventory
	Market
	Catalog
	Sessions
	Audit
}

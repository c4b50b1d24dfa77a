package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hieuluvjingliu/GardenBred/internal/breed"
	"github.com/hieuluvjingliu/GardenBred/internal/concurrency"
	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
	"github.com/hieuluvjingliu/GardenBred/internal/repository"
)

// Notifier receives a signal after every successful mutation of a user's
// state. The sync layer implements it to push fresh snapshots.
type Notifier interface {
	Notify(userID int64)
}

// Service is the game state engine: the authoritative model of floors,
// plots, inventory and market, behind a per-user mutual-exclusion boundary.
type Service interface {
	// Shop
	BuyShopItem(ctx context.Context, userID int64, itemType, classOrType string, qty int) error
	BuyTrap(ctx context.Context, userID int64) error
	BuyFloor(ctx context.Context, userID int64) (*domain.Floor, error)
	SellToShop(ctx context.Context, userID, seedID int64) (int64, error)

	// Plot lifecycle
	PlacePot(ctx context.Context, userID, floorID int64, slot int, potID int64) error
	Plant(ctx context.Context, userID, floorID int64, slot int, seedID int64) (int64, error)
	Harvest(ctx context.Context, userID, plotID int64) error
	HarvestAll(ctx context.Context, userID int64) (int, error)
	RemovePlot(ctx context.Context, userID, floorID int64, slot int) error

	// Breeding
	Breed(ctx context.Context, userID, seedAID, seedBID int64) (*domain.BreedResult, error)

	// Market
	ListOnMarket(ctx context.Context, userID, seedID, askPrice int64) error
	BuyFromMarket(ctx context.Context, userID, listingID int64) error

	// Raids
	StealPlot(ctx context.Context, userID, targetUserID, floorID, plotID int64) (*domain.StealOutcome, error)

	// State
	FetchState(ctx context.Context, userID int64) (*domain.StateSnapshot, error)
	OnlineUsers(ctx context.Context) ([]domain.User, error)
	VisitFloors(ctx context.Context, targetUserID int64) ([]domain.Floor, error)
	VisitFloor(ctx context.Context, floorID int64) (*domain.FloorView, error)

	// Tick
	SweepGrowth(ctx context.Context) error
}

type service struct {
	store    repository.Store
	breeds   breed.Provider
	locks    *concurrency.LockManager
	notifier Notifier
	now      func() int64 // unix millis
}

// NewService creates the engine. notifier may be nil when no push layer is
// attached (tests, tools).
func NewService(store repository.Store, breeds breed.Provider, notifier Notifier) Service {
	return &service{
		store:    store,
		breeds:   breeds,
		locks:    concurrency.NewLockManager(),
		notifier: notifier,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// signal wakes the push layer for a user after a successful mutation
func (s *service) signal(userID int64) {
	if s.notifier != nil {
		s.notifier.Notify(userID)
	}
}

// audit appends an action record. Best effort: a failed audit write never
// fails the action that produced it.
func (s *service) audit(ctx context.Context, userID int64, action string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}
	if err := s.store.LogAction(ctx, userID, action, data, s.now()); err != nil {
		logger.FromContext(ctx).Warn("Audit write failed", "action", action, "error", err)
	}
}

// basePrice resolves the catalog base price of a seed class. Primordials
// are fixed; bred classes use the price recorded when first produced,
// defaulting when never recorded.
func (s *service) basePrice(ctx context.Context, class string) (int64, error) {
	if domain.IsPrimordial(class) {
		return economy.DefaultBasePrice, nil
	}
	price, ok, err := s.store.BasePrice(ctx, class)
	if err != nil {
		return 0, err
	}
	if !ok {
		return economy.DefaultBasePrice, nil
	}
	return price, nil
}

// ownedFloor fetches a floor and checks it belongs to userID
func (s *service) ownedFloor(ctx context.Context, userID, floorID int64) (*domain.Floor, error) {
	floor, err := s.store.GetFloor(ctx, floorID)
	if err != nil {
		return nil, err
	}
	if floor.UserID != userID {
		return nil, domain.ErrNotYourFloor
	}
	return floor, nil
}

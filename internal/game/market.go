package game

import (
	"context"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/economy"
	"github.com/hieuluvjingliu/GardenBred/internal/metrics"
)

// ListOnMarket escrows a mature seed on the shared board at an ask price
// within [floor(base*0.9), floor(base*1.5)]. The seed instance leaves the
// inventory; its class and base price survive on the listing until bought.
func (s *service) ListOnMarket(ctx context.Context, userID, seedID, askPrice int64) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	seed, err := s.store.GetSeed(ctx, seedID, userID)
	if err != nil {
		return err
	}
	if !seed.Mature {
		return domain.ErrSeedNotMature
	}
	min, max := economy.MarketBounds(seed.BasePrice)
	if askPrice < min || askPrice > max {
		return domain.ErrAskOutOfBounds
	}

	if _, err := s.store.CreateListing(ctx, &domain.Listing{
		SellerID:  userID,
		SeedID:    seedID,
		Class:     seed.Class,
		BasePrice: seed.BasePrice,
		AskPrice:  askPrice,
		CreatedAt: s.now(),
	}); err != nil {
		return err
	}
	if err := s.store.RemoveSeed(ctx, seedID, userID); err != nil {
		return err
	}

	metrics.MarketListings.Inc()
	s.audit(ctx, userID, actionMarketList, map[string]any{"seedId": seedID, "class": seed.Class, "askPrice": askPrice})
	s.signal(userID)
	return nil
}

// BuyFromMarket closes an open listing: the buyer pays the ask, the seller
// is credited, and a fresh mature seed of the listed class materializes in
// the buyer's inventory. The open->sold flip is atomic; a second concurrent
// buyer on the same listing loses with ErrListingNotOpen.
//
// Buying one's own listing is not forbidden; it nets to zero coins and a
// returned seed, as in the original market rules.
func (s *service) BuyFromMarket(ctx context.Context, userID, listingID int64) error {
	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return err
	}

	unlock := s.locks.LockPair(userID, listing.SellerID)
	defer unlock()

	if listing.Status != domain.ListingOpen {
		return domain.ErrListingNotOpen
	}
	buyer, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if buyer.Coins < listing.AskPrice {
		return domain.ErrNotEnoughCoins
	}

	won, err := s.store.CloseListing(ctx, listingID)
	if err != nil {
		return err
	}
	if !won {
		return domain.ErrListingNotOpen
	}

	// debit+credit is atomic with respect to other actions on either user:
	// both locks are held until the transfer lands
	if err := s.store.AddCoins(ctx, userID, -listing.AskPrice); err != nil {
		return err
	}
	if err := s.store.AddCoins(ctx, listing.SellerID, listing.AskPrice); err != nil {
		return err
	}
	if _, err := s.store.AddSeed(ctx, userID, listing.Class, listing.BasePrice, true); err != nil {
		return err
	}

	metrics.MarketSales.Inc()
	s.audit(ctx, userID, actionMarketBuy, map[string]any{
		"listingId": listingID, "class": listing.Class, "base": listing.BasePrice,
		"paid": listing.AskPrice, "seller": listing.SellerID,
	})
	s.signal(userID)
	s.signal(listing.SellerID)
	return nil
}

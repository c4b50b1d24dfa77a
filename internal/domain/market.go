package domain

// ListingStatus is the lifecycle state of a market listing
type ListingStatus string

const (
	ListingOpen ListingStatus = "open"
	ListingSold ListingStatus = "sold"
)

// Listing is a seed offered on the shared market. The listed seed instance
// is destroyed on creation; its class and base price live on the listing
// (escrow) until a buyer materializes a fresh mature seed from them.
// There is no cancel path: an open listing stays open until sold.
type Listing struct {
	ID        int64         `json:"id"`
	SellerID  int64         `json:"seller_id"`
	SeedID    int64         `json:"seed_id"`
	Class     string        `json:"class"`
	BasePrice int64         `json:"base_price"`
	AskPrice  int64         `json:"ask_price"`
	Status    ListingStatus `json:"status"`
	CreatedAt int64         `json:"created_at"`
}

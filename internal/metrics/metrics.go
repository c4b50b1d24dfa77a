package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenbred_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gardenbred_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Game metrics
var (
	ShopPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenbred_shop_purchases_total",
			Help: "Items bought from the shop by item type.",
		},
		[]string{"item_type"},
	)

	SeedsPlanted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gardenbred_seeds_planted_total",
			Help: "Seeds planted into plots.",
		},
	)

	Harvests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gardenbred_harvests_total",
			Help: "Mature crops harvested.",
		},
	)

	Breeds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gardenbred_breeds_total",
			Help: "Successful breed operations.",
		},
	)

	SeedsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenbred_seeds_sold_total",
			Help: "Seeds sold by channel (shop).",
		},
		[]string{"channel"},
	)

	MarketListings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gardenbred_market_listings_total",
			Help: "Listings created on the market.",
		},
	)

	MarketSales = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gardenbred_market_sales_total",
			Help: "Listings sold on the market.",
		},
	)

	Steals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gardenbred_steals_total",
			Help: "Steal attempts by outcome (success, trapped, unready).",
		},
		[]string{"outcome"},
	)

	PushesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gardenbred_state_pushes_total",
			Help: "State snapshots pushed over live connections.",
		},
	)
)

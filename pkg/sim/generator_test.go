package sim

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"matchbook/pkg/orderbook"
)

func testConfig(seed int64) *Config {
	return &Config{
		Seed:       seed,
		SeedLevels: 10,
		MinQty:     1,
		MaxQty:     100,
		BidLow:     90.0,
		BidHigh:    100.0,
		AskLow:     100.0,
		AskHigh:    110.0,
	}
}

func TestSeedBookPopulatesBothSides(t *testing.T) {
	gen := New(testConfig(1))
	book := orderbook.NewBook(gen.Config().Symbol)

	require.NoError(t, gen.SeedBook(book))

	d := book.Depth()
	require.NotEmpty(t, d.Bids)
	require.NotEmpty(t, d.Asks)

	// Seeding places two orders per drawn price, so each side carries
	// 2*SeedLevels orders and every level holds at least a pair (draws may
	// collide on a price, stacking a deeper queue).
	countOrders := func(levels []orderbook.DepthLevel) int {
		total := 0
		for _, lvl := range levels {
			require.GreaterOrEqual(t, lvl.Orders, 2, "level %s", lvl.Price)
			require.Positive(t, lvl.Qty)
			total += lvl.Orders
		}
		return total
	}
	require.Equal(t, 2*gen.Config().SeedLevels, countOrders(d.Bids))
	require.Equal(t, 2*gen.Config().SeedLevels, countOrders(d.Asks))

	// Bids seed below asks, so the seeded book is never crossed.
	bestBid, err := book.BestQuote(orderbook.BID)
	require.NoError(t, err)
	bestAsk, err := book.BestQuote(orderbook.ASK)
	require.NoError(t, err)
	require.True(t, bestBid.LessThan(bestAsk), "seeded book crossed: bid=%s ask=%s", bestBid, bestAsk)
}

func TestGeneratorDeterministicForSeed(t *testing.T) {
	a := New(testConfig(99))
	b := New(testConfig(99))

	for i := 0; i < 100; i++ {
		x, y := a.Next(), b.Next()
		require.Equal(t, x.Type, y.Type)
		require.Equal(t, x.Side, y.Side)
		require.Equal(t, x.Qty, y.Qty)
		require.True(t, x.Price.Equal(y.Price), "order %d: %s != %s", i, x.Price, y.Price)
	}
}

func TestNextRespectsConfiguredRanges(t *testing.T) {
	cfg := testConfig(3)
	cfg.MarketRatio = 0.3
	gen := New(cfg)

	sawMarket, sawLimit := false, false
	low := decimal.NewFromFloat(cfg.BidLow)
	high := decimal.NewFromFloat(cfg.AskHigh)

	for i := 0; i < 500; i++ {
		inc := gen.Next()
		require.GreaterOrEqual(t, inc.Qty, cfg.MinQty)
		require.LessOrEqual(t, inc.Qty, cfg.MaxQty)

		switch inc.Type {
		case orderbook.MARKET:
			sawMarket = true
		case orderbook.LIMIT:
			sawLimit = true
			require.True(t, inc.Price.GreaterThanOrEqual(low), "price %s below band", inc.Price)
			require.True(t, inc.Price.LessThanOrEqual(high), "price %s above band", inc.Price)
			require.True(t, inc.Price.Equal(inc.Price.Round(2)), "price %s not 2dp", inc.Price)
		default:
			t.Fatalf("unexpected order type %s", inc.Type)
		}
	}
	require.True(t, sawMarket, "no market orders in 500 draws")
	require.True(t, sawLimit, "no limit orders in 500 draws")
}

func TestDefaultsApplied(t *testing.T) {
	gen := New(nil)
	cfg := gen.Config()

	require.Equal(t, "DEMO", cfg.Symbol)
	require.Equal(t, 10, cfg.SeedLevels)
	require.Positive(t, cfg.MinQty)
	require.Greater(t, cfg.MaxQty, cfg.MinQty)
	require.Greater(t, cfg.BidHigh, cfg.BidLow)
	require.Greater(t, cfg.AskHigh, cfg.AskLow)
	require.GreaterOrEqual(t, cfg.AskLow, cfg.BidHigh)
	require.Positive(t, cfg.IntervalMS)
}

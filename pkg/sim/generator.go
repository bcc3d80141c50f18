package sim

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"matchbook/pkg/orderbook"
)

// Config controls the shape of the generated order flow. Prices are drawn in
// two bands so seeding produces a sensible spread: bids in [BidLow, BidHigh],
// asks in [AskLow, AskHigh]. Streamed limit orders draw across the whole
// range so some of them cross.
type Config struct {
	Seed        int64   `yaml:"seed"`
	Symbol      string  `yaml:"symbol"`
	SeedLevels  int     `yaml:"seed_levels"`
	MinQty      int64   `yaml:"min_qty"`
	MaxQty      int64   `yaml:"max_qty"`
	BidLow      float64 `yaml:"bid_low"`
	BidHigh     float64 `yaml:"bid_high"`
	AskLow      float64 `yaml:"ask_low"`
	AskHigh     float64 `yaml:"ask_high"`
	MarketRatio float64 `yaml:"market_ratio"`
	IntervalMS  int     `yaml:"interval_ms"`
}

func (c *Config) applyDefaults() {
	if c.Symbol == "" {
		c.Symbol = "DEMO"
	}
	if c.SeedLevels <= 0 {
		c.SeedLevels = 10
	}
	if c.MinQty <= 0 {
		c.MinQty = 1
	}
	if c.MaxQty < c.MinQty {
		c.MaxQty = c.MinQty + 99
	}
	if c.BidLow <= 0 {
		c.BidLow = 90.0
	}
	if c.BidHigh <= c.BidLow {
		c.BidHigh = c.BidLow + 10.0
	}
	if c.AskLow <= 0 {
		c.AskLow = c.BidHigh
	}
	if c.AskHigh <= c.AskLow {
		c.AskHigh = c.AskLow + 10.0
	}
	if c.MarketRatio < 0 || c.MarketRatio > 1 {
		c.MarketRatio = 0.2
	}
	if c.IntervalMS <= 0 {
		c.IntervalMS = 500
	}
}

// Incoming is one generated order, ready to feed into Book.Execute.
type Incoming struct {
	Type  orderbook.OrderType
	Side  orderbook.Side
	Qty   int64
	Price decimal.Decimal
}

// Generator produces random order flow. Deterministic for a fixed seed; a
// zero seed gets a non-deterministic source.
type Generator struct {
	cfg *Config
	rng *rand.Rand
}

func New(cfg *Config) *Generator {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.applyDefaults()

	src := rand.NewSource(cfg.Seed)
	if cfg.Seed == 0 {
		src = rand.NewSource(rand.Int63())
	}

	return &Generator{
		cfg: cfg,
		rng: rand.New(src),
	}
}

func (g *Generator) Config() *Config {
	return g.cfg
}

// price draws a price in [low, high), truncated to 2 decimals so a draw near
// the top of a band never lands in the next one.
func (g *Generator) price(low, high float64) decimal.Decimal {
	return decimal.NewFromFloat(low + g.rng.Float64()*(high-low)).Truncate(2)
}

func (g *Generator) qty() int64 {
	return g.rng.Int63n(g.cfg.MaxQty-g.cfg.MinQty+1) + g.cfg.MinQty
}

// SeedBook pre-loads the book with resting liquidity: for each of SeedLevels
// price points per side, two orders at the same price so every seeded level
// starts with a real time-priority queue.
func (g *Generator) SeedBook(book *orderbook.Book) error {
	for i := 0; i < g.cfg.SeedLevels; i++ {
		price := g.price(g.cfg.BidLow, g.cfg.BidHigh)
		if err := book.Insert(g.qty(), price, orderbook.BID); err != nil {
			return fmt.Errorf("seed bid: %w", err)
		}
		if err := book.Insert(g.qty(), price, orderbook.BID); err != nil {
			return fmt.Errorf("seed bid: %w", err)
		}
	}
	for i := 0; i < g.cfg.SeedLevels; i++ {
		price := g.price(g.cfg.AskLow, g.cfg.AskHigh)
		if err := book.Insert(g.qty(), price, orderbook.ASK); err != nil {
			return fmt.Errorf("seed ask: %w", err)
		}
		if err := book.Insert(g.qty(), price, orderbook.ASK); err != nil {
			return fmt.Errorf("seed ask: %w", err)
		}
	}
	return nil
}

// Next generates one random incoming order.
func (g *Generator) Next() Incoming {
	side := orderbook.BUY
	if g.rng.Intn(2) == 0 {
		side = orderbook.SELL
	}

	if g.rng.Float64() < g.cfg.MarketRatio {
		return Incoming{
			Type: orderbook.MARKET,
			Side: side,
			Qty:  g.qty(),
		}
	}

	return Incoming{
		Type:  orderbook.LIMIT,
		Side:  side,
		Qty:   g.qty(),
		Price: g.price(g.cfg.BidLow, g.cfg.AskHigh),
	}
}

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"matchbook/pkg/orderbook"
)

const (
	colorRed    = "\033[1;31m"
	colorGreen  = "\033[1;32m"
	colorYellow = "\033[1;33m"
	colorReset  = "\033[0m"
)

// Config controls the console ladder.
type Config struct {
	// MaxDepth caps the number of levels shown per side; 0 shows everything.
	MaxDepth int `yaml:"max_depth"`
	// BarUnit is the resting quantity represented by one bar glyph.
	BarUnit int64 `yaml:"bar_unit"`
	// NoColor strips the ANSI escapes, for dumb terminals and tests.
	NoColor bool `yaml:"no_color"`
}

func (c *Config) applyDefaults() {
	if c.BarUnit <= 0 {
		c.BarUnit = 10
	}
}

// Renderer writes a depth snapshot as a colored price ladder: asks in red,
// the bid-ask spread in bps in the middle, bids in green, each level with a
// proportional volume bar.
type Renderer struct {
	cfg *Config
}

func New(cfg *Config) *Renderer {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.applyDefaults()
	return &Renderer{cfg: cfg}
}

// Render writes one ladder for the given snapshot.
func (r *Renderer) Render(w io.Writer, d orderbook.Depth) error {
	if _, err := fmt.Fprintln(w, "========== Orderbook ========="); err != nil {
		return err
	}

	// Asks first, best level nearest the spread line.
	asks := clip(d.Asks, r.cfg.MaxDepth)
	for i := len(asks) - 1; i >= 0; i-- {
		if err := r.level(w, asks[i], colorRed); err != nil {
			return err
		}
	}

	if err := r.spread(w, d); err != nil {
		return err
	}

	for _, lvl := range clip(d.Bids, r.cfg.MaxDepth) {
		if err := r.level(w, lvl, colorGreen); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "==============================\n\n")
	return err
}

func (r *Renderer) level(w io.Writer, lvl orderbook.DepthLevel, color string) error {
	bars := strings.Repeat("█", int(lvl.Qty/r.cfg.BarUnit))
	_, err := fmt.Fprintf(w, "\t%s$%8s %5d%s %s\n",
		r.paint(color), lvl.Price.StringFixed(2), lvl.Qty, r.paint(colorReset), bars)
	return err
}

// spread prints the bid-ask spread in basis points, or a placeholder when
// either side is empty and no spread exists.
func (r *Renderer) spread(w io.Writer, d orderbook.Depth) error {
	if len(d.Bids) == 0 || len(d.Asks) == 0 {
		_, err := fmt.Fprintf(w, "\n%s======  no spread  ======%s\n\n", r.paint(colorYellow), r.paint(colorReset))
		return err
	}

	bestBid := d.Bids[0].Price
	bestAsk := d.Asks[0].Price
	bps := bestAsk.Sub(bestBid).Div(bestBid).Mul(decimal.NewFromInt(10000))

	_, err := fmt.Fprintf(w, "\n%s======  %sbps  ======%s\n\n", r.paint(colorYellow), bps.StringFixed(1), r.paint(colorReset))
	return err
}

func (r *Renderer) paint(code string) string {
	if r.cfg.NoColor {
		return ""
	}
	return code
}

func clip(levels []orderbook.DepthLevel, max int) []orderbook.DepthLevel {
	if max > 0 && len(levels) > max {
		return levels[:max]
	}
	return levels
}

package orderbook

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DepthLevel is the aggregate of one price level: total resting quantity and
// the number of resting orders.
type DepthLevel struct {
	Price  decimal.Decimal
	Qty    int64
	Orders int
}

// Depth is a point-in-time copy of the book, each side best-to-worst. It
// shares no state with the book; render it, store it, whatever.
type Depth struct {
	Bids []DepthLevel
	Asks []DepthLevel
}

// Depth snapshots both sides of the book.
func (b *Book) Depth() Depth {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Depth{
		Bids: sideDepth(b.bids, func(a, b decimal.Decimal) bool { return a.GreaterThan(b) }),
		Asks: sideDepth(b.asks, func(a, b decimal.Decimal) bool { return a.LessThan(b) }),
	}
}

func sideDepth(book map[string]*level, bestFirst func(a, b decimal.Decimal) bool) []DepthLevel {
	out := make([]DepthLevel, 0, len(book))
	for _, lvl := range book {
		var qty int64
		for i := 0; i < lvl.orders.Len(); i++ {
			qty += lvl.orders.At(i).Qty
		}
		out = append(out, DepthLevel{Price: lvl.price, Qty: qty, Orders: lvl.orders.Len()})
	}

	sort.Slice(out, func(i, j int) bool { return bestFirst(out[i].Price, out[j].Price) })
	return out
}

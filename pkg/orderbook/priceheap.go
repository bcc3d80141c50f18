package orderbook

import "github.com/shopspring/decimal"

// priceHeap implements heap.Interface over level prices, with the ordering
// injected: a max-heap serves bids and a min-heap serves asks, so Peek is the
// best price on either side. Prices are deduplicated by their canonical
// decimal string.
type priceHeap struct {
	prices []decimal.Decimal
	less   func(a, b decimal.Decimal) bool
	index  map[string]bool
}

func newPriceHeap(less func(a, b decimal.Decimal) bool) *priceHeap {
	return &priceHeap{
		less:  less,
		index: make(map[string]bool),
	}
}

func (h priceHeap) Len() int {
	return len(h.prices)
}

func (h priceHeap) Less(i, j int) bool {
	return h.less(h.prices[i], h.prices[j])
}

func (h priceHeap) Swap(i, j int) {
	h.prices[i], h.prices[j] = h.prices[j], h.prices[i]
}

func (h *priceHeap) Push(x any) {
	price := x.(decimal.Decimal)
	key := price.String()
	if !h.index[key] {
		h.index[key] = true
		h.prices = append(h.prices, price)
	}
}

func (h *priceHeap) Pop() any {
	n := len(h.prices)
	price := h.prices[n-1]
	h.prices = h.prices[:n-1]
	delete(h.index, price.String())
	return price
}

func (h *priceHeap) Peek() (decimal.Decimal, bool) {
	if len(h.prices) == 0 {
		return decimal.Decimal{}, false
	}
	return h.prices[0], true
}

func (h *priceHeap) reset() {
	h.prices = h.prices[:0]
	clear(h.index)
}

package orderbook

import (
	"container/heap"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceHeapOrdering(t *testing.T) {
	maxHeap := newPriceHeap(func(a, b decimal.Decimal) bool { return a.GreaterThan(b) })
	minHeap := newPriceHeap(func(a, b decimal.Decimal) bool { return a.LessThan(b) })

	for _, p := range []string{"100.5", "99.0", "101.25", "100.0"} {
		heap.Push(maxHeap, dec(p))
		heap.Push(minHeap, dec(p))
	}

	if top, ok := maxHeap.Peek(); !ok || !top.Equal(dec("101.25")) {
		t.Errorf("expected max-heap peek 101.25, got %s", top)
	}
	if top, ok := minHeap.Peek(); !ok || !top.Equal(dec("99.0")) {
		t.Errorf("expected min-heap peek 99.0, got %s", top)
	}

	want := []string{"101.25", "100.5", "100", "99"}
	for i, w := range want {
		got := heap.Pop(maxHeap).(decimal.Decimal)
		if got.String() != w {
			t.Errorf("max-heap pop %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestPriceHeapDeduplicates(t *testing.T) {
	h := newPriceHeap(func(a, b decimal.Decimal) bool { return a.LessThan(b) })

	heap.Push(h, dec("100.0"))
	heap.Push(h, dec("100.0"))
	heap.Push(h, dec("100.00")) // same canonical price

	if h.Len() != 1 {
		t.Errorf("expected 1 entry after duplicate pushes, got %d", h.Len())
	}
}

func TestPriceHeapPeekEmpty(t *testing.T) {
	h := newPriceHeap(func(a, b decimal.Decimal) bool { return a.LessThan(b) })

	if _, ok := h.Peek(); ok {
		t.Error("expected peek on empty heap to report not ok")
	}

	heap.Push(h, dec("100.0"))
	heap.Pop(h)
	if _, ok := h.Peek(); ok {
		t.Error("expected peek after drain to report not ok")
	}
}

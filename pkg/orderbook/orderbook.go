package orderbook

import (
	"container/heap"
	"sync"

	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"
)

// level is one price level: the level price plus its resting orders in
// arrival order. The deque front is always the oldest order, so consuming
// front-to-back is time priority with no re-sorting.
type level struct {
	price  decimal.Decimal
	orders deque.Deque[*Order]
}

// Book is a single-instrument limit order book matching with price-time
// priority. Each side is a map of price levels keyed by the canonical decimal
// price string, plus a heap ordered best-price-first (max for bids, min for
// asks) so the best quote is a peek on either side.
//
// All exported methods are serialized on one mutex: matching reads and
// mutates both sides as a single logical operation, so there is no
// finer-grained safe decomposition.
type Book struct {
	symbol string

	bids map[string]*level
	asks map[string]*level

	bidHeap *priceHeap
	askHeap *priceHeap

	// Arrival counter; assigned to orders at insertion.
	seq uint64

	callbacks []func([]Trade)

	mu sync.Mutex
}

func NewBook(symbol string) *Book {
	bidHeap := newPriceHeap(func(a, b decimal.Decimal) bool { return a.GreaterThan(b) }) // Max-heap
	askHeap := newPriceHeap(func(a, b decimal.Decimal) bool { return a.LessThan(b) })    // Min-heap

	return &Book{
		symbol:  symbol,
		bids:    make(map[string]*level),
		asks:    make(map[string]*level),
		bidHeap: bidHeap,
		askHeap: askHeap,
	}
}

func (b *Book) Symbol() string {
	return b.symbol
}

// RegisterTradeCallback registers fn to receive the trades produced by each
// Execute call that fills anything. Callbacks run synchronously under the
// book lock and must not call back into the book.
func (b *Book) RegisterTradeCallback(fn func([]Trade)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.callbacks = append(b.callbacks, fn)
}

// Insert places a new resting order without attempting to match. The level
// is created if absent. Inserting may leave the book transiently crossed;
// that is legal and is exactly what a later Execute consumes.
func (b *Book) Insert(qty int64, price decimal.Decimal, side BookSide) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.insert(qty, price, side)
}

func (b *Book) insert(qty int64, price decimal.Decimal, side BookSide) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if !price.IsPositive() {
		return ErrInvalidPrice
	}

	var book map[string]*level
	var h *priceHeap
	switch side {
	case BID:
		book, h = b.bids, b.bidHeap
	case ASK:
		book, h = b.asks, b.askHeap
	default:
		return ErrInvalidSide
	}

	b.seq++
	b.addToBook(book, h, &Order{Seq: b.seq, Side: side, Price: price, Qty: qty})
	return nil
}

func (b *Book) addToBook(book map[string]*level, h *priceHeap, order *Order) {
	key := order.Price.String()
	lvl := book[key]
	if lvl == nil {
		lvl = &level{price: order.Price}
		book[key] = lvl
		heap.Push(h, order.Price)
	}
	lvl.orders.PushBack(order)
}

// BestQuote returns the best resting price on a side: the highest bid or the
// lowest ask. It returns ErrEmptyBook when the side has no levels.
func (b *Book) BestQuote(side BookSide) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.bestQuote(side)
}

func (b *Book) bestQuote(side BookSide) (decimal.Decimal, error) {
	var h *priceHeap
	switch side {
	case BID:
		h = b.bidHeap
	case ASK:
		h = b.askHeap
	default:
		return decimal.Decimal{}, ErrInvalidSide
	}

	price, ok := h.Peek()
	if !ok {
		return decimal.Decimal{}, ErrEmptyBook
	}
	return price, nil
}

// Execute matches an incoming order against the opposing side of the book.
//
// A MARKET order ignores price, sweeps the whole opposing side best to worst,
// and discards any unfilled remainder; it never rests. A LIMIT order sweeps
// only the levels crossing its price and rests any unfilled remainder at the
// limit price on its own side; a limit that does not cross rests in full. An
// exactly-filled limit rests nothing.
//
// The returned Fill is the total units filled and the accumulated notional.
func (b *Book) Execute(typ OrderType, qty int64, side Side, price decimal.Decimal) (Fill, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if qty <= 0 {
		return Fill{}, ErrInvalidQuantity
	}
	if side != BUY && side != SELL {
		return Fill{}, ErrInvalidSide
	}

	var fill Fill
	var trades []Trade
	var err error

	switch typ {
	case MARKET:
		fill, trades = b.executeMarket(qty, side)
	case LIMIT:
		fill, trades, err = b.executeLimit(qty, side, price)
	default:
		return Fill{}, ErrInvalidOrderType
	}
	if err != nil {
		return Fill{}, err
	}

	b.pruneEmptyLevels()

	if len(trades) > 0 {
		for _, cb := range b.callbacks {
			cb(trades)
		}
	}
	return fill, nil
}

func (b *Book) executeMarket(qty int64, side Side) (Fill, []Trade) {
	counterBook, counterHeap := b.asks, b.askHeap
	if side == SELL {
		counterBook, counterHeap = b.bids, b.bidHeap
	}

	// Every level crosses; the remainder, if any, is discarded.
	return b.sweep(qty, side, counterBook, counterHeap, func(decimal.Decimal) bool { return true })
}

func (b *Book) executeLimit(qty int64, side Side, price decimal.Decimal) (Fill, []Trade, error) {
	if !price.IsPositive() {
		return Fill{}, nil, ErrInvalidPrice
	}

	var counterBook, restBook map[string]*level
	var counterHeap, restHeap *priceHeap
	var restSide BookSide
	var crossable func(levelPrice decimal.Decimal) bool

	if side == BUY {
		counterBook, counterHeap = b.asks, b.askHeap
		restBook, restHeap, restSide = b.bids, b.bidHeap, BID
		crossable = func(levelPrice decimal.Decimal) bool { return levelPrice.LessThanOrEqual(price) }
	} else {
		counterBook, counterHeap = b.bids, b.bidHeap
		restBook, restHeap, restSide = b.asks, b.askHeap, ASK
		crossable = func(levelPrice decimal.Decimal) bool { return levelPrice.GreaterThanOrEqual(price) }
	}

	var fill Fill
	var trades []Trade
	if best, ok := counterHeap.Peek(); ok && crossable(best) {
		fill, trades = b.sweep(qty, side, counterBook, counterHeap, crossable)
	}

	// Only a strictly positive remainder rests.
	if remaining := qty - fill.Qty; remaining > 0 {
		b.seq++
		b.addToBook(restBook, restHeap, &Order{Seq: b.seq, Side: restSide, Price: price, Qty: remaining})
	}

	return fill, trades, nil
}

// sweep consumes resting orders on the opposing side, best price first and
// oldest order first within a level, until qty is filled or no crossable
// level remains. Levels only worsen in traversal order, so the first
// non-crossable level ends the sweep. A level emptied by the sweep is removed
// on the spot.
func (b *Book) sweep(
	qty int64,
	side Side,
	counterBook map[string]*level,
	counterHeap *priceHeap,
	crossable func(levelPrice decimal.Decimal) bool,
) (Fill, []Trade) {
	var fill Fill
	var trades []Trade

	remaining := qty
	for remaining > 0 {
		bestPrice, ok := counterHeap.Peek()
		if !ok || !crossable(bestPrice) {
			break
		}

		key := bestPrice.String()
		lvl := counterBook[key]
		if lvl == nil || lvl.orders.Len() == 0 {
			heap.Pop(counterHeap)
			delete(counterBook, key)
			continue
		}

		maker := lvl.orders.Front()
		matchQty := min(remaining, maker.Qty)
		maker.Qty -= matchQty
		remaining -= matchQty
		if maker.Qty == 0 {
			lvl.orders.PopFront()
		}

		fill.Qty += matchQty
		fill.Notional = fill.Notional.Add(bestPrice.Mul(decimal.NewFromInt(matchQty)))
		trades = append(trades, Trade{
			Price:     bestPrice,
			Qty:       matchQty,
			TakerSide: side,
			MakerSeq:  maker.Seq,
		})

		if lvl.orders.Len() == 0 {
			heap.Pop(counterHeap)
			delete(counterBook, key)
		}
	}

	return fill, trades
}

// pruneEmptyLevels drops every level holding no orders, on both sides, and
// repairs the heaps. The sweep removes levels it empties as it goes, so this
// post-execution pass is normally a no-op. Idempotent, O(levels).
func (b *Book) pruneEmptyLevels() {
	pruneSide(b.bids, b.bidHeap)
	pruneSide(b.asks, b.askHeap)
}

func pruneSide(book map[string]*level, h *priceHeap) {
	pruned := false
	for key, lvl := range book {
		if lvl.orders.Len() == 0 {
			delete(book, key)
			pruned = true
		}
	}
	if !pruned {
		return
	}

	h.reset()
	for _, lvl := range book {
		heap.Push(h, lvl.price)
	}
}

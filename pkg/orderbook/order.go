package orderbook

import "github.com/shopspring/decimal"

// Side is the direction of an incoming order.
type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// BookSide is the side of the book an order rests on. A BUY rests as a BID,
// a SELL rests as an ASK.
type BookSide string

const (
	BID BookSide = "BID"
	ASK BookSide = "ASK"
)

type OrderType string

const (
	LIMIT  OrderType = "LIMIT"
	MARKET OrderType = "MARKET"
)

// Order is a resting book entry. The book owns every order it holds and never
// hands out a reference to one; Qty is the only field mutated after insertion
// (decremented in place on partial fill).
//
// Seq is assigned from the book's monotonic counter at insertion and is used
// only to break ties inside a price level: lower Seq fills first.
type Order struct {
	Seq   uint64
	Side  BookSide
	Price decimal.Decimal
	Qty   int64
}

package orderbook

import "github.com/shopspring/decimal"

// Fill is the aggregate result of one Execute call. Notional is the summed
// level-price-times-units over every consumed unit, not an average; callers
// wanting an average fill price divide Notional by Qty themselves.
type Fill struct {
	Qty      int64
	Notional decimal.Decimal
}

// Trade records one resting order being hit during a sweep: Qty units at the
// maker's level Price. MakerSeq identifies the resting order.
type Trade struct {
	Price     decimal.Decimal
	Qty       int64
	TakerSide Side
	MakerSeq  uint64
}

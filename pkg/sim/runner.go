package sim

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"matchbook/pkg/logging"
	"matchbook/pkg/orderbook"
)

// Run streams generated orders into the book on the configured interval until
// ctx is done. Every submission is logged with its own request id.
func (g *Generator) Run(ctx context.Context, book *orderbook.Book) error {
	log, ctx := logging.GetLogger(ctx)

	ticker := time.NewTicker(time.Duration(g.cfg.IntervalMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			inc := g.Next()
			id := uuid.NewString()

			fill, err := book.Execute(inc.Type, inc.Qty, inc.Side, inc.Price)
			if err != nil {
				log.Error(ctx, "order rejected",
					zap.String("order_id", id),
					zap.String("type", string(inc.Type)),
					zap.Error(err),
				)
				continue
			}

			log.Info(ctx, "order executed",
				zap.String("order_id", id),
				zap.String("symbol", book.Symbol()),
				zap.String("type", string(inc.Type)),
				zap.String("side", string(inc.Side)),
				zap.Int64("qty", inc.Qty),
				zap.String("price", inc.Price.String()),
				zap.Int64("filled", fill.Qty),
				zap.String("notional", fill.Notional.String()),
			)
		}
	}
}

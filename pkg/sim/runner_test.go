package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"matchbook/pkg/orderbook"
)

func TestRunStopsOnContextDone(t *testing.T) {
	cfg := testConfig(5)
	cfg.IntervalMS = 1
	gen := New(cfg)

	book := orderbook.NewBook(cfg.Symbol)
	require.NoError(t, gen.SeedBook(book))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, gen.Run(ctx, book))
}

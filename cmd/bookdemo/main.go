package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"matchbook/config"
	"matchbook/pkg/logging"
	"matchbook/pkg/orderbook"
	"matchbook/pkg/render"
	"matchbook/pkg/sim"
)

func main() {
	configPath := flag.String("config", "./config/bookdemo.yml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewLogger(logging.ParseLevel(cfg.LogLevel))
	defer log.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	gen := sim.New(cfg.Sim)
	book := orderbook.NewBook(gen.Config().Symbol)
	book.RegisterTradeCallback(func(trades []orderbook.Trade) {
		for _, trade := range trades {
			log.Info(ctx, "trade",
				zap.String("symbol", book.Symbol()),
				zap.String("taker_side", string(trade.TakerSide)),
				zap.String("price", trade.Price.String()),
				zap.Int64("qty", trade.Qty),
			)
		}
	})

	if err := gen.SeedBook(book); err != nil {
		log.Fatal(ctx, "seed book failed", zap.Error(err))
	}

	go func() {
		if err := gen.Run(ctx, book); err != nil {
			log.Error(ctx, "generator stopped", zap.Error(err))
		}
	}()

	renderer := render.New(cfg.Render)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Println("Orderbook demo started. Press Ctrl+C to exit.")

	for {
		select {
		case <-ticker.C:
			if err := renderer.Render(os.Stdout, book.Depth()); err != nil {
				log.Error(ctx, "render failed", zap.Error(err))
			}
		case <-sigs:
			fmt.Println("Shutting down...")
			cancel()

			// One last ladder on the way out.
			renderer.Render(os.Stdout, book.Depth()) //nolint:errcheck

			fmt.Println("Exited cleanly.")
			return
		}
	}
}

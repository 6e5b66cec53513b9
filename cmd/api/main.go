package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/mraditya/go-sheet-market.git/internal/auth"
	"github.com/mraditya/go-sheet-market.git/internal/config"
	"github.com/mraditya/go-sheet-market.git/internal/httpx"
	kafkax "github.com/mraditya/go-sheet-market.git/internal/kafka"
	"github.com/mraditya/go-sheet-market.git/internal/market"
	"github.com/mraditya/go-sheet-market.git/internal/redisx"
	"github.com/mraditya/go-sheet-market.git/internal/sheetapi"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.SheetAPIURL == "" {
		log.Fatal("SHEET_API_URL is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Backend spreadsheet
	sheets := sheetapi.New(cfg.SheetAPIURL)

	// Redis (cache baris)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers; event stream opsional
	var placed, changed *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		placed = kafkax.NewProducer(cfg.KafkaBrokers, market.TopicOrderPlaced, 1024)
		placed.Start(ctx)
		changed = kafkax.NewProducer(cfg.KafkaBrokers, market.TopicOrderStatusChanged, 1024)
		changed.Start(ctx)
	}

	tokens := auth.Tokens{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}
	aliases := market.Aliases(cfg.LegacyOwnerAliases)

	router := httpx.NewRouter()

	ah := &httpx.AuthHandler{Sheets: sheets, Tokens: tokens}
	ah.Register(router)

	router.Group(func(r chi.Router) {
		r.Use(httpx.RequireAuth(tokens))

		ph := &httpx.ProductsHandler{Sheets: sheets, Redis: rdb, Aliases: aliases}
		ph.Register(r)

		oh := &httpx.OrdersHandler{
			Sheets:  sheets,
			Redis:   rdb,
			Placed:  placed,
			Changed: changed,
			Aliases: aliases,
			Service: cfg.ServiceName,
		}
		oh.Register(r)
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	if placed != nil {
		placed.Close() // tutup inbox -> flush & close writer
		placed.WaitClosed()
	}
	if changed != nil {
		changed.Close()
		changed.WaitClosed()
	}
}

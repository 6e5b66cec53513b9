package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	kafkax "github.com/mraditya/go-sheet-market.git/internal/kafka"
	"github.com/mraditya/go-sheet-market.git/internal/market"
	"github.com/mraditya/go-sheet-market.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

// Service mengubah event order menjadi notifikasi ke pihak yang relevan.
// Pengiriman nyata (email/push) belum ada; untuk sekarang cukup log dengan
// format yang stabil supaya gampang diganti transport lain.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderEvent dipasang sebagai handler consumer untuk kedua topic order.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env market.EventEnvelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup per event_id; event ulang bukan error
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	switch env.EventType {
	case market.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[market.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Printf("notify seller=%s: pesanan baru %s (%s x%d, total %.0f) dari %s",
			p.SellerEmail, p.OrderID, p.ProductName, p.Quantity, p.TotalPrice, p.BuyerEmail)

	case market.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[market.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Printf("notify buyer=%s: status pesanan %s berubah %s -> %s",
			p.BuyerEmail, p.OrderID, p.OldStatus, p.NewStatus)

	default:
		// event type lain di topic yang sama diabaikan
	}
	return nil
}

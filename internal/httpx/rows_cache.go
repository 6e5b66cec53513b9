package httpx

import (
	"context"
	"fmt"

	"github.com/mraditya/go-sheet-market.git/internal/market"
	"github.com/mraditya/go-sheet-market.git/internal/redisx"
	"github.com/mraditya/go-sheet-market.git/internal/sheetapi"
	"github.com/redis/go-redis/v9"
)

// Cache baris mentah di level gateway. Mediator sendiri tetap tanpa cache;
// yang disimpan di sini cuma payload read terakhir per sheet, TTL pendek.
// rdb boleh nil (cache dimatikan), read selalu jadi fallback.

func fetchRows(ctx context.Context, rdb *redis.Client, sheet string, read func(context.Context) sheetapi.Result) ([]market.Row, string) {
	key := fmt.Sprintf(redisx.KeyRows, sheet)

	if rdb != nil {
		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			if rows, err := market.DecodeRows(raw); err == nil {
				return rows, ""
			}
			// cache korup: buang dan baca ulang dari backend
			_ = rdb.Del(ctx, key).Err()
		}
	}

	res := read(ctx)
	if !res.Success {
		return nil, res.Error
	}
	rows, err := market.DecodeRows(res.Data)
	if err != nil {
		return nil, "unexpected row data: " + err.Error()
	}

	if rdb != nil && len(res.Data) > 0 {
		_ = rdb.Set(ctx, key, []byte(res.Data), redisx.TTLRows).Err()
	}
	return rows, ""
}

func invalidateRows(ctx context.Context, rdb *redis.Client, sheet string) {
	if rdb == nil {
		return
	}
	_ = rdb.Del(ctx, fmt.Sprintf(redisx.KeyRows, sheet)).Err()
}

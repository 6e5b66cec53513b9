package redisx

import "time"

const (
	// Cache baris mentah per sheet: rows:{sheet} -> JSON array of arrays.
	// Membaca spreadsheet lewat Apps Script itu lambat; TTL pendek cukup.
	KeyRows = "rows:%s"

	// Dedup pemrosesan event: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLRows  = 30 * time.Second
	TTLDedup = 48 * time.Hour
)

package config

import "time"

const (
	// Exchange fallback when neither a direct nor an inverse rate is configured.
	DefaultExchangeRate = 1000

	// Hours validation thresholds
	HoursRatioHigh = 3.0
	HoursRatioLow  = 0.3
	HoursHardMax   = 200

	// Ledger history paging
	HistoryPageSize    = 20
	HistoryMaxPageSize = 100

	// HTTP server
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 30 * time.Second
	ShutdownTimeout = 15 * time.Second
)

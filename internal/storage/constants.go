package db

import "time"

// Connection retry defaults.
const (
	// DefaultConnectRetries is the number of pool creation attempts before giving up.
	DefaultConnectRetries = 5
	// DefaultConnectRetryDelay is the sleep between pool creation attempts.
	DefaultConnectRetryDelay = 2 * time.Second
)

// Database pool default constants
const (
	defaultMaxConns          int32         = 10
	defaultMinConns          int32         = 1
	defaultMaxConnIdleTime   time.Duration = 30 * time.Minute
	defaultMaxConnLifetime   time.Duration = time.Hour
	defaultHealthCheckPeriod time.Duration = time.Minute
)

const (
	migrationLockID = 1000

	logFieldAttempt = "attempt"
	logFieldCode    = "code"
)

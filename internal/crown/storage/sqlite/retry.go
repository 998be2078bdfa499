package sqlite

import (
	"strings"
	"time"
)

// retryOnBusy retries fn on SQLITE_BUSY errors with short backoff.
// WAL mode plus busy_timeout handles most contention, but a concurrent
// writer can still surface SQLITE_BUSY under load. Non-busy errors fail
// immediately.
func retryOnBusy(fn func() error) error {
	const maxAttempts = 5
	backoff := 10 * time.Millisecond

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !isSQLiteBusy(err) {
			return err
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return err
}

// isSQLiteBusy reports whether err looks like an SQLITE_BUSY /
// database-locked error from the driver.
func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// ABOUTME: Exponential backoff with jitter for bounded polling loops
// ABOUTME: Paces the vector-index readiness check after index creation
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps a single wait so a bounded poll loop keeps probing.
const maxBackoff = 30 * time.Second

// CalculateBackoff returns the wait before the given 1-based attempt:
// base doubled per attempt, capped, with up to ±25% random jitter.
// Attempt 0 (or negative) waits nothing.
func CalculateBackoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30 // keep the shift in range
	}
	backoff := base << uint(attempt)
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

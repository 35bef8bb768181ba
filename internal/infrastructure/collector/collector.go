package collector

import (
	"context"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (compatible; FutureAtoms/1.0)"

func defaultHTTPClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return client
}

// wait sleeps for the given duration unless the context is cancelled first.
// Delays here are crude outbound throttling, not a correctness mechanism.
func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

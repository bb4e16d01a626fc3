package contract

import (
	"context"
	"time"
)

// ResponseCache stores raw upstream responses for a short time.
type ResponseCache interface {
	// Get reports found=false on a miss. A non-nil error means the backend could not be read.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// readChunk is the granularity at which throttled reads reserve budget
const readChunk = 64 * 1024

// ReadLimiter throttles mesh file reads to a bytes-per-second budget
// so a background tagging run does not saturate disk I/O. A nil
// ReadLimiter performs no throttling.
type ReadLimiter struct {
	limiter *rate.Limiter
}

// NewReadLimiter creates a limiter for the given byte budget. A
// non-positive budget returns nil, meaning unthrottled.
func NewReadLimiter(bytesPerSec float64) *ReadLimiter {
	if bytesPerSec <= 0 {
		return nil
	}
	burst := int(bytesPerSec)
	if burst < readChunk {
		burst = readChunk
	}
	return &ReadLimiter{
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), burst),
	}
}

// WaitBytes blocks until n bytes of read budget are available.
// Reservations larger than the burst are split into chunks.
func (l *ReadLimiter) WaitBytes(ctx context.Context, n int) error {
	if l == nil || n <= 0 {
		return nil
	}
	for n > 0 {
		chunk := n
		if chunk > readChunk {
			chunk = readChunk
		}
		if err := l.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// ChunkSize returns the preferred read size for throttled readers
func (l *ReadLimiter) ChunkSize() int {
	return readChunk
}

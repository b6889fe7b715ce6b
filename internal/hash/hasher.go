// Package hash produces content fingerprints for mesh files. A
// fingerprint identifies the file's bytes regardless of name or
// location, so renamed or relocated meshes keep their remembered
// judgments.
package hash

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/okoshkin/tagsmith/internal/model"
	"github.com/okoshkin/tagsmith/internal/worker"
)

// Hasher fingerprints files, memoizing results per path so repeated
// runs over the same load order do not re-read unchanged meshes. The
// memo key includes size and mtime, so an edited file is re-hashed.
type Hasher struct {
	memo    *gocache.Cache
	limiter *worker.ReadLimiter
}

// New creates a hasher. limiter may be nil for unthrottled reads.
func New(limiter *worker.ReadLimiter) *Hasher {
	return &Hasher{
		memo:    gocache.New(gocache.NoExpiration, 10*time.Minute),
		limiter: limiter,
	}
}

// Fingerprint hashes the file at path
func (h *Hasher) Fingerprint(ctx context.Context, path string) (model.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat mesh: %w", err)
	}

	key := memoKey(path, info.Size(), info.ModTime())
	if fp, found := h.memo.Get(key); found {
		return fp.(model.Fingerprint), nil
	}

	fp, err := h.hashFile(ctx, path)
	if err != nil {
		return "", err
	}

	h.memo.Set(key, fp, gocache.NoExpiration)
	return fp, nil
}

// hashFile reads and hashes the file, honoring the read throttle
func (h *Hasher) hashFile(ctx context.Context, path string) (model.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open mesh: %w", err)
	}
	defer func() { _ = f.Close() }()

	chunk := 64 * 1024
	if h.limiter != nil {
		chunk = h.limiter.ChunkSize()
	}

	digest := sha256.New()
	buf := make([]byte, chunk)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := f.Read(buf)
		if n > 0 {
			if werr := h.limiter.WaitBytes(ctx, n); werr != nil {
				return "", werr
			}
			digest.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read mesh: %w", err)
		}
	}

	return model.Fingerprint(hex.EncodeToString(digest.Sum(nil))), nil
}

// memoKey builds the per-path memo key
func memoKey(path string, size int64, mtime time.Time) string {
	return fmt.Sprintf("%s|%d|%d", path, size, mtime.UnixNano())
}

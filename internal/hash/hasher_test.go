package hash

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFingerprint_ContentAddressed(t *testing.T) {
	dir := t.TempDir()
	content := []byte("NIF mesh bytes")
	a := writeFile(t, dir, "cuirass.nif", content)
	b := writeFile(t, dir, "renamed_copy.nif", content)
	c := writeFile(t, dir, "other.nif", []byte("different bytes"))

	h := New(nil)
	ctx := context.Background()

	fpA, err := h.Fingerprint(ctx, a)
	if err != nil {
		t.Fatalf("fingerprint a: %v", err)
	}
	fpB, err := h.Fingerprint(ctx, b)
	if err != nil {
		t.Fatalf("fingerprint b: %v", err)
	}
	fpC, err := h.Fingerprint(ctx, c)
	if err != nil {
		t.Fatalf("fingerprint c: %v", err)
	}

	if fpA != fpB {
		t.Errorf("same bytes, different fingerprints: %s vs %s", fpA, fpB)
	}
	if fpA == fpC {
		t.Error("different bytes produced the same fingerprint")
	}

	want := sha256.Sum256(content)
	if string(fpA) != hex.EncodeToString(want[:]) {
		t.Errorf("fingerprint %s does not match sha256 of content", fpA)
	}
}

func TestFingerprint_MissingFile(t *testing.T) {
	h := New(nil)
	if _, err := h.Fingerprint(context.Background(), filepath.Join(t.TempDir(), "absent.nif")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFingerprint_MemoInvalidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "boots.nif", []byte("v1"))

	h := New(nil)
	ctx := context.Background()

	fp1, err := h.Fingerprint(ctx, path)
	if err != nil {
		t.Fatalf("first fingerprint: %v", err)
	}

	// Same size so only mtime distinguishes the versions
	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	fp2, err := h.Fingerprint(ctx, path)
	if err != nil {
		t.Fatalf("second fingerprint: %v", err)
	}
	if fp1 == fp2 {
		t.Error("edited file returned memoized fingerprint")
	}
}

func TestFingerprint_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "helm.nif", []byte("bytes"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := New(nil)
	if _, err := h.Fingerprint(ctx, path); err == nil {
		t.Error("expected error from cancelled context")
	}
}

package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okoshkin/tagsmith/internal/model"
)

// Load reads a memory snapshot from path. A missing or unreadable
// snapshot yields an empty store: absence of history is a valid start
// state and must never block processing.
func Load(path string) Memories {
	data, err := os.ReadFile(path)
	if err != nil {
		return New()
	}

	var raw map[model.Fingerprint]*Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return New()
	}

	m := New()
	for fp, e := range raw {
		if e == nil {
			e = &Entry{}
		}
		m[fp] = e
	}
	return m
}

// Save writes the snapshot atomically: the full document goes to a
// temp file in the target directory, then replaces the previous
// snapshot by rename. Durable on return.
func Save(path string, m Memories) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memory: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create memory dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".memory-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Import merges the snapshot at importPath into the primary snapshot
// at path and persists the result. Local answers win over imported
// ones; filenames are unioned.
func Import(path, importPath string) (Memories, error) {
	if _, err := os.Stat(importPath); err != nil {
		return nil, fmt.Errorf("import snapshot: %w", err)
	}
	local := Load(path)
	imported := Load(importPath)
	Merge(local, imported)
	if err := Save(path, local); err != nil {
		return nil, fmt.Errorf("persist merged memory: %w", err)
	}
	return local, nil
}

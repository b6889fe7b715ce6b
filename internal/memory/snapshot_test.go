package memory

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/okoshkin/tagsmith/internal/model"
)

func sampleMemories() Memories {
	m := New()
	m.RecordName("a1b2c3", "meshes/armor/iron/cuirass.nif")
	m.RecordName("a1b2c3", "meshes/armor/iron/cuirass_alt.nif")
	m.RecordAnswer("a1b2c3", "SOS_Revealing", model.AnswerYes)
	m.RecordAnswer("a1b2c3", "ArmorHasFur", model.AnswerMaybeNo)
	m.RecordName("d4e5f6", "meshes/armor/fur/boots.nif")
	return m
}

func TestLoad_MissingFileYieldsEmpty(t *testing.T) {
	m := Load(filepath.Join(t.TempDir(), "absent.json"))
	if m == nil || len(m) != 0 {
		t.Errorf("expected empty store, got %v", m)
	}
}

func TestLoad_CorruptFileYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	m := Load(path)
	if len(m) != 0 {
		t.Errorf("expected empty store for corrupt snapshot, got %v", m)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	m := sampleMemories()

	if err := Save(path, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	loaded := Load(path)
	if !reflect.DeepEqual(loaded, m) {
		t.Errorf("loaded store differs:\n got %#v\nwant %#v", loaded, m)
	}

	// Re-saving an unmodified reload yields equivalent bytes
	if err := Save(path, loaded); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("save(load(save(M))) produced different bytes")
	}
}

func TestSave_WireEnumValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	m := New()
	m.RecordName("h1", "a.nif")
	m.RecordAnswer("h1", "K1", model.AnswerYes)
	m.RecordAnswer("h1", "K2", model.AnswerNo)
	m.RecordAnswer("h1", "K3", model.AnswerMaybeYes)
	m.RecordAnswer("h1", "K4", model.AnswerMaybeNo)

	if err := Save(path, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]struct {
		Filenames []string       `json:"filenames"`
		Keywords  map[string]int `json:"keywords"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]int{"K1": 1, "K2": 2, "K3": 3, "K4": 4}
	if !reflect.DeepEqual(raw["h1"].Keywords, want) {
		t.Errorf("wire keywords = %v, want %v", raw["h1"].Keywords, want)
	}
}

func TestSave_OmitsEmptyKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	m := New()
	m.RecordName("h1", "a.nif")

	if err := Save(path, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(`"keywords"`)) {
		t.Error("undecided entry serialized a keywords field")
	}
}

func TestSave_CreatesDirectoryAndReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "memory.json")

	if err := Save(path, sampleMemories()); err != nil {
		t.Fatalf("save into missing dir: %v", err)
	}

	// Overwrite with a different store; no temp files may linger
	m2 := New()
	m2.RecordName("zz", "z.nif")
	if err := Save(path, m2); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the snapshot in %s, found %d entries", filepath.Dir(path), len(entries))
	}

	loaded := Load(path)
	if !reflect.DeepEqual(loaded, m2) {
		t.Error("overwritten snapshot did not replace the previous one")
	}
}

func TestImport_MergesAndPersists(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "memory.json")
	external := filepath.Join(dir, "import.json")

	local := New()
	local.RecordName("h1", "b.nif")
	local.RecordAnswer("h1", "K", model.AnswerNo)
	if err := Save(primary, local); err != nil {
		t.Fatal(err)
	}

	imported := New()
	imported.RecordName("h1", "a.nif")
	imported.RecordAnswer("h1", "K", model.AnswerYes)
	imported.RecordName("h2", "c.nif")
	if err := Save(external, imported); err != nil {
		t.Fatal(err)
	}

	merged, err := Import(primary, external)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if got := merged.Answer("h1", "K"); got != model.AnswerNo {
		t.Errorf("local answer lost: got %v", got)
	}
	if len(merged["h1"].Filenames) != 2 {
		t.Errorf("filenames not unioned: %v", merged["h1"].Filenames)
	}

	// The merge is durable
	reloaded := Load(primary)
	if !reflect.DeepEqual(reloaded, merged) {
		t.Error("persisted snapshot differs from merge result")
	}
}

func TestImport_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := Import(filepath.Join(dir, "memory.json"), filepath.Join(dir, "absent.json")); err == nil {
		t.Error("expected error for missing import snapshot")
	}
}

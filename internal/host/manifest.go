package host

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okoshkin/tagsmith/internal/model"
)

// manifestFile is the YAML form of a record manifest
type manifestFile struct {
	VariantRaces []string         `yaml:"variant_races"`
	Records      []manifestRecord `yaml:"records"`
}

type manifestRecord struct {
	Name       string              `yaml:"name"`
	Kind       string              `yaml:"kind"`
	Race       string              `yaml:"race"`
	Keywords   []string            `yaml:"keywords"`
	Components []manifestComponent `yaml:"components"`
}

type manifestComponent struct {
	Name  string   `yaml:"name"`
	Mesh  string   `yaml:"mesh"`
	Slots []string `yaml:"slots"`
}

// ManifestHost serves records from YAML manifest files under a data
// directory. Keyword applications are kept in memory and written out
// as a JSON patch report; the manifests themselves are never modified.
type ManifestHost struct {
	dataDir      string
	records      []*model.Record
	variantRaces map[string]bool
	definedKw    map[string]bool
	applied      map[string][]string // record name → keywords added
	logOut       io.Writer
}

// LoadManifests reads every .yaml/.yml manifest under dir (one level)
// and builds a host over them. Mesh paths are resolved relative to dir.
func LoadManifests(dir string, logOut io.Writer) (*ManifestHost, error) {
	if logOut == nil {
		logOut = os.Stderr
	}
	h := &ManifestHost{
		dataDir:      dir,
		variantRaces: make(map[string]bool),
		definedKw:    make(map[string]bool),
		applied:      make(map[string][]string),
		logOut:       logOut,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read manifest dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no manifests in %s", dir)
	}

	for _, name := range names {
		if err := h.loadFile(filepath.Join(dir, name)); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *ManifestHost) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("parse manifest %s: %w", filepath.Base(path), err)
	}

	for _, race := range mf.VariantRaces {
		h.variantRaces[race] = true
	}

	for _, mr := range mf.Records {
		if mr.Name == "" {
			return fmt.Errorf("manifest %s: record without name", filepath.Base(path))
		}
		rec := &model.Record{
			Name:     mr.Name,
			Kind:     mr.Kind,
			Race:     mr.Race,
			Keywords: append([]string(nil), mr.Keywords...),
		}
		for _, mc := range mr.Components {
			slots, err := model.ParseSlots(mc.Slots)
			if err != nil {
				return fmt.Errorf("manifest %s, record %s, component %s: %w",
					filepath.Base(path), mr.Name, mc.Name, err)
			}
			rec.Components = append(rec.Components, model.Component{
				Name:     mc.Name,
				MeshPath: mc.Mesh,
				Slots:    slots,
			})
		}
		h.records = append(h.records, rec)
	}
	return nil
}

// Records enumerates the loaded records of the given kind. An empty
// kind returns everything.
func (h *ManifestHost) Records(ctx context.Context, kind string) ([]*model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if kind == "" {
		return h.records, nil
	}
	var out []*model.Record
	for _, rec := range h.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out, nil
}

// IsVariant reports whether the record's race is a declared
// non-playable variant
func (h *ManifestHost) IsVariant(rec *model.Record) bool {
	return h.variantRaces[rec.Race]
}

// ResolveMesh resolves a mesh reference against the data directory
func (h *ManifestHost) ResolveMesh(meshPath string) string {
	if filepath.IsAbs(meshPath) {
		return meshPath
	}
	return filepath.Join(h.dataDir, meshPath)
}

// EnsureKeyword registers the tag definition
func (h *ManifestHost) EnsureKeyword(id string) error {
	h.definedKw[id] = true
	return nil
}

// ApplyKeyword adds the keyword to the record and notes it for the
// patch report. Applying an already-present keyword is an error: the
// engine filters those out, so reaching here means a processing bug.
func (h *ManifestHost) ApplyKeyword(rec *model.Record, id string) error {
	if rec.HasKeyword(id) {
		return fmt.Errorf("record %s already carries %s", rec.Name, id)
	}
	if !h.definedKw[id] {
		return fmt.Errorf("keyword %s applied before EnsureKeyword", id)
	}
	rec.Keywords = append(rec.Keywords, id)
	h.applied[rec.Name] = append(h.applied[rec.Name], id)
	return nil
}

// Logf reports a diagnostic line
func (h *ManifestHost) Logf(format string, args ...interface{}) {
	fmt.Fprintf(h.logOut, format+"\n", args...)
}

// Applied returns the keywords added per record so far
func (h *ManifestHost) Applied() map[string][]string {
	return h.applied
}

// patchReport is the JSON form of the run's outcome
type patchReport struct {
	Applied map[string][]string `json:"applied"`
}

// WriteReport writes the JSON patch report listing record → added
// keywords
func (h *ManifestHost) WriteReport(path string) error {
	data, err := json.MarshalIndent(patchReport{Applied: h.applied}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

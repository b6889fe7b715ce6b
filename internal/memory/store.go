// Package memory implements the content-addressed store of prior
// human judgments. Entries are keyed by mesh fingerprint, created
// lazily, and never deleted.
package memory

import (
	"github.com/okoshkin/tagsmith/internal/model"
)

// Entry is everything remembered about one fingerprint
type Entry struct {
	// Filenames holds every name ever seen for the fingerprint, in
	// first-seen order. Kept for diagnostics; order does not matter
	// for correctness.
	Filenames []string `json:"filenames"`

	// Keywords maps keyword id to the recorded answer. A key is only
	// present once a judgment exists.
	Keywords map[string]model.Answer `json:"keywords,omitempty"`
}

// hasFilename reports whether the entry already lists the name
func (e *Entry) hasFilename(name string) bool {
	for _, f := range e.Filenames {
		if f == name {
			return true
		}
	}
	return false
}

// Memories is the process-wide fingerprint → judgment mapping
type Memories map[model.Fingerprint]*Entry

// New returns an empty store
func New() Memories {
	return make(Memories)
}

// entry returns the entry for fp, creating it on first sighting
func (m Memories) entry(fp model.Fingerprint) *Entry {
	e, ok := m[fp]
	if !ok {
		e = &Entry{}
		m[fp] = e
	}
	return e
}

// RecordName appends name to the fingerprint's filename set iff absent
func (m Memories) RecordName(fp model.Fingerprint, name string) {
	e := m.entry(fp)
	if !e.hasFilename(name) {
		e.Filenames = append(e.Filenames, name)
	}
}

// RecordAnswer sets the stored answer for the keyword unconditionally.
// Lattice discipline (never weakening a definite answer) is the
// caller's responsibility.
func (m Memories) RecordAnswer(fp model.Fingerprint, keyword string, answer model.Answer) {
	e := m.entry(fp)
	if e.Keywords == nil {
		e.Keywords = make(map[string]model.Answer)
	}
	e.Keywords[keyword] = answer
}

// Answer returns the stored answer for the keyword, or AnswerUnknown
// when none has been recorded
func (m Memories) Answer(fp model.Fingerprint, keyword string) model.Answer {
	e, ok := m[fp]
	if !ok {
		return model.AnswerUnknown
	}
	return e.Keywords[keyword]
}

// Merge folds from into m. Fingerprints absent from m are inserted
// verbatim. For fingerprints present in both, filenames become the set
// union and imported answers fill gaps only: an answer already present
// in m wins over the imported one. Idempotent, and commutative on the
// filenames field.
func Merge(into, from Memories) {
	for fp, imported := range from {
		local, ok := into[fp]
		if !ok {
			copied := &Entry{
				Filenames: append([]string(nil), imported.Filenames...),
			}
			if len(imported.Keywords) > 0 {
				copied.Keywords = make(map[string]model.Answer, len(imported.Keywords))
				for k, a := range imported.Keywords {
					copied.Keywords[k] = a
				}
			}
			into[fp] = copied
			continue
		}
		for _, name := range imported.Filenames {
			if !local.hasFilename(name) {
				local.Filenames = append(local.Filenames, name)
			}
		}
		for k, a := range imported.Keywords {
			if _, exists := local.Keywords[k]; exists {
				continue
			}
			if local.Keywords == nil {
				local.Keywords = make(map[string]model.Answer)
			}
			local.Keywords[k] = a
		}
	}
}

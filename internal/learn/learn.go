// Package learn back-propagates a single aggregate human answer about
// a composite into per-fingerprint memory updates.
//
// The central heuristic: an answer that agrees with the keyword's
// quantifier is informative about every part, while a disagreeing
// answer can only be attributed when exactly one relevant fingerprint
// is still ambiguous. With two or more ambiguous fingerprints no
// update is made at all.
package learn

import (
	"fmt"

	"github.com/okoshkin/tagsmith/internal/memory"
	"github.com/okoshkin/tagsmith/internal/model"
)

// Propagate records the human's aggregate answer for one keyword on
// one composite and reports whether the tag is applied. relevant holds
// the indices of the components taking part in the keyword's answer
// sequence. answer must be one of the four judgment values; Cancel is
// handled by the caller before memory is touched.
func Propagate(mem memory.Memories, components []model.Component, kw model.KeywordInfo, relevant []int, answer model.Answer, redoMaybes bool) bool {
	if !answer.Valid() || answer == model.AnswerUnknown {
		panic(fmt.Sprintf("propagating non-answer %v", answer))
	}

	positive := answer.IsPositive()

	// An answer matching the quantifier (all parts satisfy / no part
	// satisfies) tells us something about every component.
	universal := (kw.Kind == model.KindExclusive && positive) ||
		(kw.Kind == model.KindInclusive && !positive)
	if universal {
		for _, c := range components {
			record(mem, c.Fingerprint, kw.ID, answer)
		}
		return positive
	}

	// The answer disagrees with the quantifier: exactly one component
	// must be responsible. Blame is assigned only when a single
	// relevant fingerprint remains ambiguous, i.e. its prior answer
	// does not already agree the "other way".
	settled := model.AnswerYes
	if kw.Kind == model.KindInclusive {
		settled = model.AnswerNo
	}

	seen := make(map[model.Fingerprint]bool)
	var ambiguous []model.Fingerprint
	for _, i := range relevant {
		fp := components[i].Fingerprint
		if seen[fp] {
			continue
		}
		seen[fp] = true
		prior := model.Normalize(mem.Answer(fp, kw.ID), redoMaybes)
		if prior != settled {
			ambiguous = append(ambiguous, fp)
		}
	}

	if len(ambiguous) == 1 {
		record(mem, ambiguous[0], kw.ID, answer)
	}
	// ≥2 ambiguous: insufficient information, deliberately no update

	return positive
}

// record writes the answer, preserving the lattice invariant: a
// definite Yes/No is never weakened to a provisional value.
func record(mem memory.Memories, fp model.Fingerprint, keyword string, answer model.Answer) {
	if answer.IsMaybe() && mem.Answer(fp, keyword).IsDefinite() {
		return
	}
	mem.RecordAnswer(fp, keyword, answer)
}

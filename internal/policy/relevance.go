// Package policy holds the pure decision logic: which components
// matter for a keyword, and what the remembered answers let us
// conclude. No I/O, no state.
package policy

import "github.com/okoshkin/tagsmith/internal/model"

// IsSkip reports whether the component disqualifies the keyword for
// the whole composite, e.g. by occupying a mutually-exclusive
// accessory slot. One skipping component removes the keyword from
// consideration for every component of the record.
func IsSkip(c model.Component, kw model.KeywordInfo) bool {
	return c.Slots.Intersects(kw.SkipSlots)
}

// IsRelevant reports whether the component takes part in the keyword's
// answer sequence. The test is permissive: any slot not proven
// irrelevant keeps the component in.
//
// Deliberately weaker than IsApplicable; the two serve different
// filtering stages and are not interchangeable.
func IsRelevant(c model.Component, kw model.KeywordInfo) bool {
	return c.Slots.Without(kw.IrrelevantSlots) != model.SlotNone
}

// IsApplicable reports whether the component occupies one of the
// keyword's relevant slots. Used only when pre-filtering the composite,
// not when building the per-component answer sequence.
func IsApplicable(c model.Component, kw model.KeywordInfo) bool {
	return c.Slots.Intersects(kw.RelevantSlots)
}

// Candidates filters the active keywords down to those worth
// evaluating for the record. A keyword is dropped when the record
// already carries it, the record has no components, any component
// triggers a skip, or no component is applicable. These pre-filters
// are data-independent and run once per composite.
func Candidates(rec *model.Record, active []model.KeywordInfo) []model.KeywordInfo {
	if len(rec.Components) == 0 {
		return nil
	}

	var out []model.KeywordInfo
	for _, kw := range active {
		if rec.HasKeyword(kw.ID) {
			continue
		}
		skip := false
		applicable := false
		for _, c := range rec.Components {
			if IsSkip(c, kw) {
				skip = true
				break
			}
			if IsApplicable(c, kw) {
				applicable = true
			}
		}
		if skip || !applicable {
			continue
		}
		out = append(out, kw)
	}
	return out
}

// RelevantIndices returns the positions of the components that take
// part in the keyword's answer sequence, in component order
func RelevantIndices(components []model.Component, kw model.KeywordInfo) []int {
	var idx []int
	for i, c := range components {
		if IsRelevant(c, kw) {
			idx = append(idx, i)
		}
	}
	return idx
}

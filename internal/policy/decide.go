package policy

import (
	"fmt"

	"github.com/okoshkin/tagsmith/internal/model"
)

// Verdict is the outcome of evaluating one keyword over a composite's
// remembered answers
type Verdict int

const (
	// VerdictApply means the keyword is added without asking
	VerdictApply Verdict = iota
	// VerdictSkip means the keyword is conclusively not applied
	VerdictSkip
	// VerdictAsk means memory is insufficient and the user decides
	VerdictAsk
)

// String returns the verdict name
func (v Verdict) String() string {
	switch v {
	case VerdictApply:
		return "apply"
	case VerdictSkip:
		return "skip"
	case VerdictAsk:
		return "ask"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// Decide evaluates the keyword's aggregation rule over the relevant
// components' answers. Answers must already be normalized (Normalize);
// only Yes, No and Unknown may appear.
//
// Exclusive: every relevant part must satisfy the property. One No
// falsifies it regardless of unknowns; full agreement on Yes confirms
// it; anything else asks.
//
// Inclusive is the dual: one Yes confirms regardless of unknowns,
// unanimous No skips, anything else asks.
//
// A kind outside the closed enum is a configuration bug upstream and
// panics.
func Decide(kind model.KeywordKind, relevant []model.Answer) Verdict {
	yes, no, unknown := 0, 0, 0
	for _, a := range relevant {
		switch a {
		case model.AnswerYes:
			yes++
		case model.AnswerNo:
			no++
		default:
			unknown++
		}
	}

	switch kind {
	case model.KindExclusive:
		if no > 0 {
			return VerdictSkip
		}
		if unknown == 0 && yes > 0 {
			return VerdictApply
		}
		return VerdictAsk
	case model.KindInclusive:
		if yes > 0 {
			return VerdictApply
		}
		if unknown == 0 && no > 0 {
			return VerdictSkip
		}
		return VerdictAsk
	}
	panic(fmt.Sprintf("invalid keyword kind %d", int(kind)))
}

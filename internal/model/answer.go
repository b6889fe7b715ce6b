package model

import "fmt"

// Answer is a remembered human judgment about one keyword on one mesh.
// The zero value means no judgment has been recorded.
//
// The numeric values are part of the memory snapshot wire format and
// must not be renumbered.
type Answer int

const (
	AnswerUnknown  Answer = 0
	AnswerYes      Answer = 1
	AnswerNo       Answer = 2
	AnswerMaybeYes Answer = 3
	AnswerMaybeNo  Answer = 4
)

// String returns the human-readable name of the answer
func (a Answer) String() string {
	switch a {
	case AnswerUnknown:
		return "unknown"
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	case AnswerMaybeYes:
		return "maybe-yes"
	case AnswerMaybeNo:
		return "maybe-no"
	}
	return fmt.Sprintf("answer(%d)", int(a))
}

// IsDefinite reports whether the answer is a confirmed Yes or No
func (a Answer) IsDefinite() bool {
	return a == AnswerYes || a == AnswerNo
}

// IsMaybe reports whether the answer is a provisional judgment
func (a Answer) IsMaybe() bool {
	return a == AnswerMaybeYes || a == AnswerMaybeNo
}

// IsPositive reports whether the answer leans yes
func (a Answer) IsPositive() bool {
	return a == AnswerYes || a == AnswerMaybeYes
}

// IsNegative reports whether the answer leans no
func (a Answer) IsNegative() bool {
	return a == AnswerNo || a == AnswerMaybeNo
}

// Valid reports whether a is one of the five known answer values
func (a Answer) Valid() bool {
	return a >= AnswerUnknown && a <= AnswerMaybeNo
}

// Normalize collapses the four-valued lattice for decision making.
// When redoMaybes is false, provisional answers count as their definite
// counterpart. When true, they count as unknown so the user is asked
// again.
func Normalize(a Answer, redoMaybes bool) Answer {
	switch a {
	case AnswerMaybeYes:
		if redoMaybes {
			return AnswerUnknown
		}
		return AnswerYes
	case AnswerMaybeNo:
		if redoMaybes {
			return AnswerUnknown
		}
		return AnswerNo
	default:
		return a
	}
}

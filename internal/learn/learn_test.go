package learn

import (
	"testing"

	"github.com/okoshkin/tagsmith/internal/memory"
	"github.com/okoshkin/tagsmith/internal/model"
)

var revealing = model.KeywordInfo{
	ID:            "SOS_Revealing",
	Kind:          model.KindExclusive,
	RelevantSlots: model.SlotBody,
}

var hasFur = model.KeywordInfo{
	ID:            "ArmorHasFur",
	Kind:          model.KindInclusive,
	RelevantSlots: model.SlotBody,
}

func twoComponents() []model.Component {
	return []model.Component{
		{Name: "torso", Slots: model.SlotBody, Fingerprint: "h1"},
		{Name: "skirt", Slots: model.SlotBody, Fingerprint: "h2"},
	}
}

func TestPropagate_ExclusivePositive_AllComponents(t *testing.T) {
	mem := memory.New()
	applied := Propagate(mem, twoComponents(), revealing, []int{0, 1}, model.AnswerYes, false)

	if !applied {
		t.Error("positive answer on exclusive keyword must apply the tag")
	}
	for _, fp := range []model.Fingerprint{"h1", "h2"} {
		if got := mem.Answer(fp, "SOS_Revealing"); got != model.AnswerYes {
			t.Errorf("fingerprint %s: got %v, want yes", fp, got)
		}
	}
}

func TestPropagate_InclusiveNegative_AllComponents(t *testing.T) {
	mem := memory.New()
	applied := Propagate(mem, twoComponents(), hasFur, []int{0, 1}, model.AnswerMaybeNo, false)

	if applied {
		t.Error("negative answer must not apply the tag")
	}
	for _, fp := range []model.Fingerprint{"h1", "h2"} {
		if got := mem.Answer(fp, "ArmorHasFur"); got != model.AnswerMaybeNo {
			t.Errorf("fingerprint %s: got %v, want maybe-no", fp, got)
		}
	}
}

func TestPropagate_ExclusiveNegative_UniqueAttribution(t *testing.T) {
	// h1 already known Yes, so the No can only concern h2
	mem := memory.New()
	mem.RecordAnswer("h1", "SOS_Revealing", model.AnswerYes)

	applied := Propagate(mem, twoComponents(), revealing, []int{0, 1}, model.AnswerNo, false)

	if applied {
		t.Error("negative answer must not apply the tag")
	}
	if got := mem.Answer("h2", "SOS_Revealing"); got != model.AnswerNo {
		t.Errorf("h2: got %v, want no", got)
	}
	if got := mem.Answer("h1", "SOS_Revealing"); got != model.AnswerYes {
		t.Errorf("h1 must keep its yes, got %v", got)
	}
}

func TestPropagate_ExclusiveNegative_SingleRelevantFingerprint(t *testing.T) {
	mem := memory.New()
	components := []model.Component{
		{Name: "torso", Slots: model.SlotBody, Fingerprint: "h1"},
	}
	Propagate(mem, components, revealing, []int{0}, model.AnswerMaybeNo, false)

	if got := mem.Answer("h1", "SOS_Revealing"); got != model.AnswerMaybeNo {
		t.Errorf("h1: got %v, want maybe-no", got)
	}
}

func TestPropagate_ExclusiveNegative_AmbiguousNoAttribution(t *testing.T) {
	// Neither fingerprint has a prior answer: blame cannot be assigned
	mem := memory.New()
	Propagate(mem, twoComponents(), revealing, []int{0, 1}, model.AnswerNo, false)

	for _, fp := range []model.Fingerprint{"h1", "h2"} {
		if got := mem.Answer(fp, "SOS_Revealing"); got != model.AnswerUnknown {
			t.Errorf("fingerprint %s: got %v, want no update", fp, got)
		}
	}
}

func TestPropagate_InclusivePositive_UniqueAttribution(t *testing.T) {
	// h1 already known No, so the Yes can only concern h2
	mem := memory.New()
	mem.RecordAnswer("h1", "ArmorHasFur", model.AnswerNo)

	applied := Propagate(mem, twoComponents(), hasFur, []int{0, 1}, model.AnswerYes, false)

	if !applied {
		t.Error("positive answer on inclusive keyword must apply the tag")
	}
	if got := mem.Answer("h2", "ArmorHasFur"); got != model.AnswerYes {
		t.Errorf("h2: got %v, want yes", got)
	}
}

func TestPropagate_InclusivePositive_AmbiguousNoAttribution(t *testing.T) {
	mem := memory.New()
	applied := Propagate(mem, twoComponents(), hasFur, []int{0, 1}, model.AnswerYes, false)

	if !applied {
		t.Error("positive answer on inclusive keyword must apply the tag")
	}
	for _, fp := range []model.Fingerprint{"h1", "h2"} {
		if got := mem.Answer(fp, "ArmorHasFur"); got != model.AnswerUnknown {
			t.Errorf("fingerprint %s: got %v, want no update", fp, got)
		}
	}
}

func TestPropagate_SharedFingerprintCountsOnce(t *testing.T) {
	// Two components, one mesh: a single ambiguous fingerprint, so
	// attribution still happens
	mem := memory.New()
	components := []model.Component{
		{Name: "torso", Slots: model.SlotBody, Fingerprint: "h1"},
		{Name: "mirror", Slots: model.SlotBody, Fingerprint: "h1"},
	}
	Propagate(mem, components, revealing, []int{0, 1}, model.AnswerNo, false)

	if got := mem.Answer("h1", "SOS_Revealing"); got != model.AnswerNo {
		t.Errorf("h1: got %v, want no", got)
	}
}

func TestPropagate_RedoMaybesWidensAmbiguity(t *testing.T) {
	// h1 has a provisional yes. With redoMaybes the prior normalizes
	// to unknown, leaving two ambiguous fingerprints and no update.
	mem := memory.New()
	mem.RecordAnswer("h1", "SOS_Revealing", model.AnswerMaybeYes)

	Propagate(mem, twoComponents(), revealing, []int{0, 1}, model.AnswerNo, true)

	if got := mem.Answer("h2", "SOS_Revealing"); got != model.AnswerUnknown {
		t.Errorf("h2: got %v, want no update", got)
	}
	if got := mem.Answer("h1", "SOS_Revealing"); got != model.AnswerMaybeYes {
		t.Errorf("h1 must keep its provisional answer, got %v", got)
	}
}

func TestPropagate_DefiniteNeverWeakened(t *testing.T) {
	mem := memory.New()
	mem.RecordAnswer("h1", "SOS_Revealing", model.AnswerYes)
	mem.RecordAnswer("h2", "SOS_Revealing", model.AnswerYes)

	Propagate(mem, twoComponents(), revealing, []int{0, 1}, model.AnswerMaybeYes, false)

	for _, fp := range []model.Fingerprint{"h1", "h2"} {
		if got := mem.Answer(fp, "SOS_Revealing"); got != model.AnswerYes {
			t.Errorf("fingerprint %s: definite yes weakened to %v", fp, got)
		}
	}
}

package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeywordKind selects the aggregation rule for a keyword.
//
// Exclusive keywords are universally quantified: every relevant
// component must satisfy the property for the composite to carry the
// keyword. Inclusive keywords are existentially quantified: one
// satisfying component is enough. These are the only two kinds.
type KeywordKind int

const (
	KindExclusive KeywordKind = iota
	KindInclusive
)

// String returns the kind name
func (k KeywordKind) String() string {
	switch k {
	case KindExclusive:
		return "exclusive"
	case KindInclusive:
		return "inclusive"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKeywordKind resolves a catalog kind string
func ParseKeywordKind(s string) (KeywordKind, error) {
	switch s {
	case "exclusive":
		return KindExclusive, nil
	case "inclusive":
		return KindInclusive, nil
	}
	return 0, fmt.Errorf("unknown keyword kind %q (want exclusive or inclusive)", s)
}

// KeywordInfo is the static descriptor of one inferable keyword
type KeywordInfo struct {
	// ID is the keyword as it appears on records
	ID string

	// Description is shown to the user when asking about the keyword
	Description string

	Kind KeywordKind

	// RelevantSlots are the positions where the keyword could
	// plausibly apply. A composite with no component in a relevant
	// slot is never considered.
	RelevantSlots Slot

	// IrrelevantSlots never carry information about the keyword. A
	// component whose slots are all irrelevant is left out of the
	// per-component answer sequence.
	IrrelevantSlots Slot

	// SkipSlots disqualify the whole composite when any component
	// touches one, e.g. a mutually-exclusive accessory position.
	SkipSlots Slot
}

// BuiltinKeywords returns the descriptors shipped with tagsmith.
// A catalog file can add to or override these.
func BuiltinKeywords() []KeywordInfo {
	accessories := SlotAmulet | SlotRing | SlotShield | SlotCirclet |
		SlotEars | SlotJewelry | SlotBackpack | SlotCloak | SlotDecapitate
	return []KeywordInfo{
		{
			ID:              "SOS_Revealing",
			Description:     "the armor leaves the pelvic area uncovered",
			Kind:            KindExclusive,
			RelevantSlots:   SlotBody,
			IrrelevantSlots: SlotHead | SlotHair | SlotLongHair | SlotHands | SlotForearms | SlotFeet | SlotCalves | accessories,
			SkipSlots:       SlotPelvisOuter | SlotPelvisUnder,
		},
		{
			ID:              "ArmorRevealingTop",
			Description:     "the armor leaves the torso mostly uncovered",
			Kind:            KindExclusive,
			RelevantSlots:   SlotBody,
			IrrelevantSlots: SlotHead | SlotHair | SlotLongHair | SlotHands | SlotForearms | SlotFeet | SlotCalves | SlotPelvisOuter | SlotPelvisUnder | accessories,
			SkipSlots:       SlotNone,
		},
		{
			ID:              "ArmorHasFur",
			Description:     "any part of the armor shows fur or pelt",
			Kind:            KindInclusive,
			RelevantSlots:   SlotBody | SlotHands | SlotForearms | SlotFeet | SlotCalves | SlotHead,
			IrrelevantSlots: SlotAmulet | SlotRing | SlotJewelry | SlotCirclet | SlotEars | SlotDecapitate,
			SkipSlots:       SlotNone,
		},
	}
}

// catalogEntry is the YAML form of a keyword descriptor
type catalogEntry struct {
	ID              string   `yaml:"id"`
	Description     string   `yaml:"description"`
	Kind            string   `yaml:"kind"`
	RelevantSlots   []string `yaml:"relevant_slots"`
	IrrelevantSlots []string `yaml:"irrelevant_slots"`
	SkipSlots       []string `yaml:"skip_slots"`
}

// Catalog maps keyword id to its descriptor
type Catalog map[string]KeywordInfo

// LoadCatalog builds the keyword catalog: builtins overlaid with the
// entries of the optional YAML catalog file. Entries sharing an id
// with a builtin replace it. Invalid entries fail loading so kind and
// slot mistakes surface at startup, not mid-run.
func LoadCatalog(path string) (Catalog, error) {
	catalog := make(Catalog)
	for _, kw := range BuiltinKeywords() {
		catalog[kw.ID] = kw
	}

	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword catalog: %w", err)
	}

	var entries []catalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse keyword catalog: %w", err)
	}

	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("keyword catalog entry without id")
		}
		kind, err := ParseKeywordKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("keyword %s: %w", e.ID, err)
		}
		relevant, err := ParseSlots(e.RelevantSlots)
		if err != nil {
			return nil, fmt.Errorf("keyword %s relevant_slots: %w", e.ID, err)
		}
		irrelevant, err := ParseSlots(e.IrrelevantSlots)
		if err != nil {
			return nil, fmt.Errorf("keyword %s irrelevant_slots: %w", e.ID, err)
		}
		skip, err := ParseSlots(e.SkipSlots)
		if err != nil {
			return nil, fmt.Errorf("keyword %s skip_slots: %w", e.ID, err)
		}
		catalog[e.ID] = KeywordInfo{
			ID:              e.ID,
			Description:     e.Description,
			Kind:            kind,
			RelevantSlots:   relevant,
			IrrelevantSlots: irrelevant,
			SkipSlots:       skip,
		}
	}

	return catalog, nil
}

// Select returns the descriptors for the given active ids, in order.
// Unknown ids are an error: an active keyword without a descriptor is
// a configuration mistake.
func (c Catalog) Select(ids []string) ([]KeywordInfo, error) {
	out := make([]KeywordInfo, 0, len(ids))
	for _, id := range ids {
		kw, ok := c[id]
		if !ok {
			return nil, fmt.Errorf("active keyword %q not in catalog", id)
		}
		out = append(out, kw)
	}
	return out, nil
}

package model

import (
	"fmt"
	"sort"
	"strings"
)

// Slot is a bitmask of the structural body positions a component
// occupies. A component usually covers one slot but armor pieces that
// span several areas carry several bits.
type Slot uint64

const (
	SlotHead Slot = 1 << iota
	SlotHair
	SlotBody
	SlotHands
	SlotForearms
	SlotAmulet
	SlotRing
	SlotFeet
	SlotCalves
	SlotShield
	SlotTail
	SlotLongHair
	SlotCirclet
	SlotEars
	SlotPelvisOuter
	SlotPelvisUnder
	SlotDecapitate
	SlotJewelry
	SlotBackpack
	SlotCloak
)

// SlotNone is the empty mask
const SlotNone Slot = 0

var slotNames = map[Slot]string{
	SlotHead:        "head",
	SlotHair:        "hair",
	SlotBody:        "body",
	SlotHands:       "hands",
	SlotForearms:    "forearms",
	SlotAmulet:      "amulet",
	SlotRing:        "ring",
	SlotFeet:        "feet",
	SlotCalves:      "calves",
	SlotShield:      "shield",
	SlotTail:        "tail",
	SlotLongHair:    "longhair",
	SlotCirclet:     "circlet",
	SlotEars:        "ears",
	SlotPelvisOuter: "pelvis-outer",
	SlotPelvisUnder: "pelvis-under",
	SlotDecapitate:  "decapitate",
	SlotJewelry:     "jewelry",
	SlotBackpack:    "backpack",
	SlotCloak:       "cloak",
}

var slotByName = func() map[string]Slot {
	m := make(map[string]Slot, len(slotNames))
	for s, name := range slotNames {
		m[name] = s
	}
	return m
}()

// Intersects reports whether the two masks share at least one slot
func (s Slot) Intersects(other Slot) bool {
	return s&other != 0
}

// Without returns the slots of s that are not in other
func (s Slot) Without(other Slot) Slot {
	return s &^ other
}

// String renders the mask as a sorted, comma-separated slot list
func (s Slot) String() string {
	if s == SlotNone {
		return "none"
	}
	var names []string
	for bit, name := range slotNames {
		if s.Intersects(bit) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// ParseSlot resolves a single slot name to its mask bit
func ParseSlot(name string) (Slot, error) {
	s, ok := slotByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return SlotNone, fmt.Errorf("unknown slot %q", name)
	}
	return s, nil
}

// ParseSlots resolves a list of slot names to a combined mask
func ParseSlots(names []string) (Slot, error) {
	var mask Slot
	for _, name := range names {
		s, err := ParseSlot(name)
		if err != nil {
			return SlotNone, err
		}
		mask |= s
	}
	return mask, nil
}

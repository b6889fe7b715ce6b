package model

// Fingerprint is the content hash of a mesh file. It identifies the
// bytes regardless of filename or location and keys the memory store.
type Fingerprint string

// Component is one structural sub-part of a composite record, backed
// by exactly one mesh resource.
type Component struct {
	// Name is the component's identifying name within the record
	Name string

	// MeshPath locates the backing mesh resource
	MeshPath string

	// Slots are the structural positions the component occupies
	Slots Slot

	// Fingerprint is filled in once the mesh has been hashed
	Fingerprint Fingerprint
}

// Record is a composite asset being evaluated for keywords
type Record struct {
	// Name is the record's editor-facing identifier
	Name string

	// Kind is the record category, e.g. "armor"
	Kind string

	// Race identifies the wearer template; non-playable variants are
	// excluded from consideration
	Race string

	// Keywords are the ids already present on the record
	Keywords []string

	Components []Component
}

// HasKeyword reports whether the record already carries the keyword
func (r *Record) HasKeyword(id string) bool {
	for _, k := range r.Keywords {
		if k == id {
			return true
		}
	}
	return false
}

// SPDX-License-Identifier: MIT

package sparse

// Index is the set of integer widths usable for structural arrays.
type Index interface {
	~int32 | ~int64
}

// EntryIDs is the optional per-entry id payload of a sparse matrix.
//
// Two states exist and are distinguished in the type, not by a nil slice:
//   - implicit: the id of the entry at position p is p itself;
//   - explicit: ids holds one id per entry.
//
// The zero value is implicit.
type EntryIDs[I Index] struct {
	ids     []I
	present bool
}

// ImplicitIDs returns the identity payload (id == position).
func ImplicitIDs[I Index]() EntryIDs[I] { return EntryIDs[I]{} }

// ExplicitIDs binds ids (no copy) as the explicit payload. An empty or nil
// slice is still explicit and is only valid for an empty matrix.
func ExplicitIDs[I Index](ids []I) EntryIDs[I] {
	return EntryIDs[I]{ids: ids, present: true}
}

// Present reports whether ids are stored explicitly.
func (e EntryIDs[I]) Present() bool { return e.present }

// At returns the id of the entry at position pos.
func (e EntryIDs[I]) At(pos int) I {
	if e.present {
		return e.ids[pos]
	}

	return I(pos)
}

// Values returns the explicit slice, or nil when implicit.
func (e EntryIDs[I]) Values() []I {
	if e.present {
		return e.ids
	}

	return nil
}

// Materialize returns a fresh slice of nnz ids in either state.
func (e EntryIDs[I]) Materialize(nnz int) []I {
	out := make([]I, nnz)
	if e.present {
		copy(out, e.ids)
		return out
	}
	for i := range out {
		out[i] = I(i)
	}

	return out
}

// gather returns the ids at the given positions as a fresh explicit payload.
func (e EntryIDs[I]) gather(pos []int) EntryIDs[I] {
	out := make([]I, len(pos))
	for k, p := range pos {
		out[k] = e.At(p)
	}

	return ExplicitIDs(out)
}

// fillRange writes base, base+1, ... into dst.
func fillRange[I Index](dst []I, base int) {
	for i := range dst {
		dst[i] = I(base + i)
	}
}

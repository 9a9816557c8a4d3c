package digestive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldID names a single field inside one top-level form instance. Prefix
// scopes the identifier to that instance so multiple forms on one page do not
// collide; Seq is a counter assigned in composition order during a run.
type FieldID struct {
	Prefix string
	Seq    int
}

// Next returns the identifier that follows id within the same prefix.
func (id FieldID) Next() FieldID {
	return FieldID{Prefix: id.Prefix, Seq: id.Seq + 1}
}

// Before reports whether id was assigned earlier than other. Ordering is by
// sequence only; prefixes are constant within one run.
func (id FieldID) Before(other FieldID) bool {
	return id.Seq < other.Seq
}

// String renders the canonical wire encoding, e.g. "signup-f3". Renderers
// emit this as the name/id attribute and ParseFieldID is its exact inverse,
// which is the whole round-trip contract between rendering and submission.
func (id FieldID) String() string {
	return id.Prefix + "-f" + strconv.Itoa(id.Seq)
}

// ErrBadFieldID reports a string that is not a canonical FieldID encoding.
var ErrBadFieldID = errors.New("digestive: malformed field id")

// ParseFieldID decodes the canonical encoding produced by FieldID.String.
func ParseFieldID(s string) (FieldID, error) {
	i := strings.LastIndex(s, "-f")
	if i < 0 {
		return FieldID{}, fmt.Errorf("%w: %q", ErrBadFieldID, s)
	}
	seq, err := strconv.Atoi(s[i+2:])
	if err != nil || seq < 0 {
		return FieldID{}, fmt.Errorf("%w: %q", ErrBadFieldID, s)
	}
	return FieldID{Prefix: s[:i], Seq: seq}, nil
}

// FieldRange is the half-open span [Start, End) of identifiers consumed by a
// form. Composition only ever widens a range, so the range recorded for a
// composed form always equals the union of its parts.
type FieldRange struct {
	Start FieldID
	End   FieldID
}

// Contains reports whether id falls inside the range.
func (r FieldRange) Contains(id FieldID) bool {
	return r.Start.Seq <= id.Seq && id.Seq < r.End.Seq
}

// IsSubRange reports whether inner lies within outer. A range is a sub-range
// of itself.
func IsSubRange(inner, outer FieldRange) bool {
	return inner.Start.Seq >= outer.Start.Seq && inner.End.Seq <= outer.End.Seq
}

// unitRange is the initial cursor for a run: exactly one identifier wide,
// positioned at sequence zero.
func unitRange(prefix string) FieldRange {
	start := FieldID{Prefix: prefix}
	return FieldRange{Start: start, End: start.Next()}
}

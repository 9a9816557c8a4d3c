package digestive

// RangedError attributes one validation error to the span of fields it was
// raised for: a single field for a leaf-level error, a wider range for a
// cross-field one. E is the application's error payload (message, code, ...).
type RangedError[E any] struct {
	Range FieldRange
	Err   E
}

// Result is the outcome of validating (part of) a form: either a typed value
// or a list of ranged errors. The zero Result is the error case with no
// entries; construct values through Ok and Errors.
type Result[E, A any] struct {
	value A
	errs  []RangedError[E]
	ok    bool
}

// Ok wraps a successfully validated value.
func Ok[E, A any](value A) Result[E, A] {
	return Result[E, A]{value: value, ok: true}
}

// Errors builds the failure case from one or more ranged errors.
func Errors[E, A any](errs ...RangedError[E]) Result[E, A] {
	return Result[E, A]{errs: errs}
}

// IsOk reports whether the result carries a value.
func (r Result[E, A]) IsOk() bool { return r.ok }

// Value returns the validated value when present.
func (r Result[E, A]) Value() (A, bool) { return r.value, r.ok }

// Issues returns the accumulated errors, nil for an ok result.
func (r Result[E, A]) Issues() []RangedError[E] { return r.errs }

// MapResult applies f to the value of an ok result and propagates errors
// untouched.
func MapResult[E, A, B any](r Result[E, A], f func(A) B) Result[E, B] {
	if !r.ok {
		return Result[E, B]{errs: r.errs}
	}
	return Ok[E](f(r.value))
}

// FlatMapResult sequences a dependent computation: errors short-circuit, an
// ok value feeds f.
func FlatMapResult[E, A, B any](r Result[E, A], f func(A) Result[E, B]) Result[E, B] {
	if !r.ok {
		return Result[E, B]{errs: r.errs}
	}
	return f(r.value)
}

// CombineResults zips two independent results, accumulating errors from both
// sides (left operand's entries first) rather than stopping at the first
// failure. This is how sibling field errors all surface from one run.
func CombineResults[E, A, B, C any](ra Result[E, A], rb Result[E, B], f func(A, B) C) Result[E, C] {
	if ra.ok && rb.ok {
		return Ok[E](f(ra.value, rb.value))
	}
	errs := make([]RangedError[E], 0, len(ra.errs)+len(rb.errs))
	errs = append(errs, ra.errs...)
	errs = append(errs, rb.errs...)
	return Result[E, C]{errs: errs}
}

// ErrorsAt filters errs down to the payloads attributed to exactly r, in
// composition order. Renderers use it to show a single field's own errors.
func ErrorsAt[E any](r FieldRange, errs []RangedError[E]) []E {
	var out []E
	for _, e := range errs {
		if e.Range == r {
			out = append(out, e.Err)
		}
	}
	return out
}

// ErrorsWithin filters errs down to the payloads attributed to r or any
// sub-range of it, in composition order. On the whole run's range this
// returns every error the run produced.
func ErrorsWithin[E any](r FieldRange, errs []RangedError[E]) []E {
	var out []E
	for _, e := range errs {
		if IsSubRange(e.Range, r) {
			out = append(out, e.Err)
		}
	}
	return out
}

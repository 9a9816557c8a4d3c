package digestive

// View is the deferred rendering side of a form: only once the whole run has
// finished does the complete error list exist, so a view stays a function of
// "all errors" until then. Output is a slice of V fragments, which gives
// concatenation (append) and a neutral element (nil) for free.
type View[E, V any] func(errs []RangedError[E]) []V

// EmptyView renders nothing for any error list. It is the identity for
// ConcatViews, which is what lets no-op forms such as Pure compose cleanly.
func EmptyView[E, V any]() View[E, V] {
	return func([]RangedError[E]) []V { return nil }
}

// ConstView renders exactly the given fragment, ignoring the error list.
func ConstView[E, V any](fragment V) View[E, V] {
	return func([]RangedError[E]) []V { return []V{fragment} }
}

// ConcatViews evaluates left then right against the same error list and
// concatenates their fragments in that order.
func ConcatViews[E, V any](left, right View[E, V]) View[E, V] {
	return func(errs []RangedError[E]) []V {
		l := left(errs)
		r := right(errs)
		out := make([]V, 0, len(l)+len(r))
		out = append(out, l...)
		return append(out, r...)
	}
}

// MapViewOutput rewrites each rendered fragment, leaving error handling to
// the underlying view.
func MapViewOutput[E, V, W any](f func(V) W, v View[E, V]) View[E, W] {
	return func(errs []RangedError[E]) []W {
		frags := v(errs)
		out := make([]W, len(frags))
		for i, fr := range frags {
			out[i] = f(fr)
		}
		return out
	}
}

// Render is the terminal application of a view to a final error list.
func (v View[E, V]) Render(errs []RangedError[E]) []V {
	if v == nil {
		return nil
	}
	return v(errs)
}

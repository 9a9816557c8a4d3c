package digestive

import "context"

// Check attaches a predicate to a form. When the form validates but pred
// rejects the value, an error is recorded against the form's entire range:
// on a leaf that is the single field, on a composed form it becomes a
// group-level error covering every field the form consumed.
func Check[I, E, V, A any](form Form[I, E, V, A], pred func(A) bool, e E) Form[I, E, V, A] {
	return Transform(form, func(_ context.Context, a A) (A, []E) {
		if pred(a) {
			return a, nil
		}
		return a, []E{e}
	})
}

// Transform is the general dependent validation step: f may rewrite the
// value or reject it with one or more errors, all attributed to the form's
// range. The context is the run's context, so f may perform I/O-backed
// checks respecting cancellation.
func Transform[I, E, V, A, B any](form Form[I, E, V, A], f func(ctx context.Context, a A) (B, []E)) Form[I, E, V, B] {
	return Form[I, E, V, B]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, B], error) {
		s, err := form.run(ctx, env, cursor)
		if err != nil {
			return formStep[E, V, B]{}, err
		}
		res := FlatMapResult(s.result, func(a A) Result[E, B] {
			b, errs := f(ctx, a)
			if len(errs) == 0 {
				return Ok[E](b)
			}
			ranged := make([]RangedError[E], len(errs))
			for i, e := range errs {
				ranged[i] = RangedError[E]{Range: s.cursor, Err: e}
			}
			return Errors[E, B](ranged...)
		})
		return formStep[E, V, B]{cursor: s.cursor, view: s.view, result: res}, nil
	}}
}

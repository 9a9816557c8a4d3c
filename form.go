package digestive

import "context"

// Form is the unit of composition: a description of some fields that, when
// run against an environment, yields a view and a validated result while
// accounting for the identifier range it occupied. A Form value is a static
// blueprint; running it holds no state beyond the cursor threaded through
// one run, so the same Form may be run concurrently with different prefixes.
//
// Type parameters: I raw input, E error payload, V view fragment, A value.
type Form[I, E, V, A any] struct {
	run runFunc[I, E, V, A]
}

type runFunc[I, E, V, A any] func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, A], error)

// formStep is what one composition step leaves behind: the advanced cursor
// plus the view and result fragments produced under it.
type formStep[E, V, A any] struct {
	cursor FieldRange
	view   View[E, V]
	result Result[E, A]
}

// NewForm wraps a raw run function as a Form. Leaf-field packages build on
// the exported combinators instead; this exists for collaborators that need
// full control over cursor handling.
func NewForm[I, E, V, A any](run func(ctx context.Context, env Environment[I], cursor FieldRange) (FieldRange, View[E, V], Result[E, A], error)) Form[I, E, V, A] {
	return Form[I, E, V, A]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, A], error) {
		cur, view, res, err := run(ctx, env, cursor)
		if err != nil {
			return formStep[E, V, A]{}, err
		}
		if view == nil {
			view = EmptyView[E, V]()
		}
		return formStep[E, V, A]{cursor: cur, view: view, result: res}, nil
	}}
}

// Pure lifts a value into a form that renders nothing and consumes no
// identifiers; it is the applicative identity.
func Pure[I, E, V, A any](a A) Form[I, E, V, A] {
	return Form[I, E, V, A]{run: func(_ context.Context, _ Environment[I], cursor FieldRange) (formStep[E, V, A], error) {
		return formStep[E, V, A]{cursor: cursor, view: EmptyView[E, V](), result: Ok[E](a)}, nil
	}}
}

// WrapView attaches a rendered fragment to a unit-producing step without
// touching the cursor. Leaf fields pair this with a value-producing step.
func WrapView[I, E, V any](fragment V) Form[I, E, V, struct{}] {
	return Form[I, E, V, struct{}]{run: func(_ context.Context, _ Environment[I], cursor FieldRange) (formStep[E, V, struct{}], error) {
		return formStep[E, V, struct{}]{cursor: cursor, view: ConstView[E](fragment), result: Ok[E](struct{}{})}, nil
	}}
}

// WrapViewFunc is WrapView for a fragment computed from the final error
// list, for decorations that need to inspect sibling errors.
func WrapViewFunc[I, E, V any](view View[E, V]) Form[I, E, V, struct{}] {
	return Form[I, E, V, struct{}]{run: func(_ context.Context, _ Environment[I], cursor FieldRange) (formStep[E, V, struct{}], error) {
		return formStep[E, V, struct{}]{cursor: cursor, view: view, result: Ok[E](struct{}{})}, nil
	}}
}

// runPair sequences two forms. The left form runs on the inherited cursor
// (the caller guarantees it is validly positioned); the cursor is then reset
// to a fresh unit range just past the left form's end before the right form
// runs. The returned range spans both operands, so composition widens and
// never narrows the enclosing range.
func runPair[I, E, V, A, B any](
	ctx context.Context,
	env Environment[I],
	cursor FieldRange,
	fa Form[I, E, V, A],
	fb Form[I, E, V, B],
) (formStep[E, V, A], formStep[E, V, B], FieldRange, error) {
	start := cursor.Start
	left, err := fa.run(ctx, env, cursor)
	if err != nil {
		return formStep[E, V, A]{}, formStep[E, V, B]{}, FieldRange{}, err
	}
	boundary := left.cursor.End
	right, err := fb.run(ctx, env, FieldRange{Start: boundary, End: boundary.Next()})
	if err != nil {
		return formStep[E, V, A]{}, formStep[E, V, B]{}, FieldRange{}, err
	}
	return left, right, FieldRange{Start: start, End: right.cursor.End}, nil
}

// Apply combines a function-producing form with a value-producing form. Both
// sides always run: both views render and both sides' errors accumulate even
// when one of them fails, which is the composition to use for independent
// sibling fields.
func Apply[I, E, V, A, B any](ff Form[I, E, V, func(A) B], fa Form[I, E, V, A]) Form[I, E, V, B] {
	return Form[I, E, V, B]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, B], error) {
		left, right, span, err := runPair(ctx, env, cursor, ff, fa)
		if err != nil {
			return formStep[E, V, B]{}, err
		}
		res := CombineResults(left.result, right.result, func(f func(A) B, a A) B { return f(a) })
		return formStep[E, V, B]{cursor: span, view: ConcatViews(left.view, right.view), result: res}, nil
	}}
}

// Map2 zips two independent forms with f, with Apply's accumulation
// semantics.
func Map2[I, E, V, A, B, C any](f func(A, B) C, fa Form[I, E, V, A], fb Form[I, E, V, B]) Form[I, E, V, C] {
	return Form[I, E, V, C]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, C], error) {
		left, right, span, err := runPair(ctx, env, cursor, fa, fb)
		if err != nil {
			return formStep[E, V, C]{}, err
		}
		res := CombineResults(left.result, right.result, f)
		return formStep[E, V, C]{cursor: span, view: ConcatViews(left.view, right.view), result: res}, nil
	}}
}

// Map3 zips three independent forms with f.
func Map3[I, E, V, A, B, C, D any](f func(A, B, C) D, fa Form[I, E, V, A], fb Form[I, E, V, B], fc Form[I, E, V, C]) Form[I, E, V, D] {
	curried := Map2(func(a A, b B) func(C) D {
		return func(c C) D { return f(a, b, c) }
	}, fa, fb)
	return Apply(curried, fc)
}

// Bind sequences a dependent form: k only runs when f validated, so on
// failure the continuation's view does not exist at all, not merely renders
// empty. Use it when a later field's very presence depends on an earlier
// value; use Apply for always-rendered siblings.
func Bind[I, E, V, A, B any](f Form[I, E, V, A], k func(A) Form[I, E, V, B]) Form[I, E, V, B] {
	return Form[I, E, V, B]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, B], error) {
		start := cursor.Start
		left, err := f.run(ctx, env, cursor)
		if err != nil {
			return formStep[E, V, B]{}, err
		}
		a, ok := left.result.Value()
		if !ok {
			return formStep[E, V, B]{
				cursor: FieldRange{Start: start, End: left.cursor.End},
				view:   left.view,
				result: Errors[E, B](left.result.Issues()...),
			}, nil
		}
		boundary := left.cursor.End
		right, err := k(a).run(ctx, env, FieldRange{Start: boundary, End: boundary.Next()})
		if err != nil {
			return formStep[E, V, B]{}, err
		}
		return formStep[E, V, B]{
			cursor: FieldRange{Start: start, End: right.cursor.End},
			view:   ConcatViews(left.view, right.view),
			result: right.result,
		}, nil
	}}
}

// Prepend attaches a decorative, unit-producing form (a label, say) in front
// of a real form. The real form runs first on the inherited cursor, so a
// decorated field keeps the identifiers and error ranges it would have on
// its own; the decoration runs after it, still consuming identifier space.
// Only the real form's result survives, but both views render in
// decoration-then-form order.
func Prepend[I, E, V, A any](deco Form[I, E, V, struct{}], f Form[I, E, V, A]) Form[I, E, V, A] {
	return Form[I, E, V, A]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, A], error) {
		field, decorated, span, err := runPair(ctx, env, cursor, f, deco)
		if err != nil {
			return formStep[E, V, A]{}, err
		}
		res := CombineResults(field.result, decorated.result, func(a A, _ struct{}) A { return a })
		return formStep[E, V, A]{cursor: span, view: ConcatViews(decorated.view, field.view), result: res}, nil
	}}
}

// Append is Prepend with the decoration trailing the real form.
func Append[I, E, V, A any](f Form[I, E, V, A], deco Form[I, E, V, struct{}]) Form[I, E, V, A] {
	return Map2(func(a A, _ struct{}) A { return a }, f, deco)
}

// MapForm rewrites the validated value, leaving view and ranges untouched.
func MapForm[I, E, V, A, B any](f func(A) B, form Form[I, E, V, A]) Form[I, E, V, B] {
	return Form[I, E, V, B]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, B], error) {
		s, err := form.run(ctx, env, cursor)
		if err != nil {
			return formStep[E, V, B]{}, err
		}
		return formStep[E, V, B]{cursor: s.cursor, view: s.view, result: MapResult(s.result, f)}, nil
	}}
}

// MapFormView rewrites the rendered artifact type, leaving range and result
// logic untouched.
func MapFormView[I, E, V, W, A any](f func(V) W, form Form[I, E, V, A]) Form[I, E, W, A] {
	return Form[I, E, W, A]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, W, A], error) {
		s, err := form.run(ctx, env, cursor)
		if err != nil {
			return formStep[E, W, A]{}, err
		}
		return formStep[E, W, A]{cursor: s.cursor, view: MapViewOutput(f, s.view), result: s.result}, nil
	}}
}

// ---- accessor forms for leaf-field implementers ----

// Input is the optional raw value an environment holds for a field.
type Input[I any] struct {
	Value I
	Found bool
}

// FormID yields the identifier the cursor currently points at, without
// consuming it. A leaf field reads this exactly once to claim its own id.
func FormID[I, E, V any]() Form[I, E, V, FieldID] {
	return Form[I, E, V, FieldID]{run: func(_ context.Context, _ Environment[I], cursor FieldRange) (formStep[E, V, FieldID], error) {
		return formStep[E, V, FieldID]{cursor: cursor, view: EmptyView[E, V](), result: Ok[E](cursor.Start)}, nil
	}}
}

// FormRangeNow yields the current cursor range without consuming it.
func FormRangeNow[I, E, V any]() Form[I, E, V, FieldRange] {
	return Form[I, E, V, FieldRange]{run: func(_ context.Context, _ Environment[I], cursor FieldRange) (formStep[E, V, FieldRange], error) {
		return formStep[E, V, FieldRange]{cursor: cursor, view: EmptyView[E, V](), result: Ok[E](cursor)}, nil
	}}
}

// FormInput looks up the environment at the current identifier. This is the
// engine's one suspension point: the lookup may block on the context, and
// lookups across a composition happen strictly left to right.
func FormInput[I, E, V any]() Form[I, E, V, Input[I]] {
	return Form[I, E, V, Input[I]]{run: func(ctx context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, Input[I]], error) {
		v, ok, err := env.Lookup(ctx, cursor.Start)
		if err != nil {
			return formStep[E, V, Input[I]]{}, err
		}
		return formStep[E, V, Input[I]]{cursor: cursor, view: EmptyView[E, V](), result: Ok[E](Input[I]{Value: v, Found: ok})}, nil
	}}
}

// HasFormInput reports whether any input was submitted at all, so leaf
// fields can distinguish a fresh render from a failed submission.
func HasFormInput[I, E, V any]() Form[I, E, V, bool] {
	return Form[I, E, V, bool]{run: func(_ context.Context, env Environment[I], cursor FieldRange) (formStep[E, V, bool], error) {
		return formStep[E, V, bool]{cursor: cursor, view: EmptyView[E, V](), result: Ok[E](env.HasInput())}, nil
	}}
}

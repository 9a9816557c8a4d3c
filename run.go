package digestive

import "context"

// RunForm executes a form against an environment. The cursor starts at the
// one-identifier range (prefix,0)..(prefix,1) and every identifier the run
// hands out derives from it, so two runs can never share or leak state. The
// returned view is still unapplied: callers decide which error list to
// render it with.
func RunForm[I, E, V, A any](ctx context.Context, form Form[I, E, V, A], prefix string, env Environment[I]) (View[E, V], Result[E, A], error) {
	s, err := form.run(ctx, env, unitRange(prefix))
	if err != nil {
		return nil, Result[E, A]{}, err
	}
	return s.view, s.result, nil
}

// Either projects a finished run to a single branch: the rendered view of a
// failed submission, or the validated value.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left returns the failure branch.
func (e Either[L, R]) Left() (L, bool) { return e.left, !e.isRight }

// Right returns the success branch.
func (e Either[L, R]) Right() (R, bool) { return e.right, e.isRight }

// EitherForm runs the form and collapses the (view, result) pair: on failure
// the view is rendered against the complete error list of the run, on
// success the typed value is returned and the view is dropped.
func EitherForm[I, E, V, A any](ctx context.Context, form Form[I, E, V, A], prefix string, env Environment[I]) (Either[[]V, A], error) {
	view, result, err := RunForm(ctx, form, prefix, env)
	if err != nil {
		return Either[[]V, A]{}, err
	}
	if a, ok := result.Value(); ok {
		return Either[[]V, A]{right: a, isRight: true}, nil
	}
	return Either[[]V, A]{left: view.Render(result.Issues())}, nil
}

// ViewForm renders a form that was never submitted: it runs with an absent
// environment and applies the view to an empty error list. The run's Result
// may still be a failure (a required field with no input, depending on leaf
// semantics); such errors are deliberately not shown on this path.
func ViewForm[I, E, V, A any](ctx context.Context, form Form[I, E, V, A], prefix string) ([]V, error) {
	view, _, err := RunForm(ctx, form, prefix, Environment[I]{})
	if err != nil {
		return nil, err
	}
	return view.Render(nil), nil
}

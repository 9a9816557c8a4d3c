package digestive

// Package digestive provides:
//
// - A composable Form abstraction yielding both a view and a validated
//   result from one declarative description (Pure/Apply/Bind/Prepend)
// - A stable error model via RangedError (field range, payload) with
//   accumulating applicative composition
// - Environment lookup of submitted input by FieldID, context-aware and
//   mergeable, with JSON/YAML document constructors
// - Deferred, error-aware views finalized only once a run's complete error
//   list is known
//
// Design policy:
// - Keep the composition engine in the root package; leaf fields under
//   fields/, HTML rendering and HTTP glue under htmlform/.
// - Validation failures are data (Result), never Go errors; Go errors are
//   reserved for environment I/O and context cancellation.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	form := digestive.Map2(newUser,
//	    fields.Required("name is required"),
//	    fields.Int(0))
//	out, err := digestive.EitherForm(ctx, form, "signup", env)
//	if html, failed := out.Left(); failed {
//	    render(html)
//	}

// Package fields supplies reference leaf fields built purely on the public
// engine API: each one claims a single identifier, consults the environment,
// and emits a renderer-agnostic Fragment describing what to draw. They
// double as the model for writing custom leaves.
package fields

import (
	"context"
	"strconv"
	"strings"

	digestive "github.com/axman6/digestive-functors"
)

// Kind discriminates what a Fragment describes.
type Kind string

const (
	KindLabel    Kind = "label"
	KindText     Kind = "text"
	KindCheckbox Kind = "checkbox"
)

// Fragment is the view unit every field in this package renders to. Every
// fragment carries the identifier the composition assigned it, decorations
// included, so renderers can address each one.
type Fragment struct {
	ID      digestive.FieldID
	Kind    Kind
	Text    string // label text
	Value   string // rendered value for inputs
	Checked bool
	Errors  []string // this field's own errors, in composition order
}

// Form fixes the engine's type parameters to this package's conventions:
// string raw input, string error payloads, Fragment view units.
type Form[A any] = digestive.Form[string, string, Fragment, A]

// leaf builds the common one-identifier field shape: read the current id,
// look up input, parse, and defer the fragment until the run's full error
// list exists so the field can pick out its own errors.
func leaf[A any](
	parse func(in digestive.Input[string]) (A, []string),
	fragment func(id digestive.FieldID, in digestive.Input[string], own []string) Fragment,
) Form[A] {
	return digestive.NewForm(func(ctx context.Context, env digestive.Environment[string], cursor digestive.FieldRange) (digestive.FieldRange, digestive.View[string, Fragment], digestive.Result[string, A], error) {
		id := cursor.Start
		own := digestive.FieldRange{Start: id, End: id.Next()}
		raw, found, err := env.Lookup(ctx, id)
		if err != nil {
			return digestive.FieldRange{}, nil, digestive.Result[string, A]{}, err
		}
		in := digestive.Input[string]{Value: raw, Found: found}
		view := digestive.View[string, Fragment](func(all []digestive.RangedError[string]) []Fragment {
			return []Fragment{fragment(id, in, digestive.ErrorsAt(own, all))}
		})
		value, errs := parse(in)
		if len(errs) == 0 {
			return own, view, digestive.Ok[string](value), nil
		}
		ranged := make([]digestive.RangedError[string], len(errs))
		for i, e := range errs {
			ranged[i] = digestive.RangedError[string]{Range: own, Err: e}
		}
		return own, view, digestive.Errors[string, A](ranged...), nil
	})
}

// Text is a free-text input. The submitted value wins over def; it never
// fails on its own, so wrap it with digestive.Check for constraints.
func Text(def string) Form[string] {
	return leaf(
		func(in digestive.Input[string]) (string, []string) {
			if in.Found {
				return in.Value, nil
			}
			return def, nil
		},
		func(id digestive.FieldID, in digestive.Input[string], own []string) Fragment {
			value := def
			if in.Found {
				value = in.Value
			}
			return Fragment{ID: id, Kind: KindText, Value: value, Errors: own}
		},
	)
}

// Required is a text input that rejects absent or blank submissions with
// msg. A never-submitted form therefore carries the error in its Result,
// which the view-only render path deliberately does not show.
func Required(msg string) Form[string] {
	return digestive.Check(Text(""), func(s string) bool {
		return strings.TrimSpace(s) != ""
	}, msg)
}

// Int parses a base-10 integer, failing on its own range when the
// submission does not parse. Absent input yields def.
func Int(def int) Form[int] {
	return leaf(
		func(in digestive.Input[string]) (int, []string) {
			if !in.Found {
				return def, nil
			}
			n, err := strconv.Atoi(strings.TrimSpace(in.Value))
			if err != nil {
				return 0, []string{"must be an integer"}
			}
			return n, nil
		},
		func(id digestive.FieldID, in digestive.Input[string], own []string) Fragment {
			value := strconv.Itoa(def)
			if in.Found {
				value = in.Value
			}
			return Fragment{ID: id, Kind: KindText, Value: value, Errors: own}
		},
	)
}

// Checkbox maps browser checkbox semantics: an unchecked box is simply
// absent from the submission, so absent input means def, and any of the
// usual truthy encodings mean checked.
func Checkbox(def bool) Form[bool] {
	return leaf(
		func(in digestive.Input[string]) (bool, []string) {
			if !in.Found {
				return def, nil
			}
			return checked(in.Value), nil
		},
		func(id digestive.FieldID, in digestive.Input[string], own []string) Fragment {
			state := def
			if in.Found {
				state = checked(in.Value)
			}
			return Fragment{ID: id, Kind: KindCheckbox, Checked: state, Errors: own}
		},
	)
}

func checked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Label is a decorative unit form for digestive.Prepend / digestive.Append.
// It renders text and produces no value, but still records the identifier
// the composition assigned it so errors can be attributed to decorations.
func Label(text string) Form[struct{}] {
	return digestive.NewForm(func(_ context.Context, _ digestive.Environment[string], cursor digestive.FieldRange) (digestive.FieldRange, digestive.View[string, Fragment], digestive.Result[string, struct{}], error) {
		fragment := Fragment{ID: cursor.Start, Kind: KindLabel, Text: text}
		return cursor, digestive.ConstView[string, Fragment](fragment), digestive.Ok[string](struct{}{}), nil
	})
}

package digestive

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LookupFunc resolves the raw submitted input for one field. It is the only
// suspension point in the engine: implementations may perform deferred I/O,
// so they receive the run's context and may fail with an ordinary Go error
// (including ctx.Err on cancellation). The bool reports whether any input
// exists for the identifier.
type LookupFunc[I any] func(ctx context.Context, id FieldID) (I, bool, error)

// Environment supplies submitted input to a run. It is either present
// (backed by a lookup) or absent (a fresh, never-submitted form); the zero
// value is absent.
type Environment[I any] struct {
	lookup LookupFunc[I]
}

// EnvFromLookup wraps an arbitrary lookup as a present environment.
func EnvFromLookup[I any](lookup LookupFunc[I]) Environment[I] {
	if lookup == nil {
		return Environment[I]{}
	}
	return Environment[I]{lookup: lookup}
}

// EnvFromMapping builds a present environment from explicit (id, value)
// pairs. Lookups are synchronous underneath the asynchronous contract.
func EnvFromMapping[I any](pairs map[FieldID]I) Environment[I] {
	m := make(map[FieldID]I, len(pairs))
	for id, v := range pairs {
		m[id] = v
	}
	return Environment[I]{lookup: func(ctx context.Context, id FieldID) (I, bool, error) {
		v, ok := m[id]
		return v, ok, nil
	}}
}

// HasInput reports whether the environment is present. Renderers branch on
// this to choose fresh-form versus re-render display; the core attaches no
// policy to it.
func (e Environment[I]) HasInput() bool { return e.lookup != nil }

// Lookup resolves id, or reports no input when the environment is absent.
func (e Environment[I]) Lookup(ctx context.Context, id FieldID) (I, bool, error) {
	if e.lookup == nil {
		var zero I
		return zero, false, nil
	}
	return e.lookup(ctx, id)
}

// MergeEnvs composes two environments, trying left before right. Absent
// environments are the identity on either side.
func MergeEnvs[I any](left, right Environment[I]) Environment[I] {
	if left.lookup == nil {
		return right
	}
	if right.lookup == nil {
		return left
	}
	return Environment[I]{lookup: func(ctx context.Context, id FieldID) (I, bool, error) {
		v, ok, err := left.lookup(ctx, id)
		if err != nil || ok {
			return v, ok, err
		}
		return right.lookup(ctx, id)
	}}
}

// ErrBadEnvDocument reports an input document that does not decode to a flat
// object of scalar values keyed by canonical field names.
var ErrBadEnvDocument = errors.New("digestive: environment document must be a flat object of scalars")

// EnvFromJSON decodes a JSON object of canonical field names to raw values
// into a string environment, e.g. {"signup-f1": "Alice"}. Scalar values are
// rendered to their literal text; nested objects or arrays are rejected.
func EnvFromJSON(data []byte) (Environment[string], error) {
	var doc map[string]any
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return Environment[string]{}, fmt.Errorf("digestive: decode env json: %w", err)
	}
	return envFromDocument(doc)
}

// EnvFromYAML is EnvFromJSON for YAML documents.
func EnvFromYAML(data []byte) (Environment[string], error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Environment[string]{}, fmt.Errorf("digestive: decode env yaml: %w", err)
	}
	return envFromDocument(doc)
}

func envFromDocument(doc map[string]any) (Environment[string], error) {
	pairs := make(map[FieldID]string, len(doc))
	for name, raw := range doc {
		id, err := ParseFieldID(name)
		if err != nil {
			// Keys that are not field names (csrf tokens, submit buttons)
			// are simply not form input.
			continue
		}
		s, ok := scalarText(raw)
		if !ok {
			return Environment[string]{}, fmt.Errorf("%w: key %q", ErrBadEnvDocument, name)
		}
		pairs[id] = s
	}
	return EnvFromMapping(pairs), nil
}

func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

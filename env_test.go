package digestive_test

import (
	"context"
	"errors"
	"testing"

	digestive "github.com/axman6/digestive-functors"
)

func fid(seq int) digestive.FieldID { return digestive.FieldID{Prefix: "t", Seq: seq} }

func TestEnvFromMapping_Lookup(t *testing.T) {
	env := digestive.EnvFromMapping(map[digestive.FieldID]string{fid(0): "alice"})
	if !env.HasInput() {
		t.Fatalf("mapping environment must be present")
	}
	v, ok, err := env.Lookup(context.Background(), fid(0))
	if err != nil || !ok || v != "alice" {
		t.Fatalf("Lookup: got (%q, %v, %v)", v, ok, err)
	}
	if _, ok, _ := env.Lookup(context.Background(), fid(9)); ok {
		t.Fatalf("unknown id must report no input")
	}
}

func TestAbsentEnvironment(t *testing.T) {
	var env digestive.Environment[string]
	if env.HasInput() {
		t.Fatalf("zero environment must be absent")
	}
	if _, ok, err := env.Lookup(context.Background(), fid(0)); ok || err != nil {
		t.Fatalf("absent lookup: got (ok=%v, err=%v)", ok, err)
	}
}

func TestMergeEnvs_FirstMatchWins(t *testing.T) {
	left := digestive.EnvFromMapping(map[digestive.FieldID]string{fid(0): "left"})
	right := digestive.EnvFromMapping(map[digestive.FieldID]string{fid(0): "right", fid(1): "only-right"})
	merged := digestive.MergeEnvs(left, right)

	v, _, _ := merged.Lookup(context.Background(), fid(0))
	if v != "left" {
		t.Fatalf("left must win: got %q", v)
	}
	v, ok, _ := merged.Lookup(context.Background(), fid(1))
	if !ok || v != "only-right" {
		t.Fatalf("fallback to right: got (%q, %v)", v, ok)
	}
}

func TestMergeEnvs_AbsentIsIdentity(t *testing.T) {
	present := digestive.EnvFromMapping(map[digestive.FieldID]string{fid(0): "x"})
	var absent digestive.Environment[string]

	for _, env := range []digestive.Environment[string]{
		digestive.MergeEnvs(absent, present),
		digestive.MergeEnvs(present, absent),
	} {
		if v, ok, _ := env.Lookup(context.Background(), fid(0)); !ok || v != "x" {
			t.Fatalf("identity merge lost input: (%q, %v)", v, ok)
		}
	}
	if digestive.MergeEnvs(absent, absent).HasInput() {
		t.Fatalf("merging two absent environments must stay absent")
	}
}

func TestMergeEnvs_LeftErrorPropagates(t *testing.T) {
	boom := errors.New("backend down")
	left := digestive.EnvFromLookup(func(context.Context, digestive.FieldID) (string, bool, error) {
		return "", false, boom
	})
	right := digestive.EnvFromMapping(map[digestive.FieldID]string{fid(0): "x"})
	if _, _, err := digestive.MergeEnvs(left, right).Lookup(context.Background(), fid(0)); !errors.Is(err, boom) {
		t.Fatalf("left lookup error must propagate, got %v", err)
	}
}

func TestEnvFromJSON(t *testing.T) {
	env, err := digestive.EnvFromJSON([]byte(`{"t-f0": "Alice", "t-f1": 30, "t-f2": true, "submit": "go"}`))
	if err != nil {
		t.Fatalf("EnvFromJSON: %v", err)
	}
	cases := map[int]string{0: "Alice", 1: "30", 2: "true"}
	for seq, want := range cases {
		v, ok, _ := env.Lookup(context.Background(), fid(seq))
		if !ok || v != want {
			t.Fatalf("seq %d: got (%q, %v) want %q", seq, v, ok, want)
		}
	}
	// keys that are not field names are not input
	if _, ok, _ := env.Lookup(context.Background(), fid(9)); ok {
		t.Fatalf("unexpected input at seq 9")
	}
}

func TestEnvFromJSON_RejectsNestedValues(t *testing.T) {
	if _, err := digestive.EnvFromJSON([]byte(`{"t-f0": {"nested": true}}`)); !errors.Is(err, digestive.ErrBadEnvDocument) {
		t.Fatalf("want ErrBadEnvDocument, got %v", err)
	}
}

func TestEnvFromYAML(t *testing.T) {
	env, err := digestive.EnvFromYAML([]byte("t-f0: Alice\nt-f1: 30\n"))
	if err != nil {
		t.Fatalf("EnvFromYAML: %v", err)
	}
	v, ok, _ := env.Lookup(context.Background(), fid(1))
	if !ok || v != "30" {
		t.Fatalf("yaml int value: got (%q, %v)", v, ok)
	}
}

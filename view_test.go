package digestive_test

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	digestive "github.com/axman6/digestive-functors"
)

func TestConcatViews_LeftThenRight(t *testing.T) {
	left := digestive.ConstView[string]("a")
	right := digestive.ConstView[string]("b")
	got := digestive.ConcatViews(left, right).Render(nil)
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("concat order (-want +got):\n%s", diff)
	}
}

func TestEmptyView_IsIdentity(t *testing.T) {
	v := digestive.ConstView[string]("x")
	empty := digestive.EmptyView[string, string]()
	for _, composed := range []digestive.View[string, string]{
		digestive.ConcatViews(empty, v),
		digestive.ConcatViews(v, empty),
	} {
		if diff := cmp.Diff([]string{"x"}, composed.Render(nil)); diff != "" {
			t.Fatalf("empty view not neutral (-want +got):\n%s", diff)
		}
	}
}

func TestView_SeesFullErrorList(t *testing.T) {
	counting := digestive.View[string, int](func(errs []digestive.RangedError[string]) []int {
		return []int{len(errs)}
	})
	errs := []digestive.RangedError[string]{rerr(0, 1, "a"), rerr(1, 2, "b")}
	got := digestive.ConcatViews(counting, counting).Render(errs)
	if diff := cmp.Diff([]int{2, 2}, got); diff != "" {
		t.Fatalf("both sides must see the same complete list (-want +got):\n%s", diff)
	}
}

func TestMapViewOutput(t *testing.T) {
	v := digestive.View[string, int](func([]digestive.RangedError[string]) []int { return []int{1, 2} })
	got := digestive.MapViewOutput(strconv.Itoa, v).Render(nil)
	if diff := cmp.Diff([]string{"1", "2"}, got); diff != "" {
		t.Fatalf("mapped fragments (-want +got):\n%s", diff)
	}
}

func TestNilView_RendersNothing(t *testing.T) {
	var v digestive.View[string, string]
	if out := v.Render(nil); out != nil {
		t.Fatalf("nil view rendered %v", out)
	}
}

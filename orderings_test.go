package rpnsolve

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderings(t *testing.T) {
	cases := []struct {
		name string
		n    int
		want [][]int
	}{
		{"one", 1, [][]int{{0}}},
		{"two", 2, [][]int{{0, 1}, {1, 0}}},
		{"three", 3, [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if diff := cmp.Diff(c.want, orderings(c.n)); diff != "" {
				t.Errorf("wrong orderings (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrderingsCount(t *testing.T) {
	p := orderings(6)
	if len(p) != 720 {
		t.Fatalf("want 720 orderings, got %d", len(p))
	}
	seen := make(map[[6]int]bool, len(p))
	for i, o := range p {
		var k [6]int
		copy(k[:], o)
		if seen[k] {
			t.Errorf("ordering %v repeated", o)
		}
		seen[k] = true
		if i > 0 && slices.Compare(p[i-1], o) >= 0 {
			t.Errorf("ordering %d %v is not after %v", i, o, p[i-1])
		}
	}
}

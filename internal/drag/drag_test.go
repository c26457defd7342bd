package drag

import (
	"testing"

	"github.com/1broseidon/keyviz/internal/grid"
)

func TestMotionWithoutBegin(t *testing.T) {
	tr := NewTracker[string]()
	if _, ok := tr.Motion("handle", grid.Point{X: 5, Y: 5}); ok {
		t.Fatalf("expected motion without begin to be ignored")
	}
}

func TestMotionDeltasAreIncremental(t *testing.T) {
	tr := NewTracker[string]()
	tr.Begin("handle", grid.Point{X: 100, Y: 100})

	d1, ok := tr.Motion("handle", grid.Point{X: 110, Y: 95})
	if !ok || d1 != (grid.Point{X: 10, Y: -5}) {
		t.Fatalf("first delta = %+v ok=%v", d1, ok)
	}
	d2, ok := tr.Motion("handle", grid.Point{X: 130, Y: 120})
	if !ok || d2 != (grid.Point{X: 20, Y: 25}) {
		t.Fatalf("second delta = %+v ok=%v", d2, ok)
	}

	total := d1.Add(d2)
	if total != (grid.Point{X: 30, Y: 20}) {
		t.Fatalf("deltas should sum to displacement since press, got %+v", total)
	}
}

func TestDeltasComposeRegardlessOfStepCount(t *testing.T) {
	start := grid.Point{X: 7, Y: -3}
	end := grid.Point{X: 57, Y: 41}

	for _, steps := range []int{1, 2, 5, 17} {
		tr := NewTracker[int]()
		tr.Begin(1, start)
		var sum grid.Point
		for i := 1; i <= steps; i++ {
			p := grid.Point{
				X: start.X + (end.X-start.X)*i/steps,
				Y: start.Y + (end.Y-start.Y)*i/steps,
			}
			d, ok := tr.Motion(1, p)
			if !ok {
				t.Fatalf("steps=%d: motion rejected", steps)
			}
			sum = sum.Add(d)
		}
		if sum != end.Sub(start) {
			t.Fatalf("steps=%d: sum %+v, want %+v", steps, sum, end.Sub(start))
		}
	}
}

func TestTargetsAreIndependent(t *testing.T) {
	tr := NewTracker[rune]()
	tr.Begin('a', grid.Point{X: 0, Y: 0})
	tr.Begin('b', grid.Point{X: 50, Y: 50})

	if d, _ := tr.Motion('a', grid.Point{X: 1, Y: 1}); d != (grid.Point{X: 1, Y: 1}) {
		t.Fatalf("a delta = %+v", d)
	}
	if d, _ := tr.Motion('b', grid.Point{X: 49, Y: 50}); d != (grid.Point{X: -1, Y: 0}) {
		t.Fatalf("b delta = %+v", d)
	}
}

func TestEndAndReset(t *testing.T) {
	tr := NewTracker[rune]()
	tr.Begin('a', grid.Point{})
	tr.Begin('b', grid.Point{})

	tr.End('a')
	if tr.Active('a') {
		t.Fatalf("a still active after End")
	}
	if !tr.Active('b') {
		t.Fatalf("b should be unaffected by End(a)")
	}

	tr.Reset()
	if tr.Active('b') {
		t.Fatalf("b still active after Reset")
	}
}

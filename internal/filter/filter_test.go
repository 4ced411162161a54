package filter

import (
	"math"
	"testing"
)

func TestCascadeIdentityPassesThrough(t *testing.T) {
	sec := NewSection([3]float64{1, 0, 0}, [3]float64{1, 0, 0})
	c := NewCascade(sec)
	for _, v := range []float64{0, 0.5, -0.3, 1.0} {
		if got := c.Process(v); math.Abs(got-v) > 1e-12 {
			t.Fatalf("identity filter: expected %v, got %v", v, got)
		}
	}
}

func TestApplyMatchesSequentialProcess(t *testing.T) {
	secA := NewSection([3]float64{1.0, -0.5, 0}, [3]float64{1, -0.2, 0.01})
	x := []float64{1, 0, 0, 0, 0, 0, 0, 0}

	c := NewCascade(secA)
	manual := make([]float64, len(x))
	for i, v := range x {
		manual[i] = c.Process(v)
	}

	got := Apply(x, secA)
	for i := range got {
		if math.Abs(got[i]-manual[i]) > 1e-12 {
			t.Fatalf("sample %d: expected %v, got %v", i, manual[i], got[i])
		}
	}
}

func TestMovingAverageConstantSignal(t *testing.T) {
	x := make([]float64, 50)
	for i := range x {
		x[i] = 3.0
	}
	y := MovingAverage(x, 10)
	for i, v := range y {
		if math.Abs(v-3.0) > 1e-9 {
			t.Fatalf("sample %d: expected 3.0, got %v", i, v)
		}
	}
}

func TestMovingAverageSmoothsImpulse(t *testing.T) {
	x := make([]float64, 21)
	x[10] = 21.0
	y := MovingAverage(x, 20)
	// Window [0,20] covers the whole buffer at the center sample.
	if math.Abs(y[10]-1.0) > 1e-9 {
		t.Fatalf("expected center average 1.0, got %v", y[10])
	}
	if y[10] >= x[10] {
		t.Fatalf("expected impulse to be smoothed well below peak, got %v", y[10])
	}
}

package particles

import (
	"math"
	"testing"
)

func TestNewFluidFields(t *testing.T) {
	g := NewFluid("fluid", 10)

	if g.Len() != 10 {
		t.Errorf("expected 10 particles, got %d", g.Len())
	}
	for _, name := range BaseFields {
		f := g.Field(name)
		if f == nil {
			t.Errorf("missing base field %q", name)
			continue
		}
		if len(f) != 10 {
			t.Errorf("field %q: expected len 10, got %d", name, len(f))
		}
	}
	if g.Field("s00") != nil {
		t.Error("expected nil for absent field")
	}
}

func TestAddFieldIdempotent(t *testing.T) {
	g := New("solid", 3)

	f := g.AddField("s00")
	f[1] = 4.5

	again := g.AddField("s00")
	if again[1] != 4.5 {
		t.Error("AddField replaced an existing field")
	}
}

func TestMin(t *testing.T) {
	g := New("fluid", 4, "h")
	h := g.Field("h")
	h[0], h[1], h[2], h[3] = 0.3, 0.1, 0.5, 0.2

	min, ok := g.Min("h")
	if !ok {
		t.Fatal("expected ok for existing field")
	}
	if min != 0.1 {
		t.Errorf("expected min 0.1, got %f", min)
	}

	if _, ok := g.Min("rho"); ok {
		t.Error("expected not ok for missing field")
	}

	empty := New("empty", 0, "h")
	if _, ok := empty.Min("h"); ok {
		t.Error("expected not ok for empty group")
	}
}

func TestAppendRemove(t *testing.T) {
	g := New("fluid", 0, "x", "u")

	g.Append(map[string]float64{"x": 1.0, "u": 10.0})
	g.Append(map[string]float64{"x": 2.0, "u": 20.0})
	g.Append(map[string]float64{"x": 3.0})

	if g.Len() != 3 {
		t.Fatalf("expected 3 particles, got %d", g.Len())
	}
	if g.Field("u")[2] != 0 {
		t.Error("unnamed field should default to zero")
	}

	g.Remove(0)
	if g.Len() != 2 {
		t.Fatalf("expected 2 particles after remove, got %d", g.Len())
	}
	// swap-delete moves the last particle into slot 0
	if g.Field("x")[0] != 3.0 {
		t.Errorf("expected x[0]=3 after swap-delete, got %f", g.Field("x")[0])
	}
}

func TestResize(t *testing.T) {
	g := New("fluid", 2, "x")
	g.Field("x")[0] = 7.0

	g.Resize(5)
	if g.Len() != 5 {
		t.Fatalf("expected len 5, got %d", g.Len())
	}
	x := g.Field("x")
	if x[0] != 7.0 {
		t.Error("resize lost existing values")
	}
	if x[4] != 0 {
		t.Error("grown slots should be zero")
	}

	g.Resize(1)
	if g.Len() != 1 || len(g.Field("x")) != 1 {
		t.Error("shrink failed")
	}
}

func TestValid(t *testing.T) {
	g := New("fluid", 2, "x")
	if !g.Valid() {
		t.Error("zeroed group should be valid")
	}

	g.Field("x")[1] = math.NaN()
	if g.Valid() {
		t.Error("NaN should invalidate the group")
	}

	g.Field("x")[1] = math.Inf(1)
	if g.Valid() {
		t.Error("Inf should invalidate the group")
	}
}

func TestNamesSorted(t *testing.T) {
	g := New("fluid", 1, "u", "arho", "x", "h")
	names := g.Names()

	want := []string{"arho", "h", "u", "x"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

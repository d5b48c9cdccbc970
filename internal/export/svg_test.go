package export

import (
	"strings"
	"testing"

	"github.com/san-kum/sphstep/internal/particles"
	"github.com/san-kum/sphstep/internal/viz"
)

func TestCanvasToSVGDrawsLitDots(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	got := CanvasToSVG(c, 4)
	if !strings.Contains(got, "<svg xmlns") {
		t.Error("expected svg header")
	}
	if n := strings.Count(got, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	if got := CanvasToSVG(nil, 4); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestParticlesToSVGColorsPerGroup(t *testing.T) {
	a := particles.New("a", 2, "x", "y")
	b := particles.New("b", 3, "x", "y")
	copy(a.Field("x"), []float64{0, 1})
	copy(a.Field("y"), []float64{0, 1})
	copy(b.Field("x"), []float64{0.2, 0.5, 0.8})
	copy(b.Field("y"), []float64{0.2, 0.5, 0.8})

	got := ParticlesToSVG([]*particles.Group{a, b}, 400, 300)
	if n := strings.Count(got, "<circle"); n != 5 {
		t.Errorf("expected 5 circles, got %d", n)
	}
	if n := strings.Count(got, "<g fill="); n != 2 {
		t.Errorf("expected 2 group elements, got %d", n)
	}
	if !strings.Contains(got, groupPalette[0]) || !strings.Contains(got, groupPalette[1]) {
		t.Error("expected a distinct palette color per group")
	}
}

func TestParticlesToSVGSkipsGroupsWithoutPositions(t *testing.T) {
	a := particles.New("a", 2, "x", "y")
	bare := particles.New("bare", 4, "rho")

	got := ParticlesToSVG([]*particles.Group{bare, a}, 200, 200)
	if n := strings.Count(got, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
}

func TestParticlesToSVGEmpty(t *testing.T) {
	if got := ParticlesToSVG(nil, 100, 100); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

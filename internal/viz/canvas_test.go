package viz

import "testing"

func TestCanvasSetEncodesBraille(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] != brailleBase|0x01 {
		t.Errorf("expected %#x, got %#x", brailleBase|0x01, c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0] != brailleBase|0x01|0x80 {
		t.Errorf("expected dots to accumulate, got %#x", c.Grid[0][0])
	}

	c.Set(2, 4)
	if c.Grid[1][1] != brailleBase|0x01 {
		t.Errorf("expected second cell dot, got %#x", c.Grid[1][1])
	}
}

func TestCanvasSetIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 8)
	for row := range c.Grid {
		for col, r := range c.Grid[row] {
			if r != brailleBase {
				t.Errorf("expected empty cell at %d,%d, got %#x", row, col, r)
			}
		}
	}
}

func TestCanvasDotAt(t *testing.T) {
	c := NewCanvas(3, 3)
	if c.DotAt(2, 5) {
		t.Error("expected unset dot")
	}
	c.Set(2, 5)
	if !c.DotAt(2, 5) {
		t.Error("expected dot after Set")
	}
	if c.DotAt(-1, 0) || c.DotAt(6, 0) || c.DotAt(0, 12) {
		t.Error("expected out-of-range dots to read unset")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Set(3, 7)
	c.Clear()
	if c.DotAt(0, 0) || c.DotAt(3, 7) {
		t.Error("expected cleared canvas")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	if !c.DotAt(0, 0) || !c.DotAt(7, 7) {
		t.Error("expected both endpoints lit")
	}
	lit := 0
	pw, ph := c.PixelSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if c.DotAt(x, y) {
				lit++
			}
		}
	}
	if lit != 8 {
		t.Errorf("expected 8 dots on the diagonal, got %d", lit)
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	got := c.String()
	want := string(rune(brailleBase|0x01)) + string(rune(brailleBase)) + "\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanvasPixelSize(t *testing.T) {
	c := NewCanvas(80, 24)
	pw, ph := c.PixelSize()
	if pw != 160 || ph != 96 {
		t.Errorf("expected 160x96, got %dx%d", pw, ph)
	}
}

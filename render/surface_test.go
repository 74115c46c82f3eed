package render

import (
	"testing"

	"github.com/lixenwraith/confetti/constant"
	"github.com/lixenwraith/confetti/particle"
	"github.com/lixenwraith/confetti/status"
)

var testBg = RGB{R: 12, G: 12, B: 20}

func newTestSurface(w, h int) *Surface {
	return NewSurface(w, h, testBg, status.NewRegistry())
}

func cellAt(s *Surface, x, y int) Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[y*s.width+x]
}

func TestAcquireDetachLifecycle(t *testing.T) {
	s := newTestSurface(20, 10)

	p := &particle.Particle{ID: 1, Kind: particle.KindShape, Shape: particle.ShapeSquare}
	h := s.Acquire(p)
	if h == nil {
		t.Fatal("Acquire returned nil handle")
	}
	if got := s.HandleCount(); got != 1 {
		t.Fatalf("HandleCount = %d, want 1", got)
	}

	h.Detach()
	if got := s.HandleCount(); got != 0 {
		t.Errorf("HandleCount = %d after Detach, want 0", got)
	}

	h.Detach() // Idempotent
	if got := s.HandleCount(); got != 0 {
		t.Errorf("HandleCount = %d after double Detach, want 0", got)
	}
}

func TestComposeDrawsShapeAtCell(t *testing.T) {
	s := newTestSurface(20, 10)

	p := &particle.Particle{ID: 1, Kind: particle.KindShape, Shape: particle.ShapeSquare, Color: 2}
	h := s.Acquire(p)
	h.SetTransform(5*constant.CellWidthPx, 3*constant.CellHeightPx, 0)
	h.SetOpacity(1)

	s.Compose()

	c := cellAt(s, 5, 3)
	if c.Rune != '■' {
		t.Errorf("cell rune = %q, want ■", c.Rune)
	}
	if c.Fg != Palette[2] {
		t.Errorf("cell color = %v, want full palette color %v at opacity 1", c.Fg, Palette[2])
	}
}

func TestOpacityFadesTowardBackground(t *testing.T) {
	s := newTestSurface(20, 10)

	p := &particle.Particle{ID: 1, Kind: particle.KindShape, Shape: particle.ShapeSquare, Color: 0}
	h := s.Acquire(p)
	h.SetTransform(0, 0, 0)

	h.SetOpacity(0)
	s.Compose()
	if c := cellAt(s, 0, 0); c.Fg != testBg {
		t.Errorf("opacity 0 color = %v, want background %v", c.Fg, testBg)
	}

	h.SetOpacity(0.5)
	s.Compose()
	half := cellAt(s, 0, 0).Fg
	if half == testBg || half == Palette[0] {
		t.Errorf("opacity 0.5 color = %v, want a blend between %v and %v", half, testBg, Palette[0])
	}
}

func TestWideRectTumbles(t *testing.T) {
	s := newTestSurface(20, 10)

	p := &particle.Particle{ID: 1, Kind: particle.KindShape, Shape: particle.ShapeWideRect}
	h := s.Acquire(p)
	h.SetOpacity(1)

	h.SetTransform(0, 0, 0)
	s.Compose()
	if c := cellAt(s, 0, 0); c.Rune != '▬' {
		t.Errorf("rotation 0 rune = %q, want ▬", c.Rune)
	}

	h.SetTransform(0, 0, 1.57) // ~π/2: edge-on
	s.Compose()
	if c := cellAt(s, 0, 0); c.Rune != '▮' {
		t.Errorf("rotation π/2 rune = %q, want ▮", c.Rune)
	}
}

func TestEmojiWideGlyphMarksContinuation(t *testing.T) {
	s := newTestSurface(20, 10)

	p := &particle.Particle{ID: 1, Kind: particle.KindEmoji, Glyph: '🎉'}
	h := s.Acquire(p)
	h.SetTransform(2*constant.CellWidthPx, 0, 0)
	h.SetOpacity(1)

	s.Compose()

	if c := cellAt(s, 2, 0); c.Rune != '🎉' {
		t.Errorf("cell rune = %q, want 🎉", c.Rune)
	}
	if c := cellAt(s, 3, 0); c.Rune != wideContinuation {
		t.Errorf("continuation cell rune = %q, want marker", c.Rune)
	}
}

func TestEmojiCollapsesToDotAtLowOpacity(t *testing.T) {
	s := newTestSurface(20, 10)

	p := &particle.Particle{ID: 1, Kind: particle.KindEmoji, Glyph: '⭐'}
	h := s.Acquire(p)
	h.SetTransform(0, 0, 0)
	h.SetOpacity(0.1)

	s.Compose()
	if c := cellAt(s, 0, 0); c.Rune != '·' {
		t.Errorf("low-opacity emoji rune = %q, want ·", c.Rune)
	}
}

func TestOffSurfaceParticleIsClipped(t *testing.T) {
	s := newTestSurface(20, 10)

	p := &particle.Particle{ID: 1, Kind: particle.KindShape, Shape: particle.ShapeSquare}
	h := s.Acquire(p)
	h.SetOpacity(1)

	// Way past the right edge and above the top; Compose must not panic
	// and must leave the grid blank
	h.SetTransform(1e6, -500, 0)
	s.Compose()

	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			if c := cellAt(s, x, y); c.Rune != ' ' {
				t.Fatalf("cell (%d,%d) = %q, want blank", x, y, c.Rune)
			}
		}
	}
}

func TestResizeClearsGrid(t *testing.T) {
	s := newTestSurface(20, 10)
	s.DrawText(0, 0, "hud", RGB{R: 255, G: 255, B: 255})

	s.Resize(30, 15)
	w, hpx := s.PixelSize()
	if w != 30*constant.CellWidthPx || hpx != 15*constant.CellHeightPx {
		t.Errorf("PixelSize = (%v, %v) after resize", w, hpx)
	}
	if c := cellAt(s, 0, 0); c.Rune != ' ' {
		t.Errorf("cell (0,0) = %q after resize, want blank", c.Rune)
	}
}

func TestDrawTextClipsAtEdge(t *testing.T) {
	s := newTestSurface(5, 2)
	s.DrawText(3, 0, "abcdef", RGB{R: 255, G: 255, B: 255})

	if c := cellAt(s, 3, 0); c.Rune != 'a' {
		t.Errorf("cell (3,0) = %q, want a", c.Rune)
	}
	if c := cellAt(s, 4, 0); c.Rune != 'b' {
		t.Errorf("cell (4,0) = %q, want b", c.Rune)
	}
	// Rest clipped; out-of-range row ignored
	s.DrawText(0, 5, "x", RGB{})
}

func TestColorOfClampsIndex(t *testing.T) {
	if ColorOf(particle.Color(constant.PaletteSize)) != Palette[0] {
		t.Error("out-of-range palette index must clamp to first entry")
	}
	if ColorOf(3) != Palette[3] {
		t.Error("in-range palette index must resolve directly")
	}
}

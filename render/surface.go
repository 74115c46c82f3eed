package render

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/confetti/constant"
	"github.com/lixenwraith/confetti/particle"
	"github.com/lixenwraith/confetti/status"
)

// wideContinuation marks the second cell of a double-width glyph
const wideContinuation = rune(-1)

// Cell is one composed terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
}

// Surface is the display collaborator: it manufactures particle display
// handles, composes their state into a terminal cell grid, and flushes the
// grid to a tcell screen. Handle writes come from the simulation goroutine
// while composition runs on the render goroutine; the surface mutex is the
// only synchronization between them
type Surface struct {
	mu     sync.Mutex
	width  int
	height int
	bg     RGB
	cells  []Cell

	// Attach order = draw order; newest particles paint last
	handles []*cellHandle

	statAttached *atomic.Int64
	statReleased *atomic.Int64
}

func NewSurface(width, height int, bg RGB, reg *status.Registry) *Surface {
	s := &Surface{
		width:        width,
		height:       height,
		bg:           bg,
		cells:        make([]Cell, width*height),
		statAttached: reg.Ints.Get("render.attached"),
		statReleased: reg.Ints.Get("render.released"),
	}
	s.clearLocked()
	return s
}

// PixelSize returns the surface extent in simulation pixel coordinates
func (s *Surface) PixelSize() (w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.width) * constant.CellWidthPx, float64(s.height) * constant.CellHeightPx
}

// Resize adjusts the grid to a new terminal size
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
	s.cells = make([]Cell, width*height)
	s.clearLocked()
}

// Acquire implements particle.Binder: binds a new particle to a cell
// handle carrying its visual invariants (kind, glyph, color, footprint)
func (s *Surface) Acquire(p *particle.Particle) particle.DisplayHandle {
	h := &cellHandle{
		surface: s,
		x:       p.X,
		y:       p.Y,
		opacity: 1,
		kind:    p.Kind,
		glyph:   p.Glyph,
		color:   ColorOf(p.Color),
		wide:    p.Kind == particle.KindShape && p.Shape == particle.ShapeWideRect,
	}

	s.mu.Lock()
	s.handles = append(s.handles, h)
	s.mu.Unlock()

	s.statAttached.Add(1)
	return h
}

// HandleCount returns currently attached handles
func (s *Surface) HandleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// Compose repaints the cell grid from all attached handles
func (s *Surface) Compose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	for _, h := range s.handles {
		s.drawLocked(h)
	}
}

// DrawText writes an overlay string into the composed grid; call after
// Compose and before Flush
func (s *Surface) DrawText(x, y int, text string, fg RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if y < 0 || y >= s.height {
		return
	}
	for _, r := range text {
		if x < 0 || x >= s.width {
			break
		}
		s.cells[y*s.width+x] = Cell{Rune: r, Fg: fg}
		x++
	}
}

// Flush pushes the composed grid to the screen and shows it
func (s *Surface) Flush(screen tcell.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bgStyle := tcell.StyleDefault.Background(s.bg.ToTcell())
	for y := 0; y < s.height; y++ {
		row := y * s.width
		for x := 0; x < s.width; x++ {
			c := s.cells[row+x]
			if c.Rune == wideContinuation {
				continue // Covered by the wide glyph to its left
			}
			screen.SetContent(x, y, c.Rune, nil, bgStyle.Foreground(c.Fg.ToTcell()))
		}
	}
	screen.Show()
}

func (s *Surface) clearLocked() {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' ', Fg: s.bg}
	}
}

// drawLocked paints one handle into the grid. Shapes fade by blending
// toward the background; emoji cannot be tinted, so they collapse to a
// dim dot at low opacity
func (s *Surface) drawLocked(h *cellHandle) {
	cx := int(h.x / constant.CellWidthPx)
	cy := int(h.y / constant.CellHeightPx)
	if cx < 0 || cx >= s.width || cy < 0 || cy >= s.height {
		return
	}
	idx := cy*s.width + cx

	if h.kind == particle.KindEmoji {
		if h.opacity < 0.3 {
			s.cells[idx] = Cell{Rune: '·', Fg: Lerp(s.bg, RGB{R: 200, G: 200, B: 200}, h.opacity)}
			return
		}
		s.cells[idx] = Cell{Rune: h.glyph, Fg: RGB{R: 255, G: 255, B: 255}}
		if runewidth.RuneWidth(h.glyph) == 2 && cx+1 < s.width {
			s.cells[idx+1] = Cell{Rune: wideContinuation}
		}
		return
	}

	s.cells[idx] = Cell{Rune: shapeRune(h), Fg: Lerp(s.bg, h.color, h.opacity)}
}

// shapeRune picks a glyph by sub-shape and spin phase: wide rectangles
// flip between horizontal and vertical bars as they tumble
func shapeRune(h *cellHandle) rune {
	if !h.wide {
		return '■'
	}
	phase := math.Mod(h.rotation, math.Pi)
	if phase < 0 {
		phase += math.Pi
	}
	if phase >= math.Pi/4 && phase < 3*math.Pi/4 {
		return '▮'
	}
	return '▬'
}

// cellHandle is the narrow mutable view of one particle's on-screen
// element. The simulation writes transform and opacity each frame and
// detaches exactly once at retirement; the surface owns the drawing
type cellHandle struct {
	surface *Surface

	x, y     float64
	rotation float64
	opacity  float64

	kind  particle.Kind
	glyph rune
	color RGB
	wide  bool
}

func (h *cellHandle) SetTransform(x, y, rotation float64) {
	h.surface.mu.Lock()
	h.x = x
	h.y = y
	h.rotation = rotation
	h.surface.mu.Unlock()
}

func (h *cellHandle) SetOpacity(opacity float64) {
	h.surface.mu.Lock()
	h.opacity = opacity
	h.surface.mu.Unlock()
}

// Detach removes the handle from the surface; idempotent
func (h *cellHandle) Detach() {
	s := h.surface
	s.mu.Lock()
	for i, attached := range s.handles {
		if attached == h {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			s.mu.Unlock()
			s.statReleased.Add(1)
			return
		}
	}
	s.mu.Unlock()
}

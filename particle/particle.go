package particle

// Kind selects the visual variant of a particle
type Kind uint8

const (
	KindShape Kind = iota
	KindEmoji
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "Shape"
	case KindEmoji:
		return "Emoji"
	default:
		return "Unknown"
	}
}

// Shape is the sub-variant within the shape kind
type Shape uint8

const (
	ShapeWideRect Shape = iota
	ShapeSquare
)

// Color indexes the render palette (constant.PaletteSize entries).
// The simulation never touches RGB values; color resolution belongs to
// the display layer
type Color uint8

// DisplayHandle is the narrow mutation surface of a particle's on-screen
// element: direct writes, no declarative re-render in between. The display
// layer owns the element lifecycle; the simulation writes state each frame
// and detaches exactly once on retirement
type DisplayHandle interface {
	SetTransform(x, y, rotation float64)
	SetOpacity(opacity float64)
	Detach()
}

// Binder manufactures display handles for newly spawned particles.
// Acquire may return nil when the display layer cannot attach an element;
// the particle then runs its full physics lifetime without visual output
type Binder interface {
	Acquire(p *Particle) DisplayHandle
}

// Particle is one simulated confetti unit
type Particle struct {
	ID uint64

	// Position in surface pixel coordinates
	X, Y float64
	// Velocity in pixels per frame
	VelX, VelY float64

	Width, Height float64

	Rotation      float64 // radians
	RotationSpeed float64 // radians per frame

	Kind  Kind
	Shape Shape // Meaningful for KindShape only
	Color Color // Meaningful for KindShape only
	Glyph rune  // Meaningful for KindEmoji only

	// Age in frames since creation; live while Age < Lifespan
	Age      int
	Lifespan int

	// Handle is a non-owning back-reference to the on-screen element;
	// nil when display binding failed
	Handle DisplayHandle
}

// Alive reports whether the particle is within its lifespan
func (p *Particle) Alive() bool {
	return p.Age < p.Lifespan
}

// Opacity returns the linear fade value for the current age, in [0, 1]
func (p *Particle) Opacity() float64 {
	if p.Lifespan <= 0 {
		return 0
	}
	o := 1 - float64(p.Age)/float64(p.Lifespan)
	if o < 0 {
		return 0
	}
	return o
}

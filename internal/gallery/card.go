package gallery

import (
	"fmt"
	"math"
)

const (
	// TiltDivisor converts pixel offset from the card centre into degrees.
	TiltDivisor = 20.0
	// MaxTiltDegrees bounds each rotation axis.
	MaxTiltDegrees = 15.0

	perspectivePx = 1000
	hoverScale    = 1.05
)

// Pointer is a cursor position relative to the card's top-left corner.
type Pointer struct {
	X, Y float64
}

// Bounds is the card size in pixels.
type Bounds struct {
	Width, Height float64
}

// Rotation is the visual tilt of a card in degrees.
type Rotation struct {
	X, Y  float64
	Scale float64
}

// Neutral is the resting card transform.
var Neutral = Rotation{Scale: 1}

// Tilt maps a pointer position to a rotation pair. Points outside the card are
// clamped to its edge, so the result is continuous and bounded.
func Tilt(p Pointer, b Bounds) Rotation {
	if b.Width <= 0 || b.Height <= 0 {
		return Neutral
	}
	x := clamp(p.X, 0, b.Width)
	y := clamp(p.Y, 0, b.Height)
	return Rotation{
		X:     clamp((y-b.Height/2)/TiltDivisor, -MaxTiltDegrees, MaxTiltDegrees),
		Y:     clamp((b.Width/2-x)/TiltDivisor, -MaxTiltDegrees, MaxTiltDegrees),
		Scale: hoverScale,
	}
}

// Transform renders the rotation as a CSS transform value.
func (r Rotation) Transform() string {
	return fmt.Sprintf("perspective(%dpx) rotateX(%gdeg) rotateY(%gdeg) scale3d(%g, %g, %g)",
		perspectivePx, round2(r.X), round2(r.Y), r.Scale, r.Scale, r.Scale)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// Hover is the card hover state.
type Hover int

const (
	Idle Hover = iota
	Hovered
)

func (h Hover) String() string {
	if h == Hovered {
		return "hovered"
	}
	return "idle"
}

// CardState tracks hover and tilt for one card between pointer events.
type CardState struct {
	Hover    Hover
	Rotation Rotation
}

// NewCardState returns an idle, untilted card.
func NewCardState() CardState {
	return CardState{Hover: Idle, Rotation: Neutral}
}

// Enter marks the card hovered. Secondary content (description, link) is revealed.
func (s *CardState) Enter() {
	s.Hover = Hovered
}

// Move tilts the card towards the pointer.
func (s *CardState) Move(p Pointer, b Bounds) {
	s.Hover = Hovered
	s.Rotation = Tilt(p, b)
}

// Leave resets tilt and hides secondary content.
func (s *CardState) Leave() {
	s.Hover = Idle
	s.Rotation = Neutral
}

// RevealDetails reports whether description and link are visible.
func (s CardState) RevealDetails() bool {
	return s.Hover == Hovered
}

// ActionKind is what a click on a card does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionOpenModal
	ActionNavigate
)

func (k ActionKind) String() string {
	switch k {
	case ActionOpenModal:
		return "open-modal"
	case ActionNavigate:
		return "navigate"
	default:
		return "none"
	}
}

// ClickAction is the resolved card click.
type ClickAction struct {
	Kind ActionKind
	// URL is set for ActionNavigate and opens in a new browsing context.
	URL string
}

// ClickAction resolves a card click: the detail view wins over the external link.
func (p Project) ClickAction() ClickAction {
	switch {
	case p.DetailView:
		return ClickAction{Kind: ActionOpenModal}
	case p.Link != "":
		return ClickAction{Kind: ActionNavigate, URL: p.Link}
	default:
		return ClickAction{Kind: ActionNone}
	}
}

// VisitLink returns the target of the "visit site" control, shown whenever the
// project has a link regardless of the click action.
func (p Project) VisitLink() (string, bool) {
	return p.Link, p.Link != ""
}

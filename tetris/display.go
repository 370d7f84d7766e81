package tetris

import "image/color"

// Animation is a per-cell directive applied by the next Redraw.
type Animation int

const (
	AnimationNone Animation = iota
	AnimationPlay
	AnimationPlayLoop
	AnimationStop
)

func (a Animation) String() string {
	switch a {
	case AnimationNone:
		return "none"
	case AnimationPlay:
		return "play"
	case AnimationPlayLoop:
		return "play-loop"
	case AnimationStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Display is the staging buffer the game paints into. Nothing written
// becomes visible until Redraw.
type Display interface {
	SetColor(p Point, c color.RGBA)
	SetBorderColor(p Point, c color.RGBA)
	SetAnimation(p Point, a Animation)
	Color(p Point) color.RGBA
	IsAnimating(p Point) bool
	Redraw()
	Clear()
}

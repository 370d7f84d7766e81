package display

import (
	"image/color"
	"math"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// PulseScale is the peak scale of a sprite pulse.
const PulseScale = 1.5

// Sprite is the drawable state of one cell: its fill, its border and the
// scale pulse played on line clears.
type Sprite struct {
	Fill   color.RGBA
	Border color.RGBA

	duration time.Duration
	ratio    float64
	scale    float64
	loop     bool
	playing  bool
}

// NewSprite returns a clear sprite at rest.
func NewSprite() Sprite {
	return Sprite{
		Fill:   tetris.Clear,
		Border: tetris.DefaultBorderColor,
		scale:  1,
	}
}

// Play restarts the pulse. A looping pulse runs until Stop.
func (s *Sprite) Play(duration time.Duration, loop bool) {
	s.Stop()
	s.duration = duration
	s.loop = loop
	s.playing = true
}

// Stop ends the pulse and restores the resting scale.
func (s *Sprite) Stop() {
	s.playing = false
	s.loop = false
	s.ratio = 0
	s.scale = 1
}

func (s *Sprite) Playing() bool  { return s.playing }
func (s *Sprite) Looping() bool  { return s.playing && s.loop }
func (s *Sprite) Scale() float64 { return s.scale }

// Advance moves the pulse forward by dt and reports whether it is still playing.
func (s *Sprite) Advance(dt time.Duration) bool {
	if !s.playing {
		return false
	}

	if s.duration <= 0 {
		s.ratio = 1
	} else {
		s.ratio = min(1, s.ratio+float64(dt)/float64(s.duration))
	}
	s.scale = lerp(1, PulseScale, math.Sin(s.ratio*math.Pi))

	if s.ratio < 1 {
		return true
	}
	if s.loop {
		s.ratio = 0
		s.scale = 1
		return true
	}
	s.Stop()
	return false
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

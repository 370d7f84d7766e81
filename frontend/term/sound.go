package term

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/blockfall/tetris"
)

const sampleRate = beep.SampleRate(44100)

// Chime notes: one per cleared line count, rising.
var clearNotes = []float64{523.25, 659.25, 783.99, 1046.50}

const (
	gameOverNote   = 196.0
	chimeLength    = 250 * time.Millisecond
	gameOverLength = 600 * time.Millisecond
)

// Sounds plays short chimes for line clears and game over.
type Sounds struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSounds() *Sounds {
	return &Sounds{mixer: &beep.Mixer{}}
}

// Init opens the speaker. Without it Handle is a no-op.
func (s *Sounds) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Sounds) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Handle is an event handler for the driver.
func (s *Sounds) Handle(e tetris.Event) {
	freq, length, ok := noteFor(e)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}

	streamer, err := Chime(sampleRate, freq, length)
	if err != nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

func noteFor(e tetris.Event) (float64, time.Duration, bool) {
	switch e.Kind {
	case tetris.EventLinesCleared:
		i := min(max(e.Lines, 1), len(clearNotes)) - 1
		return clearNotes[i], chimeLength, true
	case tetris.EventGameOver:
		return gameOverNote, gameOverLength, true
	}
	return 0, 0, false
}

// Chime is a sine tone of the given length with a linear fade out.
func Chime(sr beep.SampleRate, freq float64, length time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	n := sr.N(length)
	return &fade{Streamer: beep.Take(n, tone), total: n, gain: 0.3}, nil
}

type fade struct {
	beep.Streamer
	total int
	pos   int
	gain  float64
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.Streamer.Stream(samples)
	for i := range samples[:n] {
		amp := f.gain * math.Max(0, 1-float64(f.pos)/float64(f.total))
		samples[i][0] *= amp
		samples[i][1] *= amp
		f.pos++
	}
	return n, ok
}

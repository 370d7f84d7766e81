package term

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/tetris"
)

func TestChimeFadesOut(t *testing.T) {
	sr := beep.SampleRate(1000)
	s, err := Chime(sr, 50, 100*time.Millisecond)
	require.NoError(t, err)

	samples := make([][2]float64, 200)
	n, _ := s.Stream(samples)
	assert.Equal(t, 100, n)

	var early, late float64
	for i := range samples[:50] {
		early = max(early, samples[i][0])
	}
	for i := range samples[50:n] {
		late = max(late, samples[50+i][0])
	}
	assert.LessOrEqual(t, early, 0.3)
	assert.Greater(t, early, late)

	n, ok := s.Stream(samples)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func TestNoteFor(t *testing.T) {
	tests := []struct {
		event tetris.Event
		freq  float64
		ok    bool
	}{
		{tetris.Event{Kind: tetris.EventLinesCleared, Lines: 1}, clearNotes[0], true},
		{tetris.Event{Kind: tetris.EventLinesCleared, Lines: 4}, clearNotes[3], true},
		{tetris.Event{Kind: tetris.EventLinesCleared, Lines: 9}, clearNotes[3], true},
		{tetris.Event{Kind: tetris.EventGameOver}, gameOverNote, true},
		{tetris.Event{Kind: tetris.EventLocked}, 0, false},
	}

	for _, tt := range tests {
		freq, _, ok := noteFor(tt.event)
		assert.Equal(t, tt.ok, ok, tt.event.Kind.String())
		assert.Equal(t, tt.freq, freq, tt.event.Kind.String())
	}
}

func TestHandleWithoutSpeakerIsSilent(t *testing.T) {
	s := NewSounds()

	assert.NotPanics(t, func() {
		s.Handle(tetris.Event{Kind: tetris.EventLinesCleared, Lines: 2})
		s.Close()
	})
}

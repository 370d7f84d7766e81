// Package tetris is the falling-block simulation: pieces, the settled board and
// the state machine that moves a piece from spawn to lock and clears full rows.
// It paints into a Display and never reads a clock; time arrives through
// OnTick and Advance.
package tetris

package rules

import (
	"iter"
	"slices"
)

// CreateTranscript yields the notation of every history record, oldest first.
// Records that cannot be rendered are left out, so the transcript may be
// shorter than the history. The sequence is computed when iteration starts
// and can be ranged over any number of times.
func CreateTranscript(state GameState) iter.Seq[string] {
	return func(yield func(string) bool) {
		notations := make([]string, 0, len(state.History))
		for s := state; len(s.History) > 0; {
			if text, ok := ToAlgebraic(s.History[0], s); ok {
				notations = append(notations, text)
			}
			prev := RevertLast(s)
			if len(prev.History) == len(s.History) {
				// The head could not be reverted; render the rest against
				// the same board rather than stopping the transcript.
				prev = GameState{Board: s.Board, History: s.History[1:], ToMove: s.ToMove.Invert(), CapturedPieces: s.CapturedPieces}
			}
			s = prev
		}
		slices.Reverse(notations)
		for _, text := range notations {
			if !yield(text) {
				return
			}
		}
	}
}

// Transcript collects CreateTranscript into a slice.
func Transcript(state GameState) []string {
	return slices.Collect(CreateTranscript(state))
}

// Package replay computes derived statistics from a score's note-by-note
// replay: alternate-judge rescoring under the Wife formulas, sliding-window
// fastest note rates, per-hand balance, and combo-length statistics.
//
// Every operation is a pure function over an immutable Replay. Missing or
// degenerate input (no replay, zero countable notes, unsupported keymode)
// yields an "unavailable" result, never an error; callers omit the affected
// card section and move on.
package replay

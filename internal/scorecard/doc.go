// Package scorecard renders identified scores and their replay analytics as
// text blocks ready for posting.
//
// A card has a fixed-width body aligning the score summary against the
// judgement tally, plus optional sections recomputing the score under both
// Wife formulas, tap speed records, combo records, and fun facts. Sections
// whose inputs are missing are simply omitted.
package scorecard

// Package identify matches noisy, partially missing screen readings of a
// game result screen against candidate score records.
//
// The matching is best effort by construction: multiple OCR theme passes each
// read a different subset of fields, every field can be absent, and equality
// on the remaining fields only accumulates evidence. BestMatch therefore
// returns an optional result above an evidence threshold, never a proof of
// uniqueness.
package identify

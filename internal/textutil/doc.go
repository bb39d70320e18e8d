// Package textutil provides small text helpers shared by the matcher and the
// OCR field parsers: case folding for username comparison and whitespace
// normalization for ragged OCR output.
package textutil

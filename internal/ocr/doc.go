// Package ocr recognizes score data on evaluation screenshots.
//
// A Recognizer crops theme-specific screen regions out of an uploaded image
// and runs each crop through a text recognition engine, two passes per
// screenshot: a word pass for names and a digit pass for numbers. Individual
// region failures are tolerated; a region the engine cannot read simply
// leaves its field absent on the resulting reading. Only engine availability
// is a hard error.
//
// The production engine shells out to the tesseract binary.
package ocr

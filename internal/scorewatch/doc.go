// Package scorewatch wires screenshot recognition, score identification, and
// reveal confirmation into one pipeline.
//
// A posted screenshot flows through OCR readings, is matched against the
// author's recent scores, and on a confident match becomes a pending reveal
// candidate. When enough people (the author included) react to the message,
// the identified score is fetched in full, its replay analyzed, and a score
// card produced. Every screenshot attempt carries a correlation ID so its
// log lines can be traced end to end.
package scorewatch

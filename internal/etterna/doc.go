// Package etterna holds the timing and scoring model shared by the matcher
// and the replay analyzer: the nine judge window tables, the Wife2/Wife3
// scoring curves, and the small value types (hits, rates, scorekeys,
// difficulties) that the rest of the system passes around.
//
// Everything in this package is immutable data and pure functions; it has no
// dependencies on the other internal packages.
package etterna

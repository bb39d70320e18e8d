// Package confirm gates score reveals behind a small social confirmation
// protocol: an identified score stays pending on its source message until the
// message author plus at least one other distinct reactor have reacted, and
// each candidate reveals at most once no matter how often or in what order
// reaction events arrive.
//
// The tracker is the only mutable shared state in the engine. It is bounded
// by both a capacity cap (oldest candidates evicted first) and a TTL, so a
// busy channel cannot grow it without limit.
package confirm

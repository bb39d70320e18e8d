// Package eo provides the EtternaOnline API client.
//
// It fetches user details, recent scores, and full score payloads (replay
// included) and reshapes the wire data into the domain types the identifier
// and the replay analyzer consume. The Fetcher interface is what the rest of
// the bot depends on so tests can substitute fakes.
package eo

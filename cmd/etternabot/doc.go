// Package main hosts the etternabot CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the bot's internals on the terminal:
// screenshot recognition, score identification against a player's recent
// scores, replay analysis of recorded scores, user registration maintenance,
// and configuration scaffolding. It centralizes configuration resolution and
// logger setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

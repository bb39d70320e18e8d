// Package users persists chat account registrations and reveal history in
// SQLite.
//
// A registration maps a chat user to their EtternaOnline username so the bot
// knows whose recent scores to search when that user posts a screenshot. The
// reveal log records which identified scores were publicly revealed and by
// whose confirmation.
//
// The store takes a file lock next to the database so two bot processes
// cannot share one data directory.
package users

// Package config loads, normalizes, and validates etternabot configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the bot and CLI need, from EtternaOnline API settings to OCR theme layouts
// and reveal confirmation limits.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

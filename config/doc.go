// Package config loads the sigwave YAML configuration document.
//
// The document is parsed with [github.com/goccy/go-yaml] into an
// order-preserving [Node] tree that retains source positions, so that
// structural and constraint errors raised during entity parsing can point
// back to the offending line of the configuration file.
//
// A document has four top-level blocks:
//
//	settings: # allowed_radices, wave_name, starting_id, line_limit
//	defaults: # divider_name, collapse
//	env:      # top-level substitution variables
//	groups:   # group specifications (required)
//
// Only the shapes of settings, defaults, and env are validated here; group
// specifications are handed to the wave package as raw nodes, preserving
// declaration order of every mapping.
package config

// Package config loads pacdec's settings.
//
// Values are layered with koanf, later layers winning:
//
//  1. the defaults embedded from embedded/defaults.toml
//  2. the user's config.toml (or the file given with --config-file)
//  3. PACDEC_* environment variables
//
// The result is decoded into a Config that is handed explicitly to every
// component; nothing reads settings from globals.
package config

// Package paths provides centralized path handling for pacdec.
//
// It follows the XDG Base Directory specification:
//
//   - settings: $XDG_CONFIG_HOME/pacdec/config.toml
//   - declarations: $XDG_CONFIG_HOME/pacdec/packages.kdl
//   - log: $XDG_STATE_HOME/pacdec/pacdec.log
//
// # Environment Variables
//
//   - PACDEC_CONFIG_DIR: override the config directory
//   - PACDEC_STATE_DIR: override the state directory
package paths

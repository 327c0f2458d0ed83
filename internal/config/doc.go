// Package config loads the Aura client configuration.
//
// # Overview
//
// Aura reads a small TOML file describing how to reach the backend and where
// to keep its local state. The file lives at ~/.config/aura/config.toml and
// every field is optional; a missing file yields a fully usable default
// configuration.
//
// # Fields
//
//	api_bind   = "127.0.0.1:7319"            # backend host:port or full URL
//	cache_dir  = "~/.local/share/aura/cache" # preview/asset cache location
//	log_dir    = "~/.local/share/aura/logs"  # aura's own log files
//	log_level  = "info"                      # debug, info, warn, error
//	log_format = "console"                   # console or json
//
// # Behavior
//
//   - Tilde paths are expanded against the user's home directory and made
//     absolute.
//   - Whitespace-only values fall back to defaults.
//   - A missing file is not an error; an unreadable or syntactically invalid
//     file is.
//
// # Error Handling
//
// Errors are wrapped with the failing operation ("open config", "parse
// config") so callers can surface them directly.
package config

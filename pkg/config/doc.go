// Package config holds the editor configuration model. Raw configuration
// trees come from YAML, JSON or JSONC files (or any map supplied by the host
// application), are merged with per-call overrides and then decoded into the
// typed Config. The typed model keeps unknown settings in Extra maps so any
// editor option passes through untouched, while the settings that need URL
// rewriting or special encoding get dedicated fields.
package config

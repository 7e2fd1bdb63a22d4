// Package config loads and validates the application configuration. Values
// come from built-in defaults, an optional config.yaml, and NAV_-prefixed
// environment variables, in increasing order of precedence.
package config

// Package config resolves the application configuration.
//
// Resolution order (highest priority first):
//  1. CLI flags explicitly set on the command line
//  2. Environment variables (MEOWGIC_FETCH_URL, MEOWGIC_UI_THEME, ...)
//  3. TOML file (--config, ./meowgic.toml or $HOME/.meowgic.toml)
//  4. Built-in defaults
package config

// This file contains the environment and flag layers of the configuration.

package config

import (
	"flag"
	"strings"

	"github.com/knadh/koanf/providers/env"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MEOWGIC_"

// envKey maps MEOWGIC_FETCH_HOLD_LOADING to fetch.hold_loading: the first
// underscore after the prefix separates section from key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

func envProvider() *env.Env {
	return env.Provider(EnvPrefix, ".", envKey)
}

// flagBinding declares a single CLI flag and the configuration key it sets.
type flagBinding struct {
	name   string
	key    string
	usage  string
	define func(fs *flag.FlagSet, name, usage string)
}

func boolFlag(fs *flag.FlagSet, name, usage string)   { fs.Bool(name, false, usage) }
func stringFlag(fs *flag.FlagSet, name, usage string) { fs.String(name, "", usage) }
func durationFlag(fs *flag.FlagSet, name, usage string) {
	fs.Duration(name, 0, usage)
}
func floatFlag(fs *flag.FlagSet, name, usage string) { fs.Float64(name, 0, usage) }

// flagBindings is the declarative table of all CLI flags. Flag defaults are
// placeholders; only flags set explicitly reach the configuration.
var flagBindings = []flagBinding{
	{"url", "fetch.url", "Cat fact endpoint.", stringFlag},
	{"timeout", "fetch.timeout", "Per-request timeout (0 = none).", durationFlag},
	{"rps", "fetch.rps", "Maximum requests per second (0 = unlimited).", floatFlag},
	{"hold-loading", "fetch.hold_loading", "Keep the loading state until the fact starts typing.", boolFlag},
	{"no-boot", "boot.skip", "Skip the boot animation.", boolFlag},
	{"boot-step", "boot.step", "Delay between boot lines.", durationFlag},
	{"boot-hold", "boot.hold", "Hold after the last boot line.", durationFlag},
	{"type-min", "reveal.min", "Minimum per-character typing delay.", durationFlag},
	{"type-max", "reveal.max", "Maximum per-character typing delay.", durationFlag},
	{"theme", "ui.theme", "Initial theme: dark or light.", stringFlag},
	{"no-color", "ui.no_color", "Disable colours.", boolFlag},
	{"plain", "ui.plain", "Print one fact without the interactive terminal.", boolFlag},
	{"log-file", "log.file", "Write JSON logs to this file.", stringFlag},
	{"log-level", "log.level", "Log level: debug, info, warn, error.", stringFlag},
	{"metrics-addr", "metrics.addr", "Serve Prometheus metrics on this address.", stringFlag},
}

func registerFlags(fs *flag.FlagSet) {
	for _, b := range flagBindings {
		b.define(fs, b.name, b.usage)
	}
}

// flagOverrides collects the values of flags explicitly set on the command
// line, keyed by configuration key.
func flagOverrides(fs *flag.FlagSet) map[string]any {
	keys := make(map[string]string, len(flagBindings))
	for _, b := range flagBindings {
		keys[b.name] = b.key
	}
	out := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		if g, ok := f.Value.(flag.Getter); ok {
			out[key] = g.Get()
		}
	})
	return out
}

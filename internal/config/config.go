package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/agbru/meowgic/internal/catfact"
	apperrors "github.com/agbru/meowgic/internal/errors"
	"github.com/agbru/meowgic/internal/sequencer"
	"github.com/agbru/meowgic/internal/ui"
)

// FetchConfig configures the cat fact client.
type FetchConfig struct {
	URL string `koanf:"url"`
	// Timeout bounds one request; zero keeps the platform default.
	Timeout time.Duration `koanf:"timeout"`
	// RPS paces requests; zero disables pacing.
	RPS         float64 `koanf:"rps"`
	HoldLoading bool    `koanf:"hold_loading"`
}

// BootConfig configures the boot animation.
type BootConfig struct {
	Skip bool          `koanf:"skip"`
	Step time.Duration `koanf:"step"`
	Hold time.Duration `koanf:"hold"`
}

// RevealConfig bounds the per-rune typewriter delay.
type RevealConfig struct {
	Min time.Duration `koanf:"min"`
	Max time.Duration `koanf:"max"`
}

// UIConfig selects the presentation.
type UIConfig struct {
	Theme   string `koanf:"theme"`
	NoColor bool   `koanf:"no_color"`
	Plain   bool   `koanf:"plain"`
}

// LogConfig directs diagnostic logs.
type LogConfig struct {
	File  string `koanf:"file"`
	Level string `koanf:"level"`
}

// MetricsConfig enables the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// AppConfig aggregates the application configuration.
type AppConfig struct {
	Fetch   FetchConfig   `koanf:"fetch"`
	Boot    BootConfig    `koanf:"boot"`
	Reveal  RevealConfig  `koanf:"reveal"`
	UI      UIConfig      `koanf:"ui"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`

	// ConfigFile is the TOML file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// defaults is the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"fetch.url":          catfact.DefaultURL,
		"fetch.timeout":      time.Duration(0),
		"fetch.rps":          0.0,
		"fetch.hold_loading": false,
		"boot.skip":          false,
		"boot.step":          sequencer.DefaultBootStep,
		"boot.hold":          sequencer.DefaultBootHold,
		"reveal.min":         sequencer.DefaultTypeDelayMin,
		"reveal.max":         sequencer.DefaultTypeDelayMax,
		"ui.theme":           ui.Dark.String(),
		"ui.no_color":        false,
		"ui.plain":           false,
		"log.file":           "",
		"log.level":          "info",
		"metrics.addr":       "",
	}
}

// defaultConfigPaths are probed in order when no --config is given.
var defaultConfigPaths = []string{"./meowgic.toml", "$HOME/.meowgic.toml"}

// ParseConfig parses args, then layers defaults, the TOML file, environment
// variables and explicitly set flags. It returns flag.ErrHelp for -h.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	configPath := fs.String("config", "", "Path to a TOML configuration file.")
	registerFlags(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return AppConfig{}, apperrors.WrapError(err, "loading defaults")
	}

	loaded, err := loadFile(k, *configPath)
	if err != nil {
		return AppConfig{}, err
	}

	if err := k.Load(envProvider(), nil); err != nil {
		return AppConfig{}, apperrors.WrapError(err, "loading environment")
	}
	if err := k.Load(confmap.Provider(flagOverrides(fs), "."), nil); err != nil {
		return AppConfig{}, apperrors.WrapError(err, "loading flags")
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, apperrors.NewConfigError("invalid configuration: %v", err)
	}
	cfg.ConfigFile = loaded

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// loadFile loads the explicit path, which must exist, or the first default
// path that does.
func loadFile(k *koanf.Koanf, path string) (string, error) {
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return "", apperrors.NewConfigError("loading config %s: %v", path, err)
		}
		return path, nil
	}
	for _, p := range defaultConfigPaths {
		p = os.ExpandEnv(p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
			return "", apperrors.NewConfigError("loading config %s: %v", p, err)
		}
		return p, nil
	}
	return "", nil
}

// Validate checks cross-field constraints.
func (c AppConfig) Validate() error {
	u, err := url.Parse(c.Fetch.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.NewConfigError("fetch.url must be an absolute http(s) URL, got %q", c.Fetch.URL)
	}
	if c.Fetch.Timeout < 0 {
		return apperrors.NewConfigError("fetch.timeout must not be negative")
	}
	if c.Fetch.RPS < 0 {
		return apperrors.NewConfigError("fetch.rps must not be negative")
	}
	if c.Boot.Step <= 0 || c.Boot.Hold <= 0 {
		return apperrors.NewConfigError("boot.step and boot.hold must be positive")
	}
	if c.Reveal.Min <= 0 || c.Reveal.Max < c.Reveal.Min {
		return apperrors.NewConfigError("reveal delays must satisfy 0 < min <= max, got [%s, %s]", c.Reveal.Min, c.Reveal.Max)
	}
	if _, err := ui.ParseMode(c.UI.Theme); err != nil {
		return apperrors.NewConfigError("ui.theme: %v", err)
	}
	return nil
}

// ThemeMode returns the configured initial palette.
func (c AppConfig) ThemeMode() ui.Mode {
	m, _ := ui.ParseMode(c.UI.Theme)
	return m
}

// SequencerOptions maps the configuration onto the timeline options.
func (c AppConfig) SequencerOptions() sequencer.Options {
	return sequencer.Options{
		BootStep:    c.Boot.Step,
		BootHold:    c.Boot.Hold,
		SkipBoot:    c.Boot.Skip,
		TypeDelay:   sequencer.UniformDelay(c.Reveal.Min, c.Reveal.Max),
		HoldLoading: c.Fetch.HoldLoading,
		Theme:       c.ThemeMode(),
	}
}

// IsHelp reports whether err came from -h / --help.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

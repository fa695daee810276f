package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/meowgic/internal/catfact"
	apperrors "github.com/agbru/meowgic/internal/errors"
	"github.com/agbru/meowgic/internal/sequencer"
	"github.com/agbru/meowgic/internal/ui"
)

// isolate keeps the host's files and environment out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, kv := range os.Environ() {
		if k, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := ParseConfig("meowgic", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Fetch.URL != catfact.DefaultURL {
		t.Errorf("URL = %q, want %q", cfg.Fetch.URL, catfact.DefaultURL)
	}
	if cfg.Boot.Step != sequencer.DefaultBootStep || cfg.Boot.Hold != sequencer.DefaultBootHold {
		t.Errorf("boot = %+v", cfg.Boot)
	}
	if cfg.Reveal.Min != 40*time.Millisecond || cfg.Reveal.Max != 60*time.Millisecond {
		t.Errorf("reveal = %+v", cfg.Reveal)
	}
	if cfg.ThemeMode() != ui.Dark {
		t.Errorf("theme = %v, want dark", cfg.ThemeMode())
	}
	if cfg.Fetch.HoldLoading || cfg.Boot.Skip || cfg.UI.Plain {
		t.Errorf("boolean defaults should be false: %+v", cfg)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want none", cfg.ConfigFile)
	}
}

func TestParseConfig_Precedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
[fetch]
url = "http://file.example/fact"
timeout = "3s"

[ui]
theme = "light"

[boot]
step = "100ms"
`)

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := ParseConfig("meowgic", []string{"--config", path}, io.Discard)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Fetch.URL != "http://file.example/fact" {
			t.Errorf("URL = %q", cfg.Fetch.URL)
		}
		if cfg.Fetch.Timeout != 3*time.Second {
			t.Errorf("Timeout = %v", cfg.Fetch.Timeout)
		}
		if cfg.Boot.Step != 100*time.Millisecond {
			t.Errorf("Step = %v", cfg.Boot.Step)
		}
		if cfg.Boot.Hold != sequencer.DefaultBootHold {
			t.Errorf("Hold = %v, want default", cfg.Boot.Hold)
		}
		if cfg.ConfigFile != path {
			t.Errorf("ConfigFile = %q", cfg.ConfigFile)
		}
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("MEOWGIC_FETCH_URL", "https://env.example/fact")
		t.Setenv("MEOWGIC_FETCH_HOLD_LOADING", "true")
		t.Setenv("MEOWGIC_UI_THEME", "dark")
		cfg, err := ParseConfig("meowgic", []string{"--config", path}, io.Discard)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Fetch.URL != "https://env.example/fact" {
			t.Errorf("URL = %q", cfg.Fetch.URL)
		}
		if !cfg.Fetch.HoldLoading {
			t.Error("MEOWGIC_FETCH_HOLD_LOADING not applied")
		}
		if cfg.ThemeMode() != ui.Dark {
			t.Errorf("theme = %v", cfg.ThemeMode())
		}
	})

	t.Run("explicit flags over env", func(t *testing.T) {
		t.Setenv("MEOWGIC_FETCH_URL", "https://env.example/fact")
		cfg, err := ParseConfig("meowgic", []string{
			"--config", path,
			"--url", "https://flag.example/fact",
			"--no-boot",
			"--rps", "2.5",
		}, io.Discard)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Fetch.URL != "https://flag.example/fact" {
			t.Errorf("URL = %q", cfg.Fetch.URL)
		}
		if !cfg.Boot.Skip {
			t.Error("--no-boot not applied")
		}
		if cfg.Fetch.RPS != 2.5 {
			t.Errorf("RPS = %v", cfg.Fetch.RPS)
		}
		// Unset flags must not clobber the file layer.
		if cfg.Fetch.Timeout != 3*time.Second {
			t.Errorf("Timeout = %v, want file value", cfg.Fetch.Timeout)
		}
	})
}

func TestParseConfig_DefaultPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "meowgic.toml"), "[ui]\nplain = true\n")

	cfg, err := ParseConfig("meowgic", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.UI.Plain {
		t.Error("./meowgic.toml was not loaded")
	}
}

func TestParseConfig_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		args   []string
		config bool
	}{
		{"bad url", []string{"--url", "catfact.ninja/fact"}, true},
		{"ftp url", []string{"--url", "ftp://catfact.ninja/fact"}, true},
		{"bad theme", []string{"--theme", "sepia"}, true},
		{"inverted reveal", []string{"--type-min", "80ms", "--type-max", "40ms"}, true},
		{"zero boot step", []string{"--boot-step", "0s"}, true},
		{"negative timeout", []string{"--timeout", "-1s"}, true},
		{"missing file", []string{"--config", "nope.toml"}, true},
		{"positional", []string{"extra"}, true},
		{"unknown flag", []string{"--bogus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("meowgic", tt.args, io.Discard)
			if err == nil {
				t.Fatal("expected an error")
			}
			var ce apperrors.ConfigError
			if got := errors.As(err, &ce); got != tt.config {
				t.Errorf("ConfigError = %v, want %v (err: %v)", got, tt.config, err)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	isolate(t)
	var sb strings.Builder
	_, err := ParseConfig("meowgic", []string{"-h"}, &sb)
	if !IsHelp(err) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(sb.String(), "-no-boot") {
		t.Errorf("usage does not list flags:\n%s", sb.String())
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"MEOWGIC_FETCH_URL":          "fetch.url",
		"MEOWGIC_FETCH_HOLD_LOADING": "fetch.hold_loading",
		"MEOWGIC_UI_NO_COLOR":        "ui.no_color",
		"MEOWGIC_METRICS_ADDR":       "metrics.addr",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSequencerOptions(t *testing.T) {
	cfg := AppConfig{
		Boot:   BootConfig{Skip: true, Step: time.Second, Hold: 2 * time.Second},
		Reveal: RevealConfig{Min: 10 * time.Millisecond, Max: 10 * time.Millisecond},
		Fetch:  FetchConfig{HoldLoading: true},
		UI:     UIConfig{Theme: "light"},
	}
	opts := cfg.SequencerOptions()
	if !opts.SkipBoot || opts.BootStep != time.Second || opts.BootHold != 2*time.Second {
		t.Errorf("boot options = %+v", opts)
	}
	if !opts.HoldLoading || opts.Theme != ui.Light {
		t.Errorf("options = %+v", opts)
	}
	if d := opts.TypeDelay(); d != 10*time.Millisecond {
		t.Errorf("TypeDelay() = %v, want 10ms", d)
	}
}

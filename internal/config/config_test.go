package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "web2pdf.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
browser:
  bin: /usr/bin/chromium
  noSandbox: true
  pageLoadTimeout: 45s
print:
  landscape: true
  background: false
  marginTop: 0.5
  paperWidth: 8.5
  paperHeight: 11
  scale: 1.25
  pageRanges: "1-3"
cookies:
  jar: /tmp/cookies.txt
output:
  validate: true
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Browser.Bin != "/usr/bin/chromium" || !cfg.Browser.NoSandbox {
			t.Errorf("Browser = %+v", cfg.Browser)
		}
		if got := cfg.PageLoadTimeoutDuration(); got != 45*time.Second {
			t.Errorf("PageLoadTimeoutDuration() = %v, want 45s", got)
		}
		if cfg.Print.Landscape == nil || !*cfg.Print.Landscape {
			t.Error("Print.Landscape not loaded")
		}
		if cfg.Print.Background == nil || *cfg.Print.Background {
			t.Error("Print.Background should be explicit false")
		}
		if cfg.Print.MarginTop == nil || *cfg.Print.MarginTop != 0.5 {
			t.Errorf("Print.MarginTop = %v", cfg.Print.MarginTop)
		}
		if cfg.Print.Scale == nil || *cfg.Print.Scale != 1.25 {
			t.Errorf("Print.Scale = %v", cfg.Print.Scale)
		}
		if cfg.Cookies.Jar != "/tmp/cookies.txt" {
			t.Errorf("Cookies.Jar = %q", cfg.Cookies.Jar)
		}
		if !cfg.Output.Validate {
			t.Error("Output.Validate not loaded")
		}
	})

	t.Run("unset fields stay nil", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig(writeConfig(t, "browser:\n  bin: chromium\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Print.Landscape != nil || cfg.Print.Scale != nil || cfg.Print.MarginTop != nil {
			t.Errorf("unset print fields not nil: %+v", cfg.Print)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "browser:\n  binary: chromium\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed YAML rejected", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "browser: [unclosed\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("missing name lists tried paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("definitely-not-a-real-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), ".yaml") {
			t.Errorf("error %q does not list tried paths", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("invalid values rejected at load", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "print:\n  scale: 5.0\n"))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid timeout", Config{Browser: BrowserConfig{PageLoadTimeout: "2m"}}, false},
		{"bad timeout", Config{Browser: BrowserConfig{PageLoadTimeout: "soon"}}, true},
		{"scale too low", Config{Print: PrintConfig{Scale: f(0.05)}}, true},
		{"scale too high", Config{Print: PrintConfig{Scale: f(2.1)}}, true},
		{"scale in range", Config{Print: PrintConfig{Scale: f(1.0)}}, false},
		{"negative margin", Config{Print: PrintConfig{MarginLeft: f(-1)}}, true},
		{"zero margin ok", Config{Print: PrintConfig{MarginLeft: f(0)}}, false},
		{"zero paper width", Config{Print: PrintConfig{PaperWidth: f(0)}}, true},
		{"negative paper height", Config{Print: PrintConfig{PaperHeight: f(-2)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestPageLoadTimeoutDuration(t *testing.T) {
	t.Parallel()

	var cfg Config
	if got := cfg.PageLoadTimeoutDuration(); got != 0 {
		t.Errorf("unset timeout = %v, want 0", got)
	}
	cfg.Browser.PageLoadTimeout = "90s"
	if got := cfg.PageLoadTimeoutDuration(); got != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", got)
	}
}

// Package config loads CLI configuration from YAML files. Flags always
// override config values; merging happens in the CLI layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// maxConfigSize bounds config input to prevent memory exhaustion.
const maxConfigSize = 1 << 20

// Config holds defaults for a conversion run.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Print   PrintConfig   `yaml:"print"`
	Cookies CookiesConfig `yaml:"cookies"`
	Output  OutputConfig  `yaml:"output"`
}

// BrowserConfig defines browser session options.
type BrowserConfig struct {
	Bin             string `yaml:"bin"`             // Chromium executable (empty = auto)
	NoSandbox       bool   `yaml:"noSandbox"`       // for containerized environments
	PageLoadTimeout string `yaml:"pageLoadTimeout"` // Go duration, e.g. "30s"
}

// PrintConfig defines default print parameters. Pointer fields
// distinguish "unset" from explicit zero values.
type PrintConfig struct {
	Landscape           *bool    `yaml:"landscape"`
	Background          *bool    `yaml:"background"` // print background graphics
	DisplayHeaderFooter *bool    `yaml:"displayHeaderFooter"`
	HeaderTemplate      string   `yaml:"headerTemplate"`
	FooterTemplate      string   `yaml:"footerTemplate"`
	MarginTop           *float64 `yaml:"marginTop"` // inches
	MarginBottom        *float64 `yaml:"marginBottom"`
	MarginLeft          *float64 `yaml:"marginLeft"`
	MarginRight         *float64 `yaml:"marginRight"`
	PaperWidth          *float64 `yaml:"paperWidth"` // inches
	PaperHeight         *float64 `yaml:"paperHeight"`
	Scale               *float64 `yaml:"scale"` // 0.1 to 2.0
	PageRanges          string   `yaml:"pageRanges"`
	PreferCSSPageSize   *bool    `yaml:"preferCSSPageSize"`
	TaggedPDF           *bool    `yaml:"taggedPDF"` // accessible PDF output
}

// CookiesConfig defines cookie jar options.
type CookiesConfig struct {
	Jar string `yaml:"jar"` // Netscape-format cookie file (empty = none)
}

// OutputConfig defines post-render options.
type OutputConfig struct {
	Validate bool `yaml:"validate"` // validate produced PDFs
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks ranges and formats of set fields.
func (c *Config) Validate() error {
	if c.Browser.PageLoadTimeout != "" {
		if _, err := time.ParseDuration(c.Browser.PageLoadTimeout); err != nil {
			return fmt.Errorf("%w: browser.pageLoadTimeout %q: %v", ErrInvalidConfig, c.Browser.PageLoadTimeout, err)
		}
	}
	if s := c.Print.Scale; s != nil && (*s < 0.1 || *s > 2.0) {
		return fmt.Errorf("%w: print.scale %.2f (must be between 0.1 and 2.0)", ErrInvalidConfig, *s)
	}
	margins := []struct {
		name string
		val  *float64
	}{
		{"print.marginTop", c.Print.MarginTop},
		{"print.marginBottom", c.Print.MarginBottom},
		{"print.marginLeft", c.Print.MarginLeft},
		{"print.marginRight", c.Print.MarginRight},
	}
	for _, m := range margins {
		if m.val != nil && *m.val < 0 {
			return fmt.Errorf("%w: %s %.4f (must be >= 0)", ErrInvalidConfig, m.name, *m.val)
		}
	}
	if w := c.Print.PaperWidth; w != nil && *w <= 0 {
		return fmt.Errorf("%w: print.paperWidth %.4f (must be > 0)", ErrInvalidConfig, *w)
	}
	if h := c.Print.PaperHeight; h != nil && *h <= 0 {
		return fmt.Errorf("%w: print.paperHeight %.4f (must be > 0)", ErrInvalidConfig, *h)
	}
	return nil
}

// PageLoadTimeoutDuration returns the parsed timeout, or 0 when unset.
// Call Validate first; an unparsable value returns 0 here.
func (c *Config) PageLoadTimeoutDuration() time.Duration {
	if c.Browser.PageLoadTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Browser.PageLoadTimeout)
	if err != nil {
		return 0
	}
	return d
}

// LoadConfig loads configuration from a file path or config name.
// Names are searched in the current directory, then the user config
// directory, trying .yaml and .yml extensions.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrConfigParse, configPath, maxConfigSize)
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config file by name.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-web2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

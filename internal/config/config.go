// Package config loads colresize settings: an embedded default file merged
// with an optional user file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/colresize/pkg/resize"
	"github.com/oakwood-commons/colresize/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     File
	embeddedConfigErr  error
)

// File is the on-disk configuration layout.
type File struct {
	App    AppConfig    `yaml:"app"`
	Resize ResizeConfig `yaml:"resize"`
	UI     UIConfig     `yaml:"ui"`
}

// AppConfig is optional metadata shown in the footer.
type AppConfig struct {
	Name    string `yaml:"name,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// ResizeConfig mirrors resize.Config. Nil fields inherit from the file
// merged underneath.
type ResizeConfig struct {
	Mode          string `yaml:"mode,omitempty"`
	MinWidth      *int   `yaml:"min_width,omitempty"`
	DragThreshold *int   `yaml:"drag_threshold,omitempty"`
	KeyStep       *int   `yaml:"key_step,omitempty"`
	KeyLargeStep  *int   `yaml:"key_large_step,omitempty"`
	CellPadding   *int   `yaml:"cell_padding,omitempty"`
}

type UIConfig struct {
	NoColor  *bool       `yaml:"no_color,omitempty"`
	ShowHelp *bool       `yaml:"show_help,omitempty"`
	Theme    ThemeConfig `yaml:"theme"`
}

// ThemeConfig holds hex colors for the table chrome.
type ThemeConfig struct {
	Header   string `yaml:"header,omitempty"`
	Border   string `yaml:"border,omitempty"`
	Focused  string `yaml:"focused,omitempty"`
	Dragging string `yaml:"dragging,omitempty"`
	Selected string `yaml:"selected,omitempty"`
}

// DefaultYAML returns a copy of the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded default configuration once.
func Default() (File, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = errors.New("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
		}
	})
	return embeddedConfig, embeddedConfigErr
}

// Load returns the default configuration overlaid with the file at path.
// An empty path yields the defaults.
func Load(path string) (File, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var user File
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg = Merge(cfg, user)
	if _, err := cfg.ResizeConfig(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays the fields set in override onto base.
func Merge(base, override File) File {
	out := base
	if override.App.Name != "" {
		out.App.Name = override.App.Name
	}
	if override.App.Version != "" {
		out.App.Version = override.App.Version
	}

	r := override.Resize
	if r.Mode != "" {
		out.Resize.Mode = r.Mode
	}
	out.Resize.MinWidth = pick(out.Resize.MinWidth, r.MinWidth)
	out.Resize.DragThreshold = pick(out.Resize.DragThreshold, r.DragThreshold)
	out.Resize.KeyStep = pick(out.Resize.KeyStep, r.KeyStep)
	out.Resize.KeyLargeStep = pick(out.Resize.KeyLargeStep, r.KeyLargeStep)
	out.Resize.CellPadding = pick(out.Resize.CellPadding, r.CellPadding)

	out.UI.NoColor = pick(out.UI.NoColor, override.UI.NoColor)
	out.UI.ShowHelp = pick(out.UI.ShowHelp, override.UI.ShowHelp)
	out.UI.Theme = mergeTheme(out.UI.Theme, override.UI.Theme)
	return out
}

func pick[T any](base, override *T) *T {
	if override != nil {
		v := *override
		return &v
	}
	return base
}

func mergeTheme(base, override ThemeConfig) ThemeConfig {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Header, override.Header)
	set(&base.Border, override.Border)
	set(&base.Focused, override.Focused)
	set(&base.Dragging, override.Dragging)
	set(&base.Selected, override.Selected)
	return base
}

// ResizeConfig converts the resize section into an engine configuration.
// Unset fields take the engine defaults.
func (f File) ResizeConfig() (resize.Config, error) {
	cfg := resize.DefaultConfig()
	if f.Resize.Mode != "" {
		mode, err := resize.ParseMode(f.Resize.Mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	intOr(&cfg.MinWidth, f.Resize.MinWidth)
	intOr(&cfg.DragThreshold, f.Resize.DragThreshold)
	intOr(&cfg.KeyStep, f.Resize.KeyStep)
	intOr(&cfg.KeyLargeStep, f.Resize.KeyLargeStep)
	intOr(&cfg.CellPadding, f.Resize.CellPadding)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func intOr(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// NoColor reports whether the file disables colors.
func (f File) NoColor() bool { return f.UI.NoColor != nil && *f.UI.NoColor }

// ShowHelp reports whether the help footer is shown. It defaults to true.
func (f File) ShowHelp() bool { return f.UI.ShowHelp == nil || *f.UI.ShowHelp }

// YAML encodes the configuration.
func (f File) YAML() ([]byte, error) {
	out, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}

// ResolvePath returns explicit when set, else the first existing user
// config file under XDG_CONFIG_HOME or ~/.config, else "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

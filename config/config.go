package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	AppName string       `yaml:"app_name"`
	Window  WindowConfig `yaml:"window"`
	Editor  EditorConfig `yaml:"editor"`
	// Inbox is watched for tileset images dropped in from outside.
	Inbox      string       `yaml:"inbox"`
	ScriptsDir string       `yaml:"scripts_dir"`
	ExportDir  string       `yaml:"export_dir"`
	Import     ImportConfig `yaml:"import"`
	Log        LogConfig    `yaml:"log"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type EditorConfig struct {
	MaxUndo  int     `yaml:"max_undo"`
	ShowGrid bool    `yaml:"show_grid"`
	Zoom     float64 `yaml:"zoom"`
}

// ImportConfig controls what a bundle import brings in. Tilesets always
// replace the current set; maps are only added when Files is set.
type ImportConfig struct {
	Files bool `yaml:"files"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load overlays the file at path onto the defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Debug("config: no file, using defaults")
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the application cannot start without.
func (c Config) Validate() error {
	if c.AppName == "" {
		return errors.New("app_name must not be empty")
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height)
	}
	if c.Editor.MaxUndo < 1 {
		return fmt.Errorf("editor.max_undo must be at least 1, got %d", c.Editor.MaxUndo)
	}
	if c.Editor.Zoom <= 0 {
		return fmt.Errorf("editor.zoom must be positive, got %v", c.Editor.Zoom)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel returns the configured logrus level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

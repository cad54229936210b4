package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "folderplay"

// Environment variables that override the config files.
const (
	EnvMusicFolder = "FOLDERPLAY_MUSIC_FOLDER"
	EnvLogLevel    = "FOLDERPLAY_LOG_LEVEL"
)

type Config struct {
	// Empty means the saved folder, then the working directory.
	MusicFolder string `koanf:"music_folder"`
	// Readout refresh cadence.
	TickInterval time.Duration `koanf:"tick_interval" default:"1s" validate:"gte=100ms,lte=10s"`
	// Left/right seek step, as a fraction of the track.
	SeekStep float64 `koanf:"seek_step" default:"0.05" validate:"gt=0,lte=0.5"`
	// Initial volume when no state is saved.
	Volume      float64 `koanf:"volume" default:"1" validate:"gte=0,lte=1"`
	WatchFolder bool    `koanf:"watch_folder"`
	MPRIS       bool    `koanf:"mpris" default:"true"`

	Log LogConfig `koanf:"log"`
}

// LogConfig controls where and how much folderplay logs.
type LogConfig struct {
	Level      string `koanf:"level" default:"info" validate:"oneof=debug info warn error"`
	File       string `koanf:"file"` // empty means DefaultLogFile()
	MaxSizeMB  int    `koanf:"max_size_mb" default:"10" validate:"gte=1,lte=1024"`
	MaxBackups int    `koanf:"max_backups" default:"3" validate:"gte=0,lte=100"`
}

// Load reads the standard config locations.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given toml files in order, later files overriding
// earlier ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config %s", path)
		}
	}

	cfg := &Config{}
	// Defaults first so that explicit zero values in the files survive.
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	applyEnv(cfg)

	cfg.MusicFolder = ExpandPath(cfg.MusicFolder)
	cfg.Log.File = ExpandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvMusicFolder); v != "" {
		cfg.MusicFolder = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/folderplay/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// LogFile returns the configured log file or the default location.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultLogFile()
}

// DefaultLogFile is folderplay.log under the XDG state directory.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

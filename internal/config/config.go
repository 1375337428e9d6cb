// Package config loads todomvc settings from TOML files, the environment and
// command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/sadopc/todomvc/internal/store"
)

const (
	DefaultLogLevel    = "info"
	ProjectConfigFile  = ".todomvc.toml"
	userConfigFileName = "config.toml"
	appDirName         = "todomvc"
)

type Config struct {
	DBPath        string `toml:"db_path"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	Route         string `toml:"route"`
	RememberRoute bool   `toml:"remember_route"`
	PDFFont       string `toml:"pdf_font"`

	// Files that were actually read, in load order.
	Files []string `toml:"-"`
}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. User config file (-config, or <UserConfigDir>/todomvc/config.toml)
// 3. Project config file (.todomvc.toml in the working directory)
// 4. Environment variables (TODOMVC_*)
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	explicit := configFlag(args)
	userFile := explicit
	if userFile == "" {
		userFile = findUserConfigFile()
	}
	if userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			if explicit == "" && errors.Is(err, os.ErrNotExist) {
				userFile = ""
			} else {
				return nil, fmt.Errorf("loading config file %s: %w", userFile, err)
			}
		}
	}

	if _, err := os.Stat(ProjectConfigFile); err == nil {
		if err := loadConfigFile(cfg, ProjectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", ProjectConfigFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.LogLevel = DefaultLogLevel
	cfg.RememberRoute = true
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODOMVC_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TODOMVC_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODOMVC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODOMVC_ROUTE"); v != "" {
		cfg.Route = v
	}
	if v := os.Getenv("TODOMVC_PDF_FONT"); v != "" {
		cfg.PDFFont = v
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todomvc", flag.ContinueOnError)
	}
	var ignored string
	fs.StringVar(&ignored, "config", "", "Path to a TOML config file")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Path to the log file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Route, "route", cfg.Route, "Start route: #/, #/active or #/completed")
	fs.BoolVar(&cfg.RememberRoute, "remember-route", cfg.RememberRoute, "Restore the last route on start-up")
	fs.StringVar(&cfg.PDFFont, "pdf-font", cfg.PDFFont, "TrueType font for PDF exports (default built-in Arial)")
	return fs.Parse(args)
}

// configFlag finds -config before flag parsing so the file can be loaded
// underneath env and flag overrides.
func configFlag(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func finalizeConfig(cfg *Config) error {
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if cfg.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("default db path: %w", err)
		}
		cfg.DBPath = p
	}
	cfg.DBPath = expandPath(cfg.DBPath)

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(filepath.Dir(cfg.DBPath), "todomvc.log")
	}
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.PDFFont = expandPath(cfg.PDFFont)
	return nil
}

func appDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func findUserConfigFile() string {
	dir, err := appDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, userConfigFileName)
}

// expandPath expands environment variables and a leading ~/.
func expandPath(p string) string {
	if p == "" || p == ":memory:" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}

// Copyright (C) 2025 Mono Technologies Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

// Package config loads editor settings: where the configuration document
// lives, how the editor logs, and whether revisions are recorded. Values
// resolve from defaults, then FGD_* environment variables, then flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys
const (
	KeyConfig         = "config"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyLogFile        = "log.file"
	KeyHistoryEnabled = "history.enabled"
	KeyHistoryPath    = "history.path"
	KeyHistoryKeep    = "history.keep"
)

// EnvPrefix is prepended to every environment override, e.g. FGD_LOG_LEVEL.
const EnvPrefix = "FGD"

const (
	appDirName      = "FocusGameDeck"
	configFileName  = "config.json"
	historyFileName = "history.db"
)

// flag name -> setting key
var flagKeys = map[string]string{
	"config":       KeyConfig,
	"log-level":    KeyLogLevel,
	"log-format":   KeyLogFormat,
	"log-file":     KeyLogFile,
	"history":      KeyHistoryEnabled,
	"history-path": KeyHistoryPath,
}

// Settings holds the resolved editor settings.
type Settings struct {
	ConfigPath string
	Log        LogSettings
	History    HistorySettings
}

// LogSettings configures the editor's own logger.
type LogSettings struct {
	Level  string
	Format string
	File   string // empty logs to stderr only
}

// HistorySettings configures the revision store.
type HistorySettings struct {
	Enabled bool
	Path    string
	Keep    int // revisions kept per document; 0 keeps all
}

// New returns a viper instance with defaults and environment overrides applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyConfig, DefaultConfigPath())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyHistoryPath, "")
	v.SetDefault(KeyHistoryKeep, 50)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// AddFlags registers the settings flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to config.json")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-format", "", "log format (text, json)")
	fs.String("log-file", "", "also write logs to this file")
	fs.Bool("history", true, "record a revision on every save")
	fs.String("history-path", "", "revision database path")
}

// BindFlags binds the flags registered by AddFlags to their setting keys.
// A flag only overrides the environment when it was set explicitly.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load resolves the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		ConfigPath: v.GetString(KeyConfig),
		Log: LogSettings{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
			File:   v.GetString(KeyLogFile),
		},
		History: HistorySettings{
			Enabled: v.GetBool(KeyHistoryEnabled),
			Path:    v.GetString(KeyHistoryPath),
			Keep:    v.GetInt(KeyHistoryKeep),
		},
	}

	if s.ConfigPath == "" {
		s.ConfigPath = DefaultConfigPath()
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if s.Log.Format == "" {
		s.Log.Format = "text"
	}
	if s.History.Path == "" {
		s.History.Path = filepath.Join(filepath.Dir(s.ConfigPath), historyFileName)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks enumerated settings.
func (s *Settings) Validate() error {
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", s.Log.Level)
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", s.Log.Format)
	}
	if s.History.Keep < 0 {
		return fmt.Errorf("history.keep must not be negative")
	}
	return nil
}

// DefaultConfigPath returns <UserConfigDir>/FocusGameDeck/config.json,
// falling back to the working directory when no user config dir exists.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, appDirName, configFileName)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings persists user preferences between runs in a TOML file
// under the XDG config directory.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	appName        = "ash"
	configFile     = "config.toml"
	keyDatabase    = "database.path"
	cacheFile      = "existence.db"
	configFileType = "toml"
)

// DefaultPath returns $XDG_CONFIG_HOME/ash/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFile)
}

// DefaultCacheDB returns the default location of the existence cache.
func DefaultCacheDB() string {
	return filepath.Join(xdg.CacheHome, appName, cacheFile)
}

// Store reads and writes the settings file. It only ever sees values from
// the file itself, so flags and environment overrides are never persisted.
type Store struct {
	path string
	v    *viper.Viper
}

// Open loads the settings file at path. A missing file is not an error; it
// is created on the first write.
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(configFileType)
	v.SetDefault(keyDatabase, "")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking settings %s: %w", path, err)
	}

	return &Store{path: path, v: v}, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// DatabasePath returns the remembered dataset path, or "" if none.
func (s *Store) DatabasePath() string {
	return s.v.GetString(keyDatabase)
}

// SetDatabasePath remembers p as the dataset for later runs.
func (s *Store) SetDatabasePath(p string) error {
	s.v.Set(keyDatabase, p)
	return s.save()
}

// ClearDatabasePath forgets the remembered dataset.
func (s *Store) ClearDatabasePath() error {
	return s.SetDatabasePath("")
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings %s: %w", s.path, err)
	}
	return nil
}

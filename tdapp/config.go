/*
	Tweetdiary
	Copyright (c) 2024 Tweetdiary authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package tdapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config describes the application configuration: the three roots the
// pipeline reads from, plus the listen address of the local API.
type Config struct {
	// Path of the export archive: either the extracted folder or the
	// downloaded .zip file.
	ArchiveRoot string `json:"archive_root,omitempty" envconfig:"ARCHIVE_ROOT"`

	// Folder holding the dated profile snapshot folders and the global
	// fallback files.
	MetadataRoot string `json:"metadata_root,omitempty" envconfig:"METADATA_ROOT"`

	// Folder of the daily-log notes, relative to the vault root.
	DiaryRoot string `json:"diary_root,omitempty" envconfig:"DIARY_ROOT"`

	// The listen address to bind the local API socket to.
	Listen string `json:"listen,omitempty" envconfig:"LISTEN"`
}

// LoadConfig reads the JSON config file at filename (if it exists) and
// then applies TWEETDIARY_* environment variable overrides.
func LoadConfig(filename string) (*Config, error) {
	cfg := new(Config)

	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fine; env vars may supply everything
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decoding config file %s: %w", filename, err)
		}
	}

	if err := envconfig.Process("tweetdiary", cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if cfg.Listen == "" {
		cfg.Listen = defaultListenAddr
	}
	if cfg.ArchiveRoot == "" {
		return nil, errors.New("no archive root configured")
	}
	if cfg.MetadataRoot == "" {
		return nil, errors.New("no metadata root configured")
	}

	return cfg, nil
}

// DefaultConfigFilePath returns the file path where configuration is
// expected by default.
func DefaultConfigFilePath() string {
	cfgDir, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(cfgDir, "tweetdiary", "config.json")
	}
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(homeDir, ".tweetdiary", "config.json")
	}
	return filepath.Join(".tweetdiary", "config.json")
}

const defaultListenAddr = "127.0.0.1:12851"

// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"strings"

	"github.com/spiritoffootball/cli-tools-for-sof/pkg/site"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultPath is the config file read when --config is not given
	DefaultPath = ".sof.yaml"
	// DefaultEnvFile is the dotenv file read when --env-file is not given
	DefaultEnvFile = ".env"
	// DefaultBinary is the wp-cli executable looked up on PATH
	DefaultBinary = "wp"
)

// Environment variables that override the config file
const (
	EnvBinary      = "SOF_WP_BINARY"
	EnvPath        = "SOF_WP_PATH"
	EnvURL         = "SOF_WP_URL"
	EnvMetricsFile = "SOF_METRICS_FILE"
)

// 🔧 WP configures how wp-cli is invoked
type WP struct {
	Binary string   `json:"binary" yaml:"binary"` // Executable name or path
	Path   string   `json:"path" yaml:"path"`     // WordPress root, passed as --path
	URL    string   `json:"url" yaml:"url"`       // Ambient site, passed as --url
	Args   []string `json:"args" yaml:"args"`     // Extra global arguments
}

// 🌐 Sites narrows the enumerated sites
type Sites struct {
	Include []string `json:"include" yaml:"include"` // Glob patterns, empty means all
	Exclude []string `json:"exclude" yaml:"exclude"` // Glob patterns, wins over include
}

// 📚 Config represents the complete configuration
type Config struct {
	WP          WP       `json:"wp" yaml:"wp"`
	Roles       []string `json:"roles" yaml:"roles"`
	Sites       Sites    `json:"sites" yaml:"sites"`
	MetricsFile string   `json:"metrics_file" yaml:"metrics_file"`

	location string
}

// 🏗️ Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		WP: WP{Binary: DefaultBinary},
	}
}

// Location returns the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// SiteFilter returns the site filter described by the config
func (cfg *Config) SiteFilter() site.Filter {
	return site.Filter{
		Include: cfg.Sites.Include,
		Exclude: cfg.Sites.Exclude,
	}
}

// HasRole reports whether the role is one of the configured roles
func (cfg *Config) HasRole(role string) bool {
	for _, r := range cfg.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// 🔄 ApplyEnv overrides file values with SOF_* variables
func (cfg *Config) ApplyEnv(env Env) {
	if v, ok := env.Lookup(EnvBinary); ok && v != "" {
		cfg.WP.Binary = v
	}
	if v, ok := env.Lookup(EnvPath); ok && v != "" {
		cfg.WP.Path = v
	}
	if v, ok := env.Lookup(EnvURL); ok && v != "" {
		cfg.WP.URL = v
	}
	if v, ok := env.Lookup(EnvMetricsFile); ok && v != "" {
		cfg.MetricsFile = v
	}
}

// 🔍 Validate checks if the configuration is valid and fills defaults
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.WP.Binary) == "" {
		cfg.WP.Binary = DefaultBinary
	}
	cfg.WP.URL = strings.TrimRight(cfg.WP.URL, "/")

	seen := make(map[string]bool, len(cfg.Roles))
	for i, role := range cfg.Roles {
		if strings.TrimSpace(role) == "" {
			return errors.Errorf("roles[%d] is empty", i)
		}
		if seen[role] {
			return errors.Errorf("role %q is listed twice", role)
		}
		seen[role] = true
	}

	if err := cfg.SiteFilter().Validate(); err != nil {
		return errors.Errorf("sites: %w", err)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	url := cfg.WP.URL
	if url == "" {
		url = "(current site)"
	}
	return fmt.Sprintf("%s %s [%d roles]", cfg.WP.Binary, url, len(cfg.Roles))
}

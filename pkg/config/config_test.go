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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing config file should succeed")
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		env         Env
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_full",
			file: ".sof.yaml",
			config: `
wp:
  binary: /usr/local/bin/wp
  path: /var/www/html
  url: https://spiritoffootball.com/
  args: ["--skip-plugins"]
roles:
  - sof_coach
  - sof_volunteer
sites:
  include: ["https://*.spiritoffootball.com"]
  exclude: ["https://archive.*"]
metrics_file: /tmp/sof.prom
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/usr/local/bin/wp", cfg.WP.Binary, "binary should match")
				assert.Equal(t, "/var/www/html", cfg.WP.Path, "path should match")
				assert.Equal(t, "https://spiritoffootball.com", cfg.WP.URL, "url should lose its trailing slash")
				assert.Equal(t, []string{"--skip-plugins"}, cfg.WP.Args, "args should match")
				assert.Equal(t, []string{"sof_coach", "sof_volunteer"}, cfg.Roles, "roles should match")
				assert.Equal(t, []string{"https://*.spiritoffootball.com"}, cfg.Sites.Include, "include should match")
				assert.Equal(t, []string{"https://archive.*"}, cfg.Sites.Exclude, "exclude should match")
				assert.Equal(t, "/tmp/sof.prom", cfg.MetricsFile, "metrics file should match")
			},
		},
		{
			name:   "yaml_minimal_gets_default_binary",
			file:   ".sof.yml",
			config: "roles: [sof_coach]\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "wp", cfg.WP.Binary, "binary should default to wp")
				assert.True(t, cfg.HasRole("sof_coach"))
				assert.False(t, cfg.HasRole("administrator"))
			},
		},
		{
			name:   "yaml_empty_file",
			file:   ".sof.yaml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default().WP, cfg.WP)
				assert.Empty(t, cfg.Roles)
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        ".sof.yaml",
			config:      "wp:\n  binry: wp\n",
			errContains: "parsing YAML",
		},
		{
			name:   "json",
			file:   "sof.json",
			config: `{"wp": {"url": "https://a.test"}, "roles": ["sof_coach"]}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://a.test", cfg.WP.URL)
				assert.Equal(t, "wp", cfg.WP.Binary)
				assert.Equal(t, []string{"sof_coach"}, cfg.Roles)
			},
		},
		{
			name:        "json_unknown_field",
			file:        "sof.json",
			config:      `{"role": ["sof_coach"]}`,
			errContains: "parsing JSON",
		},
		{
			name: "hcl_with_env",
			file: "sof.hcl",
			config: `
wp {
  path = env.WP_ROOT
  url  = "https://a.test"
}
roles = ["sof_coach"]
sites {
  exclude = ["https://b.test"]
}
`,
			env: Env{"WP_ROOT": "/srv/wordpress"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "wp", cfg.WP.Binary, "binary should keep its default")
				assert.Equal(t, "/srv/wordpress", cfg.WP.Path, "path should come from env")
				assert.Equal(t, "https://a.test", cfg.WP.URL)
				assert.Equal(t, []string{"sof_coach"}, cfg.Roles)
				assert.Equal(t, []string{"https://b.test"}, cfg.Sites.Exclude)
			},
		},
		{
			name:        "hcl_unknown_env",
			file:        "sof.hcl",
			config:      "wp {\n  path = env.MISSING\n}\n",
			env:         Env{"OTHER": "x"},
			errContains: "decoding HCL",
		},
		{
			name:   "sof_extension_falls_back_to_hcl",
			file:   "config.sof",
			config: "roles = [\"sof_coach\"]\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"sof_coach"}, cfg.Roles)
			},
		},
		{
			name:   "env_overrides_file",
			file:   ".sof.yaml",
			config: "wp:\n  binary: wp\n  url: https://file.test\n",
			env: Env{
				EnvBinary:      "/opt/wp",
				EnvURL:         "https://env.test",
				EnvMetricsFile: "/tmp/env.prom",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/opt/wp", cfg.WP.Binary)
				assert.Equal(t, "https://env.test", cfg.WP.URL)
				assert.Equal(t, "/tmp/env.prom", cfg.MetricsFile)
			},
		},
		{
			name:        "duplicate_role",
			file:        ".sof.yaml",
			config:      "roles: [sof_coach, sof_coach]\n",
			errContains: "listed twice",
		},
		{
			name:        "empty_role",
			file:        ".sof.yaml",
			config:      "roles: [\"\"]\n",
			errContains: "roles[0] is empty",
		},
		{
			name:        "bad_site_pattern",
			file:        ".sof.yaml",
			config:      "sites:\n  include: [\"https://[a-\"]\n",
			errContains: "sites:",
		},
		{
			name:        "unsupported_extension",
			file:        "sof.toml",
			config:      "roles = []",
			errContains: "unsupported file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			path := writeConfig(t, tt.file, tt.config)

			cfg, err := Load(ctx, path, tt.env)
			if tt.errContains != "" {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, path, cfg.Location())
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), DefaultPath)

	_, err := Load(ctx, path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := LoadOrDefault(ctx, path, Env{EnvPath: "/srv/wp"})
	require.NoError(t, err)
	assert.Equal(t, "wp", cfg.WP.Binary)
	assert.Equal(t, "/srv/wp", cfg.WP.Path, "env should still apply to defaults")
	assert.Empty(t, cfg.Location())
}

func TestReadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SOF_TEST_FROM_FILE=file\nSOF_TEST_SHADOWED=file\n"), 0644))
	t.Setenv("SOF_TEST_SHADOWED", "process")

	env, err := ReadEnv(path, true)
	require.NoError(t, err)

	v, ok := env.Lookup("SOF_TEST_FROM_FILE")
	assert.True(t, ok)
	assert.Equal(t, "file", v)

	v, ok = env.Lookup("SOF_TEST_SHADOWED")
	assert.True(t, ok)
	assert.Equal(t, "process", v, "process environment wins over the dotenv file")

	_, err = ReadEnv(filepath.Join(dir, "missing.env"), false)
	assert.NoError(t, err, "an optional missing file is ignored")

	_, err = ReadEnv(filepath.Join(dir, "missing.env"), true)
	assert.Error(t, err, "a required missing file is an error")
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "ambient",
			cfg:  Default(),
			want: "wp (current site) [0 roles]",
		},
		{
			name: "with_url",
			cfg:  &Config{WP: WP{Binary: "/opt/wp", URL: "https://a.test"}, Roles: []string{"a", "b"}},
			want: "/opt/wp https://a.test [2 roles]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.String(), "String() should match")
		})
	}
}

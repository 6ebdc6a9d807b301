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

package wpcli

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWP writes a shell script that stands in for the wp binary
func fakeWP(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stand-in requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "wp")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755)
	require.NoError(t, err, "writing fake wp")
	return path
}

func TestCLIRun(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		cli        func(bin string) *CLI
		inv        Invocation
		wantStdout string
		wantStderr string
		wantCode   int
	}{
		{
			name:   "ambient_invocation_has_no_url",
			script: `echo "$@"`,
			cli: func(bin string) *CLI {
				return NewCLI(bin)
			},
			inv:        NewInvocation("", "comment", "list", "--status=spam"),
			wantStdout: "comment list --status=spam\n",
		},
		{
			name:   "ambient_url_and_path_are_appended",
			script: `echo "$@"`,
			cli: func(bin string) *CLI {
				c := NewCLI(bin)
				c.Path = "/srv/wp"
				c.URL = "https://main.test"
				return c
			},
			inv:        NewInvocation("", "site", "list"),
			wantStdout: "site list --path=/srv/wp --url=https://main.test\n",
		},
		{
			name:   "targeted_url_overrides_ambient",
			script: `echo "$@"`,
			cli: func(bin string) *CLI {
				c := NewCLI(bin)
				c.URL = "https://main.test"
				c.Args = []string{"--skip-themes"}
				return c
			},
			inv:        NewInvocation("https://b.test", "post", "list"),
			wantStdout: "post list --url=https://b.test --skip-themes\n",
		},
		{
			name:   "non_zero_exit_is_recorded",
			script: "echo 'Error: nope' >&2\necho 'more detail' >&2\nexit 3",
			cli: func(bin string) *CLI {
				return NewCLI(bin)
			},
			inv:        NewInvocation("", "comment", "delete", "1"),
			wantStderr: "Error: nope\nmore detail\n",
			wantCode:   3,
		},
		{
			name:   "env_is_passed_through",
			script: `echo "$SOF_TEST_VALUE"`,
			cli: func(bin string) *CLI {
				c := NewCLI(bin)
				c.Env = []string{"SOF_TEST_VALUE=hello"}
				return c
			},
			inv:        NewInvocation("", "eval"),
			wantStdout: "hello\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			bin := fakeWP(t, tt.script)

			res, err := tt.cli(bin).Run(ctx, tt.inv)
			require.NoError(t, err, "run should not fail")

			assert.Equal(t, tt.wantStdout, res.Stdout, "stdout should match")
			assert.Equal(t, tt.wantStderr, res.Stderr, "stderr should match")
			assert.Equal(t, tt.wantCode, res.ExitCode, "exit code should match")
			assert.Equal(t, tt.wantCode == 0, res.Success(), "success should follow exit code")
		})
	}
}

func TestCLIRunMissingBinary(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	cli := NewCLI(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := cli.Run(ctx, NewInvocation("", "site", "list"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running")
}

func TestNewInvocation(t *testing.T) {
	ambient := NewInvocation("", "comment", "list")
	assert.False(t, ambient.Isolated, "ambient invocations run in the current context")
	assert.Equal(t, "comment list", ambient.String())

	targeted := NewInvocation("https://a.test", "comment", "list")
	assert.True(t, targeted.Isolated, "targeted invocations must be isolated")
	assert.Equal(t, "comment list --url='https://a.test'", targeted.String())

	forced := ambient.WithIsolation()
	assert.True(t, forced.Isolated)
	assert.False(t, ambient.Isolated, "WithIsolation must not mutate the receiver")
}

func TestResultErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "first_stderr_line",
			res:  Result{ExitCode: 1, Stderr: "  Error: broken\nsecond line\n"},
			want: "Error: broken (1)",
		},
		{
			name: "no_stderr_falls_back_to_code",
			res:  Result{ExitCode: 255},
			want: "exit status 255",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.ErrorMessage())
		})
	}
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		want        []string
		errContains string
	}{
		{
			name:    "string_ids",
			payload: `["101","102"]`,
			want:    []string{"101", "102"},
		},
		{
			name:    "numeric_ids",
			payload: "[7, 8, 9]\n",
			want:    []string{"7", "8", "9"},
		},
		{
			name:    "urls_keep_order",
			payload: `["https://b.test/","https://a.test/"]`,
			want:    []string{"https://b.test/", "https://a.test/"},
		},
		{
			name:    "empty_array",
			payload: `[]`,
			want:    []string{},
		},
		{
			name:    "null",
			payload: `null`,
			want:    []string{},
		},
		{
			name:        "empty_payload",
			payload:     "",
			errContains: "EOF",
		},
		{
			name:        "syntax_error",
			payload:     `[1,`,
			errContains: "unexpected EOF",
		},
		{
			name:        "object_is_not_a_list",
			payload:     `{"id":1}`,
			errContains: "cannot unmarshal object",
		},
		{
			name:        "nested_values_rejected",
			payload:     `[[1]]`,
			errContains: "element 0",
		},
		{
			name:        "trailing_data",
			payload:     `[1] [2]`,
			errContains: "unexpected data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeList(tt.payload)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

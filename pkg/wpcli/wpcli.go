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

// Package wpcli runs WP-CLI commands and decodes their JSON output.
package wpcli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📨 Invocation is a single wp-cli command
type Invocation struct {
	// Args are the command words and flags, without the binary (e.g. "comment", "list", "--status=spam")
	Args []string
	// URL targets an explicit site. Empty means the ambient site.
	URL string
	// Isolated asks for an execution that shares no state with the caller or with earlier runs
	Isolated bool
}

// 🎯 NewInvocation builds an invocation for the given target URL.
// Targeting a site always forces isolation.
func NewInvocation(url string, args ...string) Invocation {
	return Invocation{
		Args:     args,
		URL:      url,
		Isolated: url != "",
	}
}

// 🔒 WithIsolation returns a copy of the invocation that must run isolated
func (i Invocation) WithIsolation() Invocation {
	i.Isolated = true
	return i
}

// String returns the command line as it would be typed, minus the binary
func (i Invocation) String() string {
	s := strings.Join(i.Args, " ")
	if i.URL != "" {
		s += fmt.Sprintf(" --url='%s'", i.URL)
	}
	return s
}

// 📦 Result is the outcome of an invocation
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited zero
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// ErrorMessage returns the first line of stderr with the exit code, or just the exit code
func (r *Result) ErrorMessage() string {
	stderr := strings.TrimSpace(r.Stderr)
	if idx := strings.Index(stderr, "\n"); idx != -1 {
		stderr = strings.TrimSpace(stderr[:idx])
	}
	if stderr != "" {
		return fmt.Sprintf("%s (%d)", stderr, r.ExitCode)
	}
	return fmt.Sprintf("exit status %d", r.ExitCode)
}

// 🏃 Executor runs wp-cli invocations.
// A non-zero exit is reported in the Result, not as an error.
// The error is reserved for invocations that could not be run at all.
type Executor interface {
	Run(ctx context.Context, inv Invocation) (*Result, error)
}

// 🔧 CLI runs invocations through the wp binary.
// Every run is a fresh process, so isolated invocations are always honoured.
type CLI struct {
	// Binary is the wp executable (default "wp")
	Binary string
	// Path is passed as --path when set
	Path string
	// URL is the ambient site, passed as --url for untargeted invocations
	URL string
	// Args are appended to every invocation
	Args []string
	// Env is appended to the inherited environment
	Env []string
}

// 🏭 NewCLI creates a CLI executor for the given binary
func NewCLI(binary string) *CLI {
	if binary == "" {
		binary = "wp"
	}
	return &CLI{Binary: binary}
}

// argv builds the argument list for an invocation
func (c *CLI) argv(inv Invocation) []string {
	args := make([]string, 0, len(inv.Args)+len(c.Args)+2)
	args = append(args, inv.Args...)
	if c.Path != "" {
		args = append(args, "--path="+c.Path)
	}
	switch {
	case inv.URL != "":
		args = append(args, "--url="+inv.URL)
	case c.URL != "":
		args = append(args, "--url="+c.URL)
	}
	args = append(args, c.Args...)
	return args
}

// Run executes the invocation and captures its output
func (c *CLI) Run(ctx context.Context, inv Invocation) (*Result, error) {
	args := c.argv(inv)

	zerolog.Ctx(ctx).Debug().
		Str("binary", c.Binary).
		Strs("args", args).
		Bool("isolated", inv.Isolated).
		Msg("running wp-cli")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, errors.Errorf("running %s %s: %w", c.Binary, inv.String(), err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	return res, nil
}

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

package log

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	resultIndent    = 4  // spaces to indent result entries
	siteWidth       = 35 // Base width for the site column
	operationWidth  = 16 // Width for the operation name
	statusWidth     = 10 // Width for status text
	ambientSiteName = "(current site)"
)

// 🎯 ResultLine is a per-site outcome for display
type ResultLine struct {
	Site      string // Site URL, empty for the ambient site
	Operation string // Operation name (e.g. "spam comments")
	Status    string // Short status word
	Items     int    // Number of items listed
	Failed    bool   // Whether the operation failed
	DryRun    bool   // Whether deletion was skipped
	Detail    string // Error or extra detail
}

// 🎯 Logger writes operator-facing console output and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

func siteName(site string) string {
	if site == "" {
		return ambientSiteName
	}
	return site
}

// 📝 formatResult formats a result line for display
func (l *Logger) formatResult(r ResultLine) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case r.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case r.DryRun:
		symbol = '•'
		symbolColor = color.FgCyan
	case r.Items == 0:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", resultIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", siteWidth, siteName(r.Site)),
		color.New(color.FgBlue).Sprint(fmt.Sprintf("%-*s", operationWidth, r.Operation)),
		fmt.Sprintf("%-*s", statusWidth, r.Status))

	if r.Items > 0 {
		line += fmt.Sprintf(" [%d]", r.Items)
	}
	if r.Detail != "" {
		line += " " + color.New(color.Faint).Sprint(r.Detail)
	}
	return line
}

// 📝 SiteOperation announces work starting on a site
func (l *Logger) SiteOperation(action, site string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.FgGreen).Sprint(action+" on site"),
		color.New(color.FgYellow).Sprint(site))

	l.zlog.Info().Str("site", site).Msg(action)
}

// 📝 LogResult logs a per-site result
func (l *Logger) LogResult(r ResultLine) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatResult(r))

	ev := l.zlog.Info()
	if r.Failed {
		ev = l.zlog.Error()
	}
	ev.Str("site", r.Site).
		Str("operation", r.Operation).
		Str("status", r.Status).
		Int("items", r.Items).
		Bool("dry_run", r.DryRun).
		Str("detail", r.Detail).
		Msg("operation result")
}

// 📊 Summary renders a table of all results
func (l *Logger) Summary(rows []ResultLine) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{{"Site", "Operation", "Status", "Items", "Detail"}}
	failed := 0
	for _, r := range rows {
		if r.Failed {
			failed++
		}
		data = append(data, []string{siteName(r.Site), r.Operation, r.Status, strconv.Itoa(r.Items), r.Detail})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		l.zlog.Error().Err(err).Msg("rendering summary table")
		return
	}
	fmt.Fprintf(l.console, "\n%s\n\n", table)

	l.zlog.Info().Int("results", len(rows)).Int("failed", failed).Msg("batch summary")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sofText := color.New(color.Bold, color.FgCyan).Sprint("sof")
	fmt.Fprintf(l.console, "\n%s %s\n\n", sofText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "Success: %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "Warning: %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "Error: %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

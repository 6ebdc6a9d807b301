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

package operation

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/log"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/site"
	"gitlab.com/tozd/go/errors"
)

// 📈 Observer receives every result as soon as it is produced
type Observer interface {
	ObserveResult(res *Result)
}

// 🔧 Options configures a Runner
type Options struct {
	// Logger receives console output; nil discards it
	Logger *log.Logger
	// Observer is notified of each result; optional
	Observer Observer
	// AmbientSite labels the ambient site in progress lines; optional
	AmbientSite string
}

// 🏃 Runner executes operations against the ambient site or a list of sites.
// Sites are processed one at a time, in the order given.
type Runner struct {
	logger      *log.Logger
	observer    Observer
	ambientSite string
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, zerolog.Nop())
	}
	return &Runner{
		logger:      logger,
		observer:    opts.Observer,
		ambientSite: opts.AmbientSite,
	}
}

// RunOnCurrentSite executes the operation against the ambient site
func (r *Runner) RunOnCurrentSite(ctx context.Context, op Operation) *Result {
	label := r.ambientSite
	if label == "" {
		label = "(current site)"
	}
	r.logger.SiteOperation(op.Describe(), label)
	return r.run(ctx, op, nil)
}

// RunOnSites executes every operation once per site, site by site.
// A failure on one site never stops the remaining sites.
func (r *Runner) RunOnSites(ctx context.Context, sites []site.Site, ops ...Operation) *Report {
	report := &Report{RunID: uuid.NewString()}
	ctx = zerolog.Ctx(ctx).With().Str("run_id", report.RunID).Logger().WithContext(ctx)

	zerolog.Ctx(ctx).Debug().
		Int("sites", len(sites)).
		Int("operations", len(ops)).
		Msg("starting batch")

	for i := range sites {
		target := sites[i]
		for _, op := range ops {
			r.logger.SiteOperation(op.Describe(), target.String())
			report.Results = append(report.Results, r.run(ctx, op, &target))
		}
	}

	zerolog.Ctx(ctx).Debug().
		Int("results", len(report.Results)).
		Int("failed", len(report.Failures())).
		Msg("batch finished")

	return report
}

// 🔄 run executes a single operation and publishes its result
func (r *Runner) run(ctx context.Context, op Operation, target *site.Site) *Result {
	start := time.Now()
	res := op.Execute(ctx, target)
	res.Duration = time.Since(start)

	r.logger.LogResult(res.Line())
	if r.observer != nil {
		r.observer.ObserveResult(res)
	}
	return res
}

// 📋 Report aggregates results in execution order
type Report struct {
	RunID   string
	Results []*Result
}

// NewReport builds a report from existing results
func NewReport(results ...*Result) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Results: results,
	}
}

// Success reports whether every result succeeded
func (rp *Report) Success() bool {
	return len(rp.Failures()) == 0
}

// Failures returns the failed results in order
func (rp *Report) Failures() []*Result {
	var failed []*Result
	for _, res := range rp.Results {
		if !res.Success() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Lines converts every result for console display
func (rp *Report) Lines() []log.ResultLine {
	lines := make([]log.ResultLine, 0, len(rp.Results))
	for _, res := range rp.Results {
		lines = append(lines, res.Line())
	}
	return lines
}

// Err summarises the failures, or returns nil when there are none
func (rp *Report) Err() error {
	failed := rp.Failures()
	if len(failed) == 0 {
		return nil
	}

	parts := make([]string, 0, len(failed))
	for _, res := range failed {
		name := res.Site
		if name == "" {
			name = "current site"
		}
		detail := fmt.Sprintf("exit status %d", res.ExitCode)
		if res.Err != nil {
			detail = res.Err.Error()
		}
		parts = append(parts, fmt.Sprintf("%s (%s): %s", name, res.Operation, detail))
	}

	return errors.Errorf("%d of %d operations failed: %s", len(failed), len(rp.Results), strings.Join(parts, "; "))
}

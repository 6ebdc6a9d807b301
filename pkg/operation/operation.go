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
	"time"

	"github.com/spiritoffootball/cli-tools-for-sof/pkg/log"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/site"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a unit of work that can run against the ambient site or an explicit one
type Operation interface {
	// Name identifies the operation in reports (e.g. "spam comments")
	Name() string
	// Describe is the progress line shown before the operation runs
	Describe() string
	// Execute runs the operation. A nil target means the ambient site.
	Execute(ctx context.Context, target *site.Site) *Result
}

// 📊 Phase is where a sub-operation is in its lifecycle
type Phase int

const (
	PhasePending Phase = iota
	PhaseListing
	PhaseEmpty
	PhaseNonEmpty
	PhaseDeleting
	PhaseDone
	PhaseFailed
)

// String returns a string representation of Phase
func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseListing:
		return "listing"
	case PhaseEmpty:
		return "empty"
	case PhaseNonEmpty:
		return "nonempty"
	case PhaseDeleting:
		return "deleting"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📦 Result is the outcome of one operation on one site
type Result struct {
	Site      string        // Target URL, empty for the ambient site
	Operation string        // Operation name
	Phase     Phase         // Final phase
	History   []Phase       // Every phase entered, in order
	Items     []string      // Identifiers returned by the listing step
	Stdout    string        // Captured stdout of every step
	Stderr    string        // Captured stderr of every step
	ExitCode  int           // First non-zero exit code, or zero
	DryRun    bool          // Whether mutations were skipped
	Err       error         // Why the operation failed
	Duration  time.Duration // Wall time, set by the Runner
}

func newResult(op Operation, target *site.Site) *Result {
	return &Result{
		Site:      targetURL(target),
		Operation: op.Name(),
		Phase:     PhasePending,
		History:   []Phase{PhasePending},
	}
}

func (r *Result) advance(p Phase) {
	r.Phase = p
	r.History = append(r.History, p)
}

func (r *Result) fail(err error) {
	r.advance(PhaseFailed)
	r.Err = err
}

// capture appends a step's output to the result
func (r *Result) capture(res *wpcli.Result) {
	r.Stdout += res.Stdout
	r.Stderr += res.Stderr
	if r.ExitCode == 0 {
		r.ExitCode = res.ExitCode
	}
}

// Success reports whether every step of the operation succeeded
func (r *Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0 && r.Phase != PhaseFailed
}

// Deleted reports whether the operation reached its deletion step
func (r *Result) Deleted() bool {
	for _, p := range r.History {
		if p == PhaseDeleting {
			return true
		}
	}
	return false
}

// Status returns a short word describing the outcome
func (r *Result) Status() string {
	switch {
	case !r.Success():
		return "failed"
	case r.Deleted():
		return "deleted"
	case r.DryRun && len(r.Items) > 0:
		return "listed"
	default:
		return "empty"
	}
}

// Line converts the result for console display
func (r *Result) Line() log.ResultLine {
	line := log.ResultLine{
		Site:      r.Site,
		Operation: r.Operation,
		Status:    r.Status(),
		Items:     len(r.Items),
		Failed:    !r.Success(),
		DryRun:    r.DryRun,
	}
	if r.Err != nil {
		line.Detail = r.Err.Error()
	}
	return line
}

func targetURL(target *site.Site) string {
	if target == nil {
		return ""
	}
	return target.Target()
}

// 🔍 list runs a listing step and decodes the identifiers it returns
func list(ctx context.Context, exec wpcli.Executor, res *Result, inv wpcli.Invocation) ([]string, bool) {
	res.advance(PhaseListing)

	out, err := exec.Run(ctx, inv)
	if err != nil {
		res.fail(errors.Errorf("listing %s: %w", res.Operation, err))
		return nil, false
	}
	res.capture(out)
	if !out.Success() {
		res.fail(&ExecutionError{Command: inv.String(), ExitCode: out.ExitCode, Message: out.ErrorMessage()})
		return nil, false
	}

	ids, err := wpcli.DecodeList(out.Stdout)
	if err != nil {
		res.fail(&ListingError{Operation: res.Operation, Site: res.Site, Err: err})
		return nil, false
	}

	res.Items = ids
	if len(ids) == 0 {
		res.advance(PhaseEmpty)
	} else {
		res.advance(PhaseNonEmpty)
	}
	return ids, true
}

// 🗑️ mutate runs a deletion step, returning an error for a non-zero exit
func mutate(ctx context.Context, exec wpcli.Executor, res *Result, inv wpcli.Invocation) error {
	out, err := exec.Run(ctx, inv)
	if err != nil {
		return errors.Errorf("running %s: %w", inv.String(), err)
	}
	res.capture(out)
	if !out.Success() {
		return &ExecutionError{Command: inv.String(), ExitCode: out.ExitCode, Message: out.ErrorMessage()}
	}
	return nil
}

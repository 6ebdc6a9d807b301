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

	"github.com/rs/zerolog"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/site"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli"
)

// 🧹 SpamType selects what kind of spam to delete
type SpamType int

const (
	SpamComments SpamType = iota // Comments with status spam
	SpamFeedback                 // Jetpack contact form submissions with status spam
)

// SpamTypes lists every type in the order they run for a whole site
var SpamTypes = []SpamType{SpamComments, SpamFeedback}

// String returns the --type value for the spam type
func (t SpamType) String() string {
	switch t {
	case SpamComments:
		return "comment"
	case SpamFeedback:
		return "feedback"
	default:
		return "unknown"
	}
}

// Plural is the human name used in messages
func (t SpamType) Plural() string {
	switch t {
	case SpamComments:
		return "comments"
	default:
		return t.String()
	}
}

// ParseSpamType parses a --type value
func ParseSpamType(s string) (SpamType, error) {
	for _, t := range SpamTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, &ArgumentError{Option: "type", Value: s, Allowed: []string{SpamComments.String(), SpamFeedback.String()}}
}

func (t SpamType) listArgs() []string {
	if t == SpamFeedback {
		return []string{"post", "list", "--post_type=feedback", "--post_status=spam", "--field=ID", "--format=json"}
	}
	return []string{"comment", "list", "--status=spam", "--field=comment_ID", "--format=json"}
}

func (t SpamType) deleteArgs(ids []string) []string {
	var args []string
	if t == SpamFeedback {
		args = append([]string{"post", "delete"}, ids...)
		return append(args, "--force", "--quiet")
	}
	args = append([]string{"comment", "delete"}, ids...)
	return append(args, "--force")
}

// ListInvocation is the wp-cli call that lists spam of this type
func (t SpamType) ListInvocation(target *site.Site) wpcli.Invocation {
	return wpcli.NewInvocation(targetURL(target), t.listArgs()...)
}

// DeleteInvocation is the wp-cli call that deletes the given spam items.
// Deletion always runs isolated, even for the ambient site.
func (t SpamType) DeleteInvocation(target *site.Site, ids []string) wpcli.Invocation {
	return wpcli.NewInvocation(targetURL(target), t.deleteArgs(ids)...).WithIsolation()
}

// 🧹 SpamDelete lists spam items of one type and force-deletes them
type SpamDelete struct {
	kind   SpamType
	exec   wpcli.Executor
	dryRun bool
}

// 🏭 NewSpamDelete creates a spam deletion operation
func NewSpamDelete(exec wpcli.Executor, kind SpamType, dryRun bool) *SpamDelete {
	return &SpamDelete{
		kind:   kind,
		exec:   exec,
		dryRun: dryRun,
	}
}

// Kind returns the spam type this operation deletes
func (op *SpamDelete) Kind() SpamType {
	return op.kind
}

func (op *SpamDelete) Name() string {
	return "spam " + op.kind.Plural()
}

func (op *SpamDelete) Describe() string {
	return "Deleting spam " + op.kind.Plural()
}

// 🏃 Execute lists spam and deletes it when there is any
func (op *SpamDelete) Execute(ctx context.Context, target *site.Site) *Result {
	res := newResult(op, target)
	res.DryRun = op.dryRun
	logger := zerolog.Ctx(ctx).With().Str("operation", op.Name()).Str("site", res.Site).Logger()

	ids, ok := list(ctx, op.exec, res, op.kind.ListInvocation(target))
	if !ok {
		logger.Debug().Err(res.Err).Msg("listing spam failed")
		return res
	}

	if len(ids) == 0 || op.dryRun {
		logger.Debug().Int("items", len(ids)).Bool("dry_run", op.dryRun).Msg("nothing to delete")
		res.advance(PhaseDone)
		return res
	}

	res.advance(PhaseDeleting)
	if err := mutate(ctx, op.exec, res, op.kind.DeleteInvocation(target, ids)); err != nil {
		res.fail(err)
		return res
	}

	logger.Debug().Int("items", len(ids)).Msg("spam deleted")
	res.advance(PhaseDone)
	return res
}

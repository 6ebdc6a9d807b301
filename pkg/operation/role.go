package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/site"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli"
	"gitlab.com/tozd/go/errors"
)

// 🎭 RoleDelete detaches a role from every user holding it, then removes the role
type RoleDelete struct {
	role   string
	exec   wpcli.Executor
	dryRun bool
}

// 🏭 NewRoleDelete creates a role deletion operation
func NewRoleDelete(exec wpcli.Executor, role string, dryRun bool) *RoleDelete {
	return &RoleDelete{
		role:   role,
		exec:   exec,
		dryRun: dryRun,
	}
}

// Role returns the role this operation removes
func (op *RoleDelete) Role() string {
	return op.role
}

func (op *RoleDelete) Name() string {
	return "role " + op.role
}

func (op *RoleDelete) Describe() string {
	return "Deleting role " + op.role
}

// HoldersInvocation lists the IDs of users holding the role
func (op *RoleDelete) HoldersInvocation(target *site.Site) wpcli.Invocation {
	return wpcli.NewInvocation(targetURL(target), "user", "list", "--role="+op.role, "--field=ID", "--format=json")
}

// DetachInvocation removes the role from one user
func (op *RoleDelete) DetachInvocation(target *site.Site, userID string) wpcli.Invocation {
	return wpcli.NewInvocation(targetURL(target), "user", "remove-role", userID, op.role)
}

// RemoveInvocation deletes the role definition
func (op *RoleDelete) RemoveInvocation(target *site.Site) wpcli.Invocation {
	return wpcli.NewInvocation(targetURL(target), "role", "delete", op.role)
}

// 🏃 Execute detaches the role from all holders and removes it.
// A failed detach is recorded but does not stop the remaining steps.
func (op *RoleDelete) Execute(ctx context.Context, target *site.Site) *Result {
	res := newResult(op, target)
	res.DryRun = op.dryRun
	logger := zerolog.Ctx(ctx).With().Str("operation", op.Name()).Str("site", res.Site).Logger()

	holders, ok := list(ctx, op.exec, res, op.HoldersInvocation(target))
	if !ok {
		logger.Debug().Err(res.Err).Msg("listing role holders failed")
		return res
	}

	if op.dryRun {
		res.advance(PhaseDone)
		return res
	}

	res.advance(PhaseDeleting)

	var errs []error
	for _, id := range holders {
		if err := mutate(ctx, op.exec, res, op.DetachInvocation(target, id)); err != nil {
			logger.Debug().Err(err).Str("user", id).Msg("detaching role failed")
			errs = append(errs, err)
		}
	}

	if err := mutate(ctx, op.exec, res, op.RemoveInvocation(target)); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		res.fail(errors.Join(errs...))
		return res
	}

	logger.Debug().Int("holders", len(holders)).Msg("role deleted")
	res.advance(PhaseDone)
	return res
}

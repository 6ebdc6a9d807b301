package commands

import (
	"github.com/spf13/cobra"
	"github.com/spiritoffootball/cli-tools-for-sof/cmd/sof/opts"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/metrics"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/operation"
)

// NewRoleDeleteCmd creates the role-delete command
func NewRoleDeleteCmd(o *opts.RootOpts) *cobra.Command {
	var (
		name   string
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "role-delete",
		Short: "Remove a configured role from all its users, then delete it",
		Long: `Role-delete detaches a role from every user holding it on the current
site and then deletes the role itself. Only roles listed under "roles" in the
config file can be deleted. With --all every configured role is deleted.`,
		Example: `  sof network role-delete --name=sof_coach
  sof network role-delete --all --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			roles, err := selectRoles(o, name, all)
			if err != nil {
				return err
			}
			if len(roles) == 0 {
				o.Logger.Warning("No roles configured.")
				return nil
			}

			rec := metrics.NewRecorder("role-delete")
			runner := o.Runner(rec)

			results := make([]*operation.Result, 0, len(roles))
			for _, role := range roles {
				results = append(results, runner.RunOnCurrentSite(ctx, operation.NewRoleDelete(o.Executor, role, dryRun)))
			}

			return finish(ctx, o, rec, operation.NewReport(results...), roleSuccessMessage(roles, all, dryRun))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "role to delete (must be listed in the config)")
	cmd.Flags().BoolVar(&all, "all", false, "delete every configured role")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list role holders without changing anything")

	return cmd
}

// selectRoles resolves the roles to delete before anything runs
func selectRoles(o *opts.RootOpts, name string, all bool) ([]string, error) {
	if all {
		return o.Config.Roles, nil
	}
	if name == "" {
		return nil, &operation.ArgumentError{Option: "name", Allowed: o.Config.Roles}
	}
	if !o.Config.HasRole(name) {
		return nil, &operation.ArgumentError{Option: "name", Value: name, Allowed: o.Config.Roles}
	}
	return []string{name}, nil
}

func roleSuccessMessage(roles []string, all, dryRun bool) string {
	switch {
	case dryRun:
		return "Dry run complete. Nothing was deleted."
	case all:
		return "All roles deleted."
	default:
		return "Role " + roles[0] + " deleted."
	}
}

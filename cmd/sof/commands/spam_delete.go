package commands

import (
	"github.com/spf13/cobra"
	"github.com/spiritoffootball/cli-tools-for-sof/cmd/sof/opts"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/metrics"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewSpamDeleteCmd creates the spam-delete command
func NewSpamDeleteCmd(o *opts.RootOpts) *cobra.Command {
	var (
		spamType string
		all      bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "spam-delete",
		Short: "Delete spam comments or feedback",
		Long: `Spam-delete removes every comment (or Jetpack feedback item) marked as spam.

Without --all only the current site is cleaned. With --all every site in the
network is cleaned in turn, and both comments and feedback are removed unless
--type is given explicitly.`,
		Example: `  sof network spam-delete
  sof network spam-delete --type=feedback
  sof network spam-delete --all
  sof network spam-delete --all --type=comment --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := operation.ParseSpamType(spamType)
			if err != nil {
				return err
			}

			kinds := []operation.SpamType{kind}
			if all && !cmd.Flags().Changed("type") {
				kinds = operation.SpamTypes
			}

			ops := make([]operation.Operation, 0, len(kinds))
			for _, k := range kinds {
				ops = append(ops, operation.NewSpamDelete(o.Executor, k, dryRun))
			}

			rec := metrics.NewRecorder("spam-delete")
			runner := o.Runner(rec)

			var report *operation.Report
			if all {
				o.Logger.Header("Deleting spam across the network")
				sites, err := o.Enumerator().List(ctx)
				if err != nil {
					rec.Finish(false)
					writeMetrics(ctx, o, rec)
					return errors.Errorf("enumerating sites: %w", err)
				}
				report = runner.RunOnSites(ctx, sites, ops...)
			} else {
				report = operation.NewReport(runner.RunOnCurrentSite(ctx, ops[0]))
			}

			return finish(ctx, o, rec, report, spamSuccessMessage(kinds, dryRun))
		},
	}

	cmd.Flags().StringVar(&spamType, "type", operation.SpamComments.String(), "kind of spam to delete (comment or feedback)")
	cmd.Flags().BoolVar(&all, "all", false, "delete spam on every site in the network")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list spam without deleting it")

	return cmd
}

func spamSuccessMessage(kinds []operation.SpamType, dryRun bool) string {
	if dryRun {
		return "Dry run complete. Nothing was deleted."
	}
	if len(kinds) == 1 {
		return "All spam " + kinds[0].Plural() + " deleted."
	}
	return "All spam deleted."
}

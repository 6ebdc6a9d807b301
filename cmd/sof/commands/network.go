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

package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spiritoffootball/cli-tools-for-sof/cmd/sof/opts"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/metrics"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/operation"
)

// NewNetworkCmd creates the network command group
func NewNetworkCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Maintenance across the multisite network",
		Long: `Network commands act on the current site, or on every site in the
multisite network when --all is given.`,
	}

	cmd.AddCommand(
		NewSpamDeleteCmd(o),
		NewRoleDeleteCmd(o),
	)

	return cmd
}

// finish publishes the report and turns it into the command's outcome
func finish(ctx context.Context, o *opts.RootOpts, rec *metrics.Recorder, report *operation.Report, successMsg string) error {
	if len(report.Results) > 1 {
		o.Logger.Summary(report.Lines())
	}

	rec.Finish(report.Success())
	writeMetrics(ctx, o, rec)

	if err := report.Err(); err != nil {
		return err
	}

	o.Logger.Success(successMsg)
	return nil
}

// writeMetrics writes the textfile when one is configured; failures are only warned about
func writeMetrics(ctx context.Context, o *opts.RootOpts, rec *metrics.Recorder) {
	if o.Config.MetricsFile == "" {
		return
	}
	if err := rec.WriteTextfile(ctx, o.Config.MetricsFile); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("metrics not written")
		o.Logger.Warning(err.Error())
	}
}

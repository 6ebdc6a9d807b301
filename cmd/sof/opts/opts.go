package opts

import (
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/config"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/log"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/operation"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/site"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config   *config.Config
	Executor wpcli.Executor
	Logger   *log.Logger
}

// Enumerator returns a site enumerator honouring the configured filter
func (o *RootOpts) Enumerator() *site.Enumerator {
	return site.NewEnumerator(o.Executor, o.Config.SiteFilter())
}

// Runner returns a runner that reports to the console logger and the observer
func (o *RootOpts) Runner(observer operation.Observer) *operation.Runner {
	return operation.NewRunner(operation.Options{
		Logger:      o.Logger,
		Observer:    observer,
		AmbientSite: o.Config.WP.URL,
	})
}

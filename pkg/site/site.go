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

// Package site enumerates the sites of a WordPress multisite network.
package site

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli"
	"gitlab.com/tozd/go/errors"
)

// 🌐 Site is one tenant of the network, identified by its URL
type Site struct {
	URL string
}

// String returns the URL as enumerated
func (s Site) String() string {
	return s.URL
}

// Target returns the URL to pass as a --url override, without a trailing slash
func (s Site) Target() string {
	return strings.TrimRight(s.URL, "/")
}

// ❌ EnumerationError is returned when the site listing cannot be decoded
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return "failed to decode JSON: " + e.Err.Error()
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// 🔍 Filter narrows the enumerated sites with glob patterns matched against the URL.
// An empty Include keeps everything; Exclude always wins.
type Filter struct {
	Include []string
	Exclude []string
}

// Validate checks that every pattern is well formed
func (f Filter) Validate() error {
	for _, p := range append(append([]string{}, f.Include...), f.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid site pattern %q", p)
		}
	}
	return nil
}

// Match reports whether the site passes the filter
func (f Filter) Match(s Site) bool {
	url := s.Target()
	for _, p := range f.Exclude {
		if ok, _ := doublestar.Match(p, url); ok {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, p := range f.Include {
		if ok, _ := doublestar.Match(p, url); ok {
			return true
		}
	}
	return false
}

// 📋 Enumerator lists the sites of the network
type Enumerator struct {
	exec   wpcli.Executor
	filter Filter
}

// 🏭 NewEnumerator creates an enumerator backed by the given executor
func NewEnumerator(exec wpcli.Executor, filter Filter) *Enumerator {
	return &Enumerator{
		exec:   exec,
		filter: filter,
	}
}

// ListInvocation is the wp-cli call used to list site URLs
func ListInvocation() wpcli.Invocation {
	return wpcli.NewInvocation("", "site", "list", "--field=url", "--format=json")
}

// List returns the network's sites in the order wp-cli reports them
func (e *Enumerator) List(ctx context.Context) ([]Site, error) {
	logger := zerolog.Ctx(ctx)

	res, err := e.exec.Run(ctx, ListInvocation())
	if err != nil {
		return nil, errors.Errorf("listing sites: %w", err)
	}
	if !res.Success() {
		return nil, errors.Errorf("listing sites: %s", res.ErrorMessage())
	}

	urls, err := wpcli.DecodeList(res.Stdout)
	if err != nil {
		return nil, &EnumerationError{Err: err}
	}

	sites := make([]Site, 0, len(urls))
	for _, url := range urls {
		s := Site{URL: url}
		if !e.filter.Match(s) {
			logger.Debug().Str("site", url).Msg("site excluded by filter")
			continue
		}
		sites = append(sites, s)
	}

	logger.Debug().Int("listed", len(urls)).Int("selected", len(sites)).Msg("enumerated sites")

	return sites, nil
}

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

package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// hclConfig is the HCL schema; blocks are optional
type hclConfig struct {
	WP *struct {
		Binary *string  `hcl:"binary"`
		Path   *string  `hcl:"path"`
		URL    *string  `hcl:"url"`
		Args   []string `hcl:"args,optional"`
	} `hcl:"wp,block"`
	Roles []string `hcl:"roles,optional"`
	Sites *struct {
		Include []string `hcl:"include,optional"`
		Exclude []string `hcl:"exclude,optional"`
	} `hcl:"sites,block"`
	MetricsFile *string `hcl:"metrics_file"`
}

// loadHCL loads a configuration from HCL data.
// Expressions may reference env.<NAME>.
func loadHCL(data []byte, filename string, env Env) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": env.ctyValue(),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Default()
	if hclCfg.WP != nil {
		setString(&cfg.WP.Binary, hclCfg.WP.Binary)
		setString(&cfg.WP.Path, hclCfg.WP.Path)
		setString(&cfg.WP.URL, hclCfg.WP.URL)
		cfg.WP.Args = hclCfg.WP.Args
	}
	cfg.Roles = hclCfg.Roles
	if hclCfg.Sites != nil {
		cfg.Sites.Include = hclCfg.Sites.Include
		cfg.Sites.Exclude = hclCfg.Sites.Exclude
	}
	setString(&cfg.MetricsFile, hclCfg.MetricsFile)

	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// 🌱 Env is the set of variables visible to the config: a dotenv file overlaid by the process environment
type Env map[string]string

// ReadEnv reads the dotenv file, if present, and overlays os.Environ on top of it.
// A missing file is only an error when required is true.
func ReadEnv(path string, required bool) (Env, error) {
	env := Env{}

	if path != "" {
		vars, err := godotenv.Read(path)
		switch {
		case err == nil:
			for k, v := range vars {
				env[k] = v
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return nil, errors.Errorf("reading env file %s: %w", path, err)
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}

	return env, nil
}

// Lookup returns the value of a variable
func (e Env) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// ctyValue exposes the variables as the HCL `env` object
func (e Env) ctyValue() cty.Value {
	if len(e) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(e))
	for k, v := range e {
		vals[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vals)
}

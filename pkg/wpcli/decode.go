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

package wpcli

import (
	"encoding/json"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔍 DecodeList decodes the output of a `--field=<x> --format=json` listing.
//
// wp-cli emits either strings (comment_ID, url) or numbers (ID) depending on
// the field, so both are accepted and returned as strings in listing order.
// A JSON null decodes to an empty list.
func DecodeList(payload string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON array")
	}

	out := make([]string, 0, len(raw))
	for i, v := range raw {
		switch val := v.(type) {
		case string:
			out = append(out, val)
		case json.Number:
			out = append(out, val.String())
		default:
			return nil, errors.Errorf("element %d: expected string or number, got %T", i, v)
		}
	}

	return out, nil
}

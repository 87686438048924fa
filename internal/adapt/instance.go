// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package adapt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dacolabs/shapes/internal/jschema"
)

// ErrParse indicates a specification is not a valid JSON document.
var ErrParse = jschema.ErrParse

// parseInstance validates a JSON instance document. When it is an array the
// raw items are returned alongside isArray.
func parseInstance(spec string) (items []json.RawMessage, isArray bool, err error) {
	data := bytes.TrimSpace([]byte(spec))
	if !json.Valid(data) {
		return nil, false, fmt.Errorf("%w: invalid JSON instance", ErrParse)
	}
	if len(data) == 0 || data[0] != '[' {
		return nil, false, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return items, true, nil
}

func compact(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	return buf.String(), nil
}

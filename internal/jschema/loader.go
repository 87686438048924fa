// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a specification document.
type Format int

// Supported document formats.
const (
	JSON Format = iota
	YAML
)

// FormatFromPath returns YAML for .yaml/.yml paths and JSON otherwise.
func FormatFromPath(p string) Format {
	if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
		return YAML
	}
	return JSON
}

// Loader reads specification documents from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile reads a specification document and returns it as compact JSON
// text. YAML documents are converted, JSON documents are validated.
func (l *Loader) LoadFile(filePath string) (string, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return ToJSON(data, FormatFromPath(filePath))
}

// ToJSON converts a document in the given format to compact JSON text.
// JSON input keeps its bytes apart from insignificant whitespace. YAML input
// keeps mapping key order and the literal text of numbers.
func ToJSON(data []byte, format Format) (string, error) {
	if format != YAML {
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return "", fmt.Errorf("%w: %v", ErrParse, err)
		}
		return buf.String(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	var buf bytes.Buffer
	if err := writeNode(&buf, &doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	return buf.String(), nil
}

func writeNode(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, n.Content[0])
	case yaml.AliasNode:
		return writeNode(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.ScalarNode:
		return writeScalar(buf, n)
	}
	return fmt.Errorf("unsupported yaml node at line %d", n.Line)
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!str":
		out, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(out)
		return nil
	case "!!int", "!!float":
		// Literals such as 0x1F or 1_000 are valid YAML but not JSON.
		if json.Valid([]byte(n.Value)) {
			buf.WriteString(n.Value)
			return nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(out)
	return nil
}

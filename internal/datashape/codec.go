// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package datashape

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrCodec indicates a specification could not be compressed or decompressed.
var ErrCodec = errors.New("specification codec error")

// Codec names accepted in the compression metadata key.
const (
	CodecGzip = "gzip"
	CodecZstd = "zstd"
)

type codec struct {
	compress   func([]byte) ([]byte, error)
	decompress func([]byte) ([]byte, error)
}

var codecs = map[string]codec{
	CodecGzip: {compress: gzipCompress, decompress: gzipDecompress},
	CodecZstd: {compress: zstdCompress, decompress: zstdDecompress},
}

// Codecs returns the supported codec names in sorted order.
func Codecs() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsCodec reports whether name is a supported codec.
func IsCodec(name string) bool {
	return slices.Contains(Codecs(), name)
}

// IsCompressed reports whether d's specification is stored compressed.
func (d DataShape) IsCompressed() bool {
	_, ok := d.Metadata[MetaCompression]
	return ok
}

// Compress returns a copy of d whose specification is compressed with the
// named codec and base64 encoded. Shapes that are already compressed or have
// no specification are returned as is.
func Compress(d DataShape, name string) (DataShape, error) {
	if d.IsCompressed() || d.Specification == "" {
		return d, nil
	}
	c, ok := codecs[name]
	if !ok {
		return d, fmt.Errorf("%w: unknown codec %q", ErrCodec, name)
	}
	data, err := c.compress([]byte(d.Specification))
	if err != nil {
		return d, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	return d.WithSpecification(base64.StdEncoding.EncodeToString(data)).
		WithMetadata(MetaCompression, name), nil
}

// Decompress returns a copy of d with a plain specification. Variants are
// decompressed as well. Uncompressed shapes are returned as is.
func Decompress(d DataShape) (DataShape, error) {
	out, err := decompressOne(d)
	if err != nil {
		return d, err
	}
	if len(out.Variants) == 0 {
		return out, nil
	}
	variants := make([]DataShape, len(out.Variants))
	for i, v := range out.Variants {
		if variants[i], err = decompressOne(v); err != nil {
			return d, err
		}
	}
	out.Variants = variants
	return out, nil
}

func decompressOne(d DataShape) (DataShape, error) {
	name, ok := d.Metadata[MetaCompression]
	if !ok {
		return d, nil
	}
	c, ok := codecs[name]
	if !ok {
		return d, fmt.Errorf("%w: unknown codec %q", ErrCodec, name)
	}
	raw, err := base64.StdEncoding.DecodeString(d.Specification)
	if err != nil {
		return d, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	data, err := c.decompress(raw)
	if err != nil {
		return d, fmt.Errorf("%w: %v", ErrCodec, err)
	}
	return d.WithSpecification(string(data)).WithoutMetadata(MetaCompression), nil
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close() //nolint:errcheck
	return io.ReadAll(r)
}

func zstdCompress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close() //nolint:errcheck
	return enc.EncodeAll(data, nil), nil
}

func zstdDecompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

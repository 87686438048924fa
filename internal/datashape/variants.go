// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package datashape

// ExtractVariants lists the representations a shape derived from src must
// keep so every previously known form stays reachable. promoted is the
// representation of src the new shape was built from and role is the variant
// tag it is recorded under.
//
// The result holds promoted (tagged role), src itself when it differs from
// promoted, and the remaining variants of src. Everything is flattened.
func ExtractVariants(src, promoted DataShape, role string) []DataShape {
	out := make([]DataShape, 0, len(src.Variants)+2)
	out = append(out, promoted.Flat().WithMetadata(MetaVariant, role))
	if !src.Equal(promoted) {
		out = append(out, src.Flat())
	}
	for _, v := range src.Variants {
		if v.Equal(promoted) {
			continue
		}
		out = append(out, v.Flat())
	}
	return out
}

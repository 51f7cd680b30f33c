// Package variant derives the identity of a product variant from the
// attribute values it was composed from: the SKU shown to sellers and the
// option signature used for duplicate detection.
package variant

import (
	"sort"
	"strings"
)

// Selection is one resolved attribute-value pair, e.g. {color, red}.
type Selection struct {
	AttributeCode string
	ValueCode     string
}

// Canonicalize returns the selections sorted lexicographically by attribute
// code, then value code. Both SKU and Signature derive from canonical order,
// so callers may submit attribute-value ids in any order and still get a
// stable identity.
func Canonicalize(selections []Selection) []Selection {
	out := make([]Selection, len(selections))
	copy(out, selections)
	sort.Slice(out, func(i, j int) bool {
		if out[i].AttributeCode != out[j].AttributeCode {
			return out[i].AttributeCode < out[j].AttributeCode
		}
		return out[i].ValueCode < out[j].ValueCode
	})
	return out
}

// SKU builds the variant SKU from the product slug and the value codes of
// the canonicalized selections, e.g. "t-shirt-red-large".
func SKU(productSlug string, selections []Selection) string {
	var b strings.Builder
	b.WriteString(productSlug)
	for _, s := range Canonicalize(selections) {
		b.WriteByte('-')
		b.WriteString(s.ValueCode)
	}
	return b.String()
}

// Signature builds the canonical option signature for the selections,
// e.g. "color:red;size:large;". Two variants of the same product must not
// share a signature.
func Signature(selections []Selection) string {
	var b strings.Builder
	for _, s := range Canonicalize(selections) {
		b.WriteString(s.AttributeCode)
		b.WriteByte(':')
		b.WriteString(s.ValueCode)
		b.WriteByte(';')
	}
	return b.String()
}

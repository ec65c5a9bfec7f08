// Package submit turns job descriptions into submitted clusters. A
// Description is a flat attribute map, optionally repeated per item of
// validated item data, and every submission happens inside a
// Transaction holding the scheduler endpoint open.
package submit

import (
	"fmt"
	"sort"
	"strings"
)

// Description is a submit description: attribute names mapped to their
// raw string values, exactly as the queueing service consumes them.
type Description map[string]string

// Copy returns an independent copy of the description.
func (d Description) Copy() Description {
	out := make(Description, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// String renders the description one attribute per line, sorted by
// name, in the service's submit-file syntax.
func (d Description) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s = %s", k, d[k])
	}
	return b.String()
}

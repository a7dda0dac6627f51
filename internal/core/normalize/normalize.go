// Package normalize cleans notification text before it is matched
// Pipeline order
// 1 Sanitize drop control bytes and invalid UTF-8
// 2 Unicode NFKC, which also maps NBSP and narrow NBSP to a plain space
// 3 Remove format chars (ZWJ, ZWNJ, BOM, bidi marks)
// 4 Width fold fullwidth forms to ASCII
// 5 Collapse every whitespace run to one space and trim
// Case and accents are kept since sender names are forwarded as written
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Clean returns s in the form the payment parser matches against
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// transform only fails on malformed input, which Sanitize already dropped
		ns = s
	}
	return strings.Join(strings.Fields(ns), " ")
}

// Join cleans each part and joins the non-empty ones with a single space
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := Clean(p); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

// Package attr parses and resolves nserde struct-tag attributes: the
// shared attribute model every format's derive back-end consults (spec
// §4.2). The tag scanner here is grounded on the teacher's
// gomap/tags.go ParseStructTag (comma-separated key[=value] pairs with
// quote-aware splitting), generalized to the attribute set this spec
// defines instead of the teacher's own tony-specific tag vocabulary.
package attr

import "strings"

// rawOption is one comma-separated piece of an `nserde:"..."` tag, before
// it is matched against the known attribute names.
type rawOption struct {
	Key   string
	Value string
	HasValue bool
}

// splitTag tokenizes the content of an nserde struct tag into raw
// key[=value] options. Values may be single-quoted to embed a comma or an
// '=' (mirrors the teacher's quote-aware comma splitting).
func splitTag(tag string) []rawOption {
	var opts []rawOption
	var cur strings.Builder
	inQuote := false
	flush := func() {
		part := strings.TrimSpace(cur.String())
		cur.Reset()
		if part == "" {
			return
		}
		if i := strings.IndexByte(part, '='); i >= 0 {
			val := strings.TrimSpace(part[i+1:])
			val = strings.Trim(val, `"'`)
			opts = append(opts, rawOption{Key: strings.TrimSpace(part[:i]), Value: val, HasValue: true})
			return
		}
		opts = append(opts, rawOption{Key: part})
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '\'' || c == '"':
			inQuote = !inQuote
			cur.WriteByte(c)
		case c == ',' && !inQuote:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return opts
}

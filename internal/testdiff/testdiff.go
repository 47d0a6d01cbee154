// Package testdiff renders a readable diff between two wire strings for
// use in test failure messages in the json and ron golden tests. Grounded
// on the teacher's own libdiff/object.go, which drives
// github.com/sergi/go-diff/diffmatchpatch the same way: build a
// diffmatchpatch.DiffMatchPatch, run DiffMain, then work from the
// resulting op list.
package testdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Text returns a human-readable diff of want vs got, with [-want-]/{+got+}
// markers around each differing span and unchanged text passed through
// verbatim. Returns "" when want == got.
func Text(want, got string) string {
	if want == got {
		return ""
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			fmt.Fprintf(&b, "[-%s-]", d.Text)
		case diffpatch.DiffInsert:
			fmt.Fprintf(&b, "{+%s+}", d.Text)
		case diffpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

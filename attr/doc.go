// See set.go for the Set type and Parse entry point; this file only
// carries the package doc comment.
package attr

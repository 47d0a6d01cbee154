// Package ir — see value.go for the Value type. This file only carries
// the package doc comment, matching the teacher's convention of a
// dedicated doc.go per package (see the teacher's own ir/doc.go,
// encode/doc.go, parse/doc.go).
package ir

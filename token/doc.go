// See cursor.go, number.go and string.go for the primitives this package
// exports; this file only carries the package doc comment (teacher
// convention, see e.g. the teacher's token/doc.go-equivalent header on
// tokenizer.go).
package token

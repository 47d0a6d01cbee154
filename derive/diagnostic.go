package derive

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/nserde/nserde-go/token"
)

// SyntaxError is returned by every format's parser on malformed input; it
// carries enough of the source to render a caret-pointed snippet (spec
// §7: "parse errors report line, column and a pointer into the source").
type SyntaxError struct {
	Format string // "json" or "ron"
	Pos    token.Pos
	Line   int
	Col    int
	Source []byte
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("nserde: %s:%d:%d: %s", e.Format, e.Line, e.Col, e.Reason)
}

// colorCapable mirrors the teacher's own terminal-capability check before
// handing output to fatih/color: only colorize a real TTY, never a file
// or pipe redirect.
func colorCapable(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatDiagnostic renders err as a human-facing diagnostic onto w,
// colorized when w is a terminal. Non-SyntaxError values fall back to a
// plain Error() line.
func FormatDiagnostic(w io.Writer, err error) {
	se, ok := err.(*SyntaxError)
	if !ok {
		fmt.Fprintln(w, err.Error())
		return
	}
	plain := !colorCapable(w)
	red := color.New(color.FgRed, color.Bold)
	faint := color.New(color.Faint)
	if plain {
		red.DisableColor()
		faint.DisableColor()
	}

	red.Fprintf(w, "error: %s\n", se.Reason)
	faint.Fprintf(w, "  --> %s:%d:%d\n", se.Format, se.Line, se.Col)
	fmt.Fprintln(w, "   |")
	src := se.Source
	pos := int(se.Pos)
	if pos > len(src) {
		pos = len(src)
	}
	start := bytes.LastIndexByte(src[:pos], '\n') + 1
	end := len(src)
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		end = pos + i
	}
	fmt.Fprintf(w, "%3d| %s\n", se.Line, src[start:end])
	fmt.Fprintf(w, "   | %s%s\n", pad(se.Col-1), red.Sprint("^"))
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

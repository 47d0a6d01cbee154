package binary

import "fmt"

// UnexpectedEOFError reports a read past the end of the input buffer —
// the binary format carries no self-describing length for the document
// as a whole, so a truncated buffer can only be caught this way.
type UnexpectedEOFError struct {
	Want int
	Have int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("nserde/binary: unexpected end of input: need %d more byte(s), have %d", e.Want, e.Have)
}

// InvalidTagError reports a tag value read from the wire that is out of
// range for what it's supposed to select: an option tag byte that is
// neither 0 nor 1, or a union variant index beyond the registered variants.
type InvalidTagError struct {
	Tag uint32
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("nserde/binary: invalid tag %d", e.Tag)
}

// InvalidUTF8Error reports a length-prefixed string whose bytes are not
// valid UTF-8.
type InvalidUTF8Error struct{}

func (e *InvalidUTF8Error) Error() string {
	return "nserde/binary: string bytes are not valid utf-8"
}

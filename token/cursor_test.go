package token

import "testing"

func TestCursorPeekNext(t *testing.T) {
	c := NewCursor([]byte("ab"))
	b, ok := c.Peek()
	if !ok || b != 'a' {
		t.Fatalf("Peek() = %q, %v", b, ok)
	}
	b, ok = c.Next()
	if !ok || b != 'a' {
		t.Fatalf("Next() = %q, %v", b, ok)
	}
	if c.Off != 1 {
		t.Fatalf("Off = %d, want 1", c.Off)
	}
	if _, ok := c.PeekAt(0); !ok {
		t.Fatalf("PeekAt(0) should see 'b'")
	}
	c.Next()
	if !c.Eof() {
		t.Fatalf("expected eof")
	}
}

func TestCursorExpectSkipWhile(t *testing.T) {
	c := NewCursor([]byte("   xyz"))
	c.SkipWhile(IsJSONSpace)
	if c.Off != 3 {
		t.Fatalf("Off = %d, want 3", c.Off)
	}
	if !c.Expect('x') {
		t.Fatalf("Expect('x') failed")
	}
	if c.Expect('q') {
		t.Fatalf("Expect('q') should fail")
	}
}

func TestCursorLineCol(t *testing.T) {
	c := NewCursor([]byte("ab\ncd\nef"))
	line, col := c.LineCol(Pos(6))
	if line != 3 || col != 1 {
		t.Fatalf("LineCol = (%d,%d), want (3,1)", line, col)
	}
}

func TestScanNumber(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		isFloat  bool
		wantErr  bool
	}{
		{"123", 3, false, false},
		{"-123abc", 4, false, false},
		{"1.5e10x", 6, true, false},
		{"0", 1, false, false},
		{"01", 0, false, true},
		{"abc", 0, false, true},
	}
	for _, tt := range tests {
		n, isFloat, err := ScanNumber([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("ScanNumber(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if n != tt.n || isFloat != tt.isFloat {
			t.Errorf("ScanNumber(%q) = (%d,%v), want (%d,%v)", tt.in, n, isFloat, tt.n, tt.isFloat)
		}
	}
}

func TestUnescapeJSONSurrogatePair(t *testing.T) {
	// U+1F600 (GRINNING FACE) as its UTF-16 surrogate pair escape.
	input := "\\ud83d\\ude00"
	got, err := UnescapeJSON([]byte(input), false)
	if err != nil {
		t.Fatalf("UnescapeJSON: %v", err)
	}
	if got != "\U0001F600" {
		t.Fatalf("got %q, want grinning face", got)
	}
}

func TestUnescapeJSONBasic(t *testing.T) {
	got, err := UnescapeJSON([]byte(`a\nb\tc\"d`), false)
	if err != nil {
		t.Fatalf("UnescapeJSON: %v", err)
	}
	if got != "a\nb\tc\"d" {
		t.Fatalf("got %q", got)
	}
}

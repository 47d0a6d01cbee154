package json

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nserde/nserde-go/internal/testdiff"
)

type golden struct {
	Name string
	Tags []string
}

func TestMarshalIsPrettyCompactEquivalent(t *testing.T) {
	src := golden{Name: "ada", Tags: []string{"x", "y"}}
	compact, err := Marshal(src)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	pretty, err := MarshalIndent(src, "  ")
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	var a, b golden
	if err := Unmarshal(compact, &a); err != nil {
		t.Fatalf("Unmarshal(compact): %v", err)
	}
	if err := Unmarshal(pretty, &b); err != nil {
		t.Fatalf("Unmarshal(pretty): %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("compact/pretty round trips diverge (-compact +pretty):\n%s", diff)
	}
}

func TestMarshalGoldenOutput(t *testing.T) {
	out, err := Marshal(golden{Name: "ada", Tags: []string{"x", "y"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"Name":"ada","Tags":["x","y"]}`
	if string(out) != want {
		t.Fatalf("output mismatch:\n%s", testdiff.Text(want, string(out)))
	}
}

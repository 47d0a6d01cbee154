package attr

import (
	"errors"
	"testing"
)

func TestParseFieldAttrs(t *testing.T) {
	s, err := Parse("default,rename=type", FieldScope)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !s.Default {
		t.Errorf("expected Default")
	}
	if s.Rename != "type" {
		t.Errorf("Rename = %q, want type", s.Rename)
	}
}

func TestParseContainerDefaultExpr(t *testing.T) {
	s, err := Parse(`default='Point{X: 1}'`, ContainerScope)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.DefaultExpr != "Point{X: 1}" {
		t.Errorf("DefaultExpr = %q", s.DefaultExpr)
	}
}

func TestParseUnknownAttribute(t *testing.T) {
	_, err := Parse("bogus", FieldScope)
	var uae *UnknownAttributeError
	if !errors.As(err, &uae) {
		t.Fatalf("expected UnknownAttributeError, got %v", err)
	}
}

func TestParseInvalidScope(t *testing.T) {
	_, err := Parse("transparent", FieldScope)
	var ise *InvalidScopeError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidScopeError, got %v", err)
	}

	_, err = Parse("tuple", FieldScope)
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidScopeError for tuple on field, got %v", err)
	}
}

func TestParseSkipImpliesDefault(t *testing.T) {
	s, err := Parse("skip", FieldScope)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !s.Skip || !s.Default {
		t.Errorf("skip should imply default: %+v", s)
	}
}

func TestSplitTagQuotedValue(t *testing.T) {
	opts := splitTag(`rename='a,b=c',skip`)
	if len(opts) != 2 {
		t.Fatalf("got %d opts, want 2: %+v", len(opts), opts)
	}
	if opts[0].Key != "rename" || opts[0].Value != "a,b=c" {
		t.Errorf("opts[0] = %+v", opts[0])
	}
	if opts[1].Key != "skip" {
		t.Errorf("opts[1] = %+v", opts[1])
	}
}

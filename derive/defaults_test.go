package derive

import (
	"reflect"
	"testing"

	"github.com/nserde/nserde-go/attr"
)

type retryPolicy struct {
	Attempts int32
}

func TestEvalDefaultExprLiteral(t *testing.T) {
	rv, err := EvalDefaultExpr("3", reflect.TypeOf(int32(0)))
	if err != nil {
		t.Fatalf("EvalDefaultExpr: %v", err)
	}
	if rv.Int() != 3 {
		t.Fatalf("got %v, want 3", rv.Int())
	}
}

func TestDefaultWithConstructor(t *testing.T) {
	RegisterDefaultConstructor("retryPolicy.standard", func() any {
		return retryPolicy{Attempts: 5}
	})
	rv, err := CallDefaultConstructor("retryPolicy.standard", reflect.TypeOf(retryPolicy{}))
	if err != nil {
		t.Fatalf("CallDefaultConstructor: %v", err)
	}
	got := rv.Interface().(retryPolicy)
	if got.Attempts != 5 {
		t.Fatalf("got %+v, want Attempts=5", got)
	}
}

func TestResolveContainerDefaultPrefersDefaultWith(t *testing.T) {
	RegisterDefaultConstructor("retryPolicy.standard", func() any {
		return retryPolicy{Attempts: 5}
	})
	c := attr.Set{DefaultWith: "retryPolicy.standard", DefaultExpr: "0"}
	rv, err := ResolveContainerDefault(reflect.TypeOf(retryPolicy{}), c)
	if err != nil {
		t.Fatalf("ResolveContainerDefault: %v", err)
	}
	if rv.Interface().(retryPolicy).Attempts != 5 {
		t.Fatalf("got %+v, want default_with to win over default", rv.Interface())
	}
}

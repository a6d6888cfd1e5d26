package validation

import (
	"errors"
	"testing"
)

func TestViolationsErr(t *testing.T) {
	v := Violations{}
	if err := v.Err(); err != nil {
		t.Fatalf("empty violations should be nil error, got %v", err)
	}

	Required("name", "  ", v)
	NonNegativeFloat("price", -1, v)
	PositiveInt("quantity", 0, v)
	err := v.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if verr.Violations["name"] != "required" || verr.Violations["price"] != "must_be_non_negative" || verr.Violations["quantity"] != "must_be_positive" {
		t.Fatalf("unexpected violations: %+v", verr.Violations)
	}
}

func TestValidatorsAcceptBoundaryValues(t *testing.T) {
	v := Violations{}
	Required("name", "ok", v)
	NonNegativeFloat("price", 0, v)
	PositiveInt("quantity", 1, v)
	if !v.Empty() {
		t.Fatalf("expected no violations, got %+v", v)
	}
}

package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	meta := MetadataFor(CodeValidation)
	if meta.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", meta.HTTPStatus)
	}
	if meta.Retryable {
		t.Fatal("validation errors are not retryable")
	}

	unknown := MetadataFor(Code("SOMETHING_ELSE"))
	if unknown.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes fall back to internal, got %d", unknown.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("row locked")
	err := Wrap(CodeDependency, cause, "allocating order number")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped cause should survive errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", err.Code())
	}
	if err.Error() != "DEPENDENCY_ERROR: allocating order number" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestAsUnwrapsThroughFmt(t *testing.T) {
	inner := New(CodeNotFound, "brand missing")
	wrapped := fmt.Errorf("recording purchase: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", typed.Code())
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not convert")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad amount").WithDetails(map[string]string{"cash": "must be numeric"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["cash"] != "must be numeric" {
		t.Fatalf("unexpected details: %v", err.Details())
	}
}

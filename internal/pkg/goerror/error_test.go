package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("timer not found")

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is(err, ErrNotFound)")
	}
	if !HasCode(err, CodeNotFound) {
		t.Fatal("expected CodeNotFound")
	}

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatal("expected *Error")
	}
	if gerr.Msg() != "timer not found" {
		t.Fatalf("msg = %q", gerr.Msg())
	}
	if gerr.Type() != TypeBusiness {
		t.Fatalf("type = %s", gerr.Type())
	}
	if gerr.StatusCode() != http.StatusNotFound {
		t.Fatalf("status = %d", gerr.StatusCode())
	}
}

func TestNewInvalidInput_Fields(t *testing.T) {
	err := NewInvalidInput(nil, "address", "is required", "dangling")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatal("expected *Error")
	}
	if got := gerr.Fields()["address"]; got != "is required" {
		t.Fatalf("fields[address] = %q", got)
	}
	if len(gerr.Fields()) != 1 {
		t.Fatalf("fields = %v", gerr.Fields())
	}
	if gerr.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", gerr.StatusCode())
	}
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{name: "plain error", err: errors.New("boom"), code: CodeInternal, want: false},
		{name: "server", err: NewServer(errors.New("boom")), code: CodeInternal, want: true},
		{name: "business mismatch", err: NewBusiness("x", CodeNotFound), code: CodeInvalidInput, want: false},
		{name: "nil", err: nil, code: CodeNotFound, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Fatalf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_ErrorFallbacks(t *testing.T) {
	if got := NewServer(nil).Error(); got != "Internal server error" {
		t.Fatalf("server error message = %q", got)
	}
	if got := (&Error{errType: TypeValidation}).Error(); got != "Validation violation" {
		t.Fatalf("validation fallback = %q", got)
	}
}

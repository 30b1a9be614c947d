package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestVersionEmbedded(t *testing.T) {
	if strings.TrimSpace(Version) == "" {
		t.Fatal("Version is empty")
	}
}

func TestErrorMessage(t *testing.T) {
	sentinel := NewError("bad thing")

	if got, want := sentinel.Error(), "bad thing"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := sentinel.Wrap(fmt.Errorf("cause"))
	if got, want := wrapped.Error(), "bad thing: cause"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorIsSentinel(t *testing.T) {
	sentinel := NewError("bad thing")
	derived := sentinel.
		Wrap(fmt.Errorf("cause")).
		With(slog.String("key", "value"))

	if !errors.Is(derived, sentinel) {
		t.Error("derived error does not match its sentinel")
	}

	other := NewError("other thing")
	if errors.Is(derived, other) {
		t.Error("derived error matches an unrelated sentinel")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("cause")
	wrapped := NewError("bad thing").Wrap(cause)

	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error does not match its cause")
	}
}

func TestErrorWithIsImmutable(t *testing.T) {
	sentinel := NewError("bad thing")
	_ = sentinel.With(slog.String("key", "value"))

	if got := sentinel.LogValue().Group(); len(got) != 1 {
		t.Errorf("sentinel gained attributes: %v", got)
	}
}

func TestWrapError(t *testing.T) {
	plain := fmt.Errorf("plain")

	wrapped := WrapError(plain)
	if got, want := wrapped.Error(), "plain"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	already := NewError("typed")
	if WrapError(already) != already {
		t.Error("WrapError re-wrapped a typed error")
	}
}

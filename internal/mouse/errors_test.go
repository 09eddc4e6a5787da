package mouse

import (
	"errors"
	"testing"
)

func TestPlatformErrorWrapsCause(t *testing.T) {
	cause := errors.New("access denied")
	err := platformErr(RawEnableFailed, "RegisterRawInputDevices", cause)

	if !errors.Is(err, cause) {
		t.Error("expected the cause to unwrap")
	}
	var perr *PlatformError
	if !errors.As(err, &perr) {
		t.Fatal("expected a *PlatformError")
	}
	if perr.Kind != RawEnableFailed || perr.Op != "RegisterRawInputDevices" {
		t.Errorf("unexpected error fields: %+v", perr)
	}
}

func TestErrorKindStrings(t *testing.T) {
	kinds := map[ErrorKind]string{
		LockFailed:       "lock failed",
		WarpFailed:       "warp failed",
		RawEnableFailed:  "raw enable failed",
		RawDisableFailed: "raw disable failed",
		InvalidWindow:    "invalid window",
	}
	for kind, want := range kinds {
		if kind.String() != want {
			t.Errorf("kind %d: expected %q, got %q", kind, want, kind.String())
		}
	}
}

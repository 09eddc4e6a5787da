//go:build !windows && !linux && !darwin

package mouse

// Stub backend for platforms without raw mouse support.

// StubBackend fails every hold request with ErrUnsupportedPlatform.
type StubBackend struct{}

func NewStubBackend() *StubBackend {
	return &StubBackend{}
}

func (b *StubBackend) Name() string { return "unsupported" }

func (b *StubBackend) LockCursor(Window) error {
	return platformErr(LockFailed, "lock cursor", ErrUnsupportedPlatform)
}

func (b *StubBackend) UnlockCursor(Window) error {
	return nil
}

func (b *StubBackend) WarpCursorToCenter(w Window) (Point, error) {
	return centerOf(w)
}

func (b *StubBackend) EnableRawInput(Window) error {
	return platformErr(RawEnableFailed, "enable raw input", ErrUnsupportedPlatform)
}

func (b *StubBackend) DisableRawInput(Window) error {
	return nil
}

func (b *StubBackend) Translate(any, *MotionState) Translation {
	return Translation{Kind: TranslateNone}
}

var _ Backend = (*StubBackend)(nil)

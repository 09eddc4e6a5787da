//go:build windows

package mouse

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Win32 backend: push-delta raw input. Confinement is ClipCursor over
// the client rect, warping is SetCursorPos, and raw deltas arrive as
// WM_INPUT messages once the process registers interest in the generic
// mouse usage. Registration is process-global and therefore counted by
// the shared device registry, not per window.

const (
	_WM_INPUT      = 0x00FF
	_RIM_TYPEMOUSE = 0
	_RID_INPUT     = 0x10000003
	_RIDEV_REMOVE  = 0x00000001

	_HID_USAGE_PAGE_GENERIC  = 0x01
	_HID_USAGE_GENERIC_MOUSE = 0x02

	_MOUSE_MOVE_ABSOLUTE = 0x0001

	_GET_RAW_INPUT_DATA_ERROR = 0xFFFFFFFF
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procClipCursor              = user32.NewProc("ClipCursor")
	procSetCursorPos            = user32.NewProc("SetCursorPos")
	procRegisterRawInputDevices = user32.NewProc("RegisterRawInputDevices")
	procGetRawInputData         = user32.NewProc("GetRawInputData")
)

type rawRect struct {
	Left, Top, Right, Bottom int32
}

type rawInputDevice struct {
	UsagePage uint16
	Usage     uint16
	Flags     uint32
	Target    windows.Handle
}

type rawInputHeader struct {
	Type   uint32
	Size   uint32
	Device windows.Handle
	WParam uintptr
}

// rawMouse mirrors RAWMOUSE. The button union is split into its two
// USHORT halves; the blank field is the alignment gap after usFlags.
type rawMouse struct {
	Flags       uint16
	_           uint16
	ButtonFlags uint16
	ButtonData  uint16
	RawButtons  uint32
	LastX       int32
	LastY       int32
	Extra       uint32
}

type rawInput struct {
	Header rawInputHeader
	Mouse  rawMouse
}

// Msg is the native event value fed to the controller on Windows: one
// message taken off the window's message pump.
type Msg struct {
	HWND    windows.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
}

// Win32Backend implements Backend for Windows.
type Win32Backend struct {
	devices *deviceRegistry
}

// NewWin32Backend builds the Windows backend. One value is shared by
// every window in the process so raw-device registration stays counted.
func NewWin32Backend() *Win32Backend {
	b := &Win32Backend{}
	b.devices = newDeviceRegistry(b.registerMouse, b.unregisterMouse)
	return b
}

func (b *Win32Backend) Name() string { return "win32" }

func hwndOf(w Window) (windows.Handle, error) {
	h, ok := w.Native()
	if !ok || h == 0 {
		return 0, platformErr(InvalidWindow, "window handle", errWindowGone)
	}
	return windows.Handle(h), nil
}

// screenRect returns the window's client area in screen coordinates,
// read at call time.
func screenRect(w Window) (Rect, error) {
	r, err := w.ClientRect()
	if err != nil {
		return Rect{}, platformErr(InvalidWindow, "client rect", err)
	}
	tl := w.ToScreen(Point{X: r.X, Y: r.Y})
	return Rect{X: tl.X, Y: tl.Y, W: r.W, H: r.H}, nil
}

// LockCursor clips the cursor to the client rect. ClipCursor replaces
// any previous clip, so repeated locks are naturally idempotent.
func (b *Win32Backend) LockCursor(w Window) error {
	if _, err := hwndOf(w); err != nil {
		return err
	}
	r, err := screenRect(w)
	if err != nil {
		return err
	}
	rect := rawRect{
		Left:   int32(r.X),
		Top:    int32(r.Y),
		Right:  int32(r.X + r.W),
		Bottom: int32(r.Y + r.H),
	}
	if ret, _, callErr := procClipCursor.Call(uintptr(unsafe.Pointer(&rect))); ret == 0 {
		return platformErr(LockFailed, "ClipCursor", callErr)
	}
	return nil
}

// UnlockCursor releases the clip. A NULL rect frees the cursor and
// succeeds whether or not a clip was in place.
func (b *Win32Backend) UnlockCursor(Window) error {
	procClipCursor.Call(0)
	return nil
}

func (b *Win32Backend) WarpCursorToCenter(w Window) (Point, error) {
	center, err := centerOf(w)
	if err != nil {
		return Point{}, err
	}
	if ret, _, callErr := procSetCursorPos.Call(uintptr(center.X), uintptr(center.Y)); ret == 0 {
		return center, platformErr(WarpFailed, "SetCursorPos", callErr)
	}
	return center, nil
}

func (b *Win32Backend) EnableRawInput(w Window) error {
	if _, err := hwndOf(w); err != nil {
		return err
	}
	return b.devices.acquire()
}

func (b *Win32Backend) DisableRawInput(Window) error {
	return b.devices.release()
}

// registerMouse registers process-wide interest in the generic mouse
// usage. The target is left NULL so WM_INPUT follows keyboard focus,
// which is the only delivery that works once several windows share the
// single registration.
func (b *Win32Backend) registerMouse() error {
	rid := rawInputDevice{
		UsagePage: _HID_USAGE_PAGE_GENERIC,
		Usage:     _HID_USAGE_GENERIC_MOUSE,
	}
	ret, _, callErr := procRegisterRawInputDevices.Call(
		uintptr(unsafe.Pointer(&rid)), 1, unsafe.Sizeof(rid))
	if ret == 0 {
		return platformErr(RawEnableFailed, "RegisterRawInputDevices", callErr)
	}
	return nil
}

func (b *Win32Backend) unregisterMouse() error {
	rid := rawInputDevice{
		UsagePage: _HID_USAGE_PAGE_GENERIC,
		Usage:     _HID_USAGE_GENERIC_MOUSE,
		Flags:     _RIDEV_REMOVE,
	}
	ret, _, callErr := procRegisterRawInputDevices.Call(
		uintptr(unsafe.Pointer(&rid)), 1, unsafe.Sizeof(rid))
	if ret == 0 {
		return platformErr(RawDisableFailed, "RegisterRawInputDevices", callErr)
	}
	return nil
}

// Translate decodes WM_INPUT messages into relative deltas. LLastX/Y
// already follow the right/down-positive convention. Absolute samples
// (pens, RDP sessions) are not raw relative motion and are skipped.
func (b *Win32Backend) Translate(event any, _ *MotionState) Translation {
	msg, ok := event.(Msg)
	if !ok || msg.Message != _WM_INPUT {
		return Translation{Kind: TranslateNone}
	}

	var size uint32
	headerSize := unsafe.Sizeof(rawInputHeader{})
	ret, _, _ := procGetRawInputData.Call(
		msg.LParam, _RID_INPUT, 0, uintptr(unsafe.Pointer(&size)), headerSize)
	if ret == _GET_RAW_INPUT_DATA_ERROR || size == 0 {
		return Translation{Kind: TranslateIgnore}
	}
	if size < uint32(unsafe.Sizeof(rawInput{})) {
		size = uint32(unsafe.Sizeof(rawInput{}))
	}

	buf := make([]byte, size)
	ret, _, _ = procGetRawInputData.Call(
		msg.LParam, _RID_INPUT,
		uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&size)), headerSize)
	if ret == _GET_RAW_INPUT_DATA_ERROR || ret == 0 {
		logger.Debugf("win32: GetRawInputData returned %d for %d byte event", ret, size)
		return Translation{Kind: TranslateIgnore}
	}

	raw := (*rawInput)(unsafe.Pointer(&buf[0]))
	if raw.Header.Type != _RIM_TYPEMOUSE {
		return Translation{Kind: TranslateIgnore}
	}
	if raw.Mouse.Flags&_MOUSE_MOVE_ABSOLUTE != 0 {
		return Translation{Kind: TranslateIgnore}
	}
	return Translation{
		Kind:  TranslateDelta,
		Delta: Delta{DX: int(raw.Mouse.LastX), DY: int(raw.Mouse.LastY)},
	}
}

var _ Backend = (*Win32Backend)(nil)

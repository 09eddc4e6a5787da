// Package tray exposes the cursor hold toggle in the system tray using
// getlantern/systray.
package tray

import (
	"encoding/binary"

	"github.com/getlantern/systray"
)

// Tray manages the tray icon, the checkable hold item and a quit item.
type Tray struct {
	tooltip  string
	toggles  chan bool
	quitCh   chan struct{}
	holdItem *systray.MenuItem
}

// New creates a tray whose Toggles channel emits the desired hold state
// whenever the user clicks the hold item.
func New(tooltip string) *Tray {
	return &Tray{
		tooltip: tooltip,
		toggles: make(chan bool, 1),
		quitCh:  make(chan struct{}),
	}
}

// Toggles emits the hold state requested from the menu.
func (t *Tray) Toggles() <-chan bool {
	return t.toggles
}

// Done is closed when the tray exits.
func (t *Tray) Done() <-chan struct{} {
	return t.quitCh
}

// SetHeld reflects the controller state in the menu checkbox.
func (t *Tray) SetHeld(held bool) {
	if t.holdItem == nil {
		return
	}
	if held {
		t.holdItem.Check()
	} else {
		t.holdItem.Uncheck()
	}
}

// Run starts the tray event loop (blocks)
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() { close(t.quitCh) })
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle("MouseHold")
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(trayIcon())

	t.holdItem = systray.AddMenuItemCheckbox("Hold cursor", "Confine the cursor and stream raw motion", false)
	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "")

	go func() {
		for {
			select {
			case <-t.holdItem.ClickedCh:
				select {
				case t.toggles <- !t.holdItem.Checked():
				default:
				}
			case <-quitItem.ClickedCh:
				systray.Quit()
				return
			case <-t.quitCh:
				return
			}
		}
	}()
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

// trayIcon renders the 16x16 tray glyph as an in-memory ICO: a center
// dot with crosshair arms, a pinned pointer.
func trayIcon() []byte {
	const (
		side    = 16
		dirSize = 6 + 16
		dibSize = 40
		pixSize = side * side * 4
		mskSize = side * side / 8
	)
	le := binary.LittleEndian
	icon := make([]byte, dirSize+dibSize+pixSize+mskSize)

	// ICONDIR with a single 32bpp entry
	le.PutUint16(icon[2:], 1)
	le.PutUint16(icon[4:], 1)
	icon[6], icon[7] = side, side
	le.PutUint16(icon[10:], 1)
	le.PutUint16(icon[12:], 32)
	le.PutUint32(icon[14:], dibSize+pixSize+mskSize)
	le.PutUint32(icon[18:], dirSize)

	// BITMAPINFOHEADER; height doubles to cover the AND mask
	dib := icon[dirSize:]
	le.PutUint32(dib[0:], dibSize)
	le.PutUint32(dib[4:], side)
	le.PutUint32(dib[8:], side*2)
	le.PutUint16(dib[12:], 1)
	le.PutUint16(dib[14:], 32)
	le.PutUint32(dib[20:], pixSize)

	// BGRA pixels, bottom-up rows; untouched pixels stay transparent
	px := dib[dibSize : dibSize+pixSize]
	dot := func(x, y int) {
		off := ((side-1-y)*side + x) * 4
		px[off+0] = 0xE8
		px[off+1] = 0xE8
		px[off+2] = 0xE8
		px[off+3] = 0xFF
	}
	for i := 1; i < side-1; i++ {
		dot(i, 7)
		dot(i, 8)
		dot(7, i)
		dot(8, i)
	}
	for y := 5; y <= 10; y++ {
		for x := 5; x <= 10; x++ {
			dot(x, y)
		}
	}
	return icon
}

package tray

import (
	"encoding/binary"
	"testing"
)

func TestTrayIconIsValidSingleImageICO(t *testing.T) {
	icon := trayIcon()
	le := binary.LittleEndian

	if le.Uint16(icon[2:]) != 1 || le.Uint16(icon[4:]) != 1 {
		t.Fatalf("expected a single-image ICO, header %v", icon[:6])
	}
	if icon[6] != 16 || icon[7] != 16 {
		t.Errorf("expected a 16x16 entry, got %dx%d", icon[6], icon[7])
	}
	size := le.Uint32(icon[14:])
	offset := le.Uint32(icon[18:])
	if int(offset)+int(size) != len(icon) {
		t.Errorf("directory says %d bytes at offset %d, file is %d", size, offset, len(icon))
	}
	if le.Uint16(icon[offset+14:]) != 32 {
		t.Errorf("expected 32bpp image data, got %d", le.Uint16(icon[offset+14:]))
	}

	// The glyph must actually draw something.
	px := icon[offset+40 : offset+40+16*16*4]
	opaque := 0
	for i := 3; i < len(px); i += 4 {
		if px[i] != 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Error("glyph has no opaque pixels")
	}
}

//go:build linux

package main

import (
	"fmt"
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/kataras/golog"

	"mousehold/internal/config"
	"mousehold/internal/mouse"
	"mousehold/internal/tray"
)

func availableBackends() []string {
	return []string{"x11", "wayland"}
}

// x11Window adapts an X window to the controller's window contract.
type x11Window struct {
	conn *xgb.Conn
	id   xproto.Window
	root xproto.Window
	gone bool
}

func (w *x11Window) Native() (uintptr, bool) {
	if w.gone {
		return 0, false
	}
	return uintptr(w.id), true
}

func (w *x11Window) ClientRect() (mouse.Rect, error) {
	geo, err := xproto.GetGeometry(w.conn, xproto.Drawable(w.id)).Reply()
	if err != nil {
		return mouse.Rect{}, err
	}
	return mouse.Rect{X: 0, Y: 0, W: int(geo.Width), H: int(geo.Height)}, nil
}

func (w *x11Window) ToScreen(p mouse.Point) mouse.Point {
	tr, err := xproto.TranslateCoordinates(w.conn, w.id, w.root, int16(p.X), int16(p.Y)).Reply()
	if err != nil {
		return p
	}
	return mouse.Point{X: int(tr.DstX), Y: int(tr.DstY)}
}

// runDemo opens a plain X window, holds the cursor on demand and logs
// the raw deltas it produces. Any key toggles the hold; closing the
// window or quitting from the tray exits.
func runDemo(cfg *config.Config) error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}
	mask := uint32(xproto.EventMaskKeyPress |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskStructureNotify)
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, wid, screen.Root,
		0, 0, 640, 480, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{screen.WhitePixel, mask}).Check()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	title := "mousehold demo"
	xproto.ChangeProperty(conn, xproto.PropModeReplace, wid,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title))
	xproto.MapWindow(conn, wid)

	backend, err := pickBackend(cfg, conn)
	if err != nil {
		return err
	}

	win := &x11Window{conn: conn, id: wid, root: screen.Root}
	ctrl := mouse.NewController(win, backend)
	defer ctrl.Close()
	adapter := mouse.NewAdapter(ctrl, cfg.QueueSize)

	var tr *tray.Tray
	toggles := (<-chan bool)(nil)
	trayDone := (<-chan struct{})(nil)
	if cfg.TrayEnabled {
		tr = tray.New("MouseHold - raw motion demo")
		toggles = tr.Toggles()
		trayDone = tr.Done()
		go tr.Run()
		defer tr.Stop()
	}

	xevents := make(chan xgb.Event, 32)
	go func() {
		defer close(xevents)
		for {
			ev, xerr := conn.WaitForEvent()
			if ev == nil && xerr == nil {
				return
			}
			if xerr != nil {
				golog.Debugf("x error: %v", xerr)
				continue
			}
			xevents <- ev
		}
	}()

	setHeld := func(held bool) {
		if err := ctrl.SetHeld(held); err != nil {
			golog.Errorf("hold %v: %v", held, err)
		}
		if tr != nil {
			tr.SetHeld(ctrl.Held())
		}
	}

	mapped := false
	for {
		select {
		case held := <-toggles:
			setHeld(held)
		case <-trayDone:
			return nil
		case mev := <-adapter.Events():
			golog.Infof("delta dx=%d dy=%d", mev.Delta.DX, mev.Delta.DY)
		case ev, ok := <-xevents:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case xproto.MapNotifyEvent:
				if e.Window == wid && !mapped {
					mapped = true
					if cfg.HoldOnStart {
						setHeld(true)
					}
				}
			case xproto.KeyPressEvent:
				setHeld(!ctrl.Held())
			case xproto.DestroyNotifyEvent:
				if e.Window == wid {
					win.gone = true
					return nil
				}
			default:
				adapter.Feed(ev)
			}
		}
	}
}

// detectBackend probes the session environment. An X display wins even
// under Wayland, since XWayland serves this demo's window; only a pure
// Wayland session without one selects the wayland backend.
func detectBackend(getenv func(string) string) string {
	if getenv("DISPLAY") != "" {
		return "x11"
	}
	if getenv("WAYLAND_DISPLAY") != "" || getenv("XDG_SESSION_TYPE") == "wayland" {
		return "wayland"
	}
	return "x11"
}

// pickBackend resolves the configured backend name, probing the session
// for "auto". The demo renders through X, so the Wayland backend is
// only reachable via the library API with a compositor surface.
func pickBackend(cfg *config.Config, conn *xgb.Conn) (mouse.Backend, error) {
	name := cfg.Backend
	if name == "" || name == "auto" {
		name = detectBackend(os.Getenv)
		golog.Debugf("session probe selected the %s backend", name)
	}
	switch name {
	case "x11":
		return mouse.NewX11Backend(conn)
	case "wayland":
		return nil, fmt.Errorf("the wayland backend needs a compositor surface; embed it via the library API")
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

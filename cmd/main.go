// MouseHold - raw motion cursor hold
// Confines the cursor to a window and streams unaccelerated mouse deltas.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kataras/golog"

	"mousehold/internal/config"
)

var (
	version      = "0.1.0"
	showVer      = flag.Bool("version", false, "Show version")
	backendName  = flag.String("backend", "", "Backend to use (auto, x11, wayland, win32, quartz)")
	holdOnStart  = flag.Bool("hold", false, "Engage the cursor hold as soon as the window maps")
	listBackends = flag.Bool("list-backends", false, "List backends available on this platform")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("mousehold version %s\n", version)
		return
	}
	if *listBackends {
		for _, name := range availableBackends() {
			fmt.Println(name)
		}
		return
	}

	// Initialize config
	cfgMgr, err := config.NewManager()
	if err != nil {
		golog.Fatalf("failed to initialize config: %v", err)
	}
	if err := cfgMgr.Load(); err != nil {
		golog.Warnf("failed to load config: %v", err)
	}
	cfg := cfgMgr.Get()
	golog.SetLevel(cfg.LogLevel)

	// Flags override the stored configuration
	if *backendName != "" {
		cfg.Backend = *backendName
	}
	if *holdOnStart {
		cfg.HoldOnStart = true
	}

	if err := runDemo(cfg); err != nil {
		golog.Error(err)
		os.Exit(1)
	}
}

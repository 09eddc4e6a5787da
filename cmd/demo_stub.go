//go:build !linux

package main

import (
	"fmt"
	"runtime"

	"mousehold/internal/config"
)

func availableBackends() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"win32"}
	case "darwin":
		return []string{"quartz"}
	default:
		return nil
	}
}

func runDemo(*config.Config) error {
	return fmt.Errorf("the demo window requires X11; on %s embed the backend via the library API", runtime.GOOS)
}

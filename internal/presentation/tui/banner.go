package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs an ASCII art banner for Espalier with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Green/Teal)
	lines := []struct {
		text  string
		color string
	}{
		{"  ______                 _ _", "#bbf7d0"},
		{" |  ____|               | (_)", "#a7f3d0"},
		{" | |__   ___ _ __   __ _| |_  ___ _ __", "#86efac"},
		{" |  __| / __| '_ \\ / _` | | |/ _ \\ '__|", "#6ee7b7"},
		{" | |____\\__ \\ |_) | (_| | | |  __/ |", "#4ade80"},
		{" |______|___/ .__/ \\__,_|_|_|\\___|_|", "#34d399"},
		{"            | |", "#10b981"},
		{"            |_|", "#059669"},
	}

	fmt.Println()
	for _, line := range lines {
		fmt.Println(termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Println(termenv.String("  v" + v).Faint())
	}
	fmt.Println()
}

package main

import (
	"fmt"
	"os"
	"strings"
)

// progressDisplay picks how `myton test` reports scripts while they run:
// a live bubbletea list or only the final summary.
type progressDisplay uint8

const (
	displayAuto progressDisplay = iota
	displayLive
	displayPlain
)

func (d progressDisplay) String() string {
	switch d {
	case displayLive:
		return "on"
	case displayPlain:
		return "off"
	default:
		return "auto"
	}
}

func parseProgressDisplay(value string) (progressDisplay, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return displayAuto, nil
	case "on":
		return displayLive, nil
	case "off":
		return displayPlain, nil
	}
	return displayAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// live reports whether the suite should render its progress list on out.
// In auto mode that needs an interactive terminal that is not "dumb" and
// no --quiet.
func (d progressDisplay) live(out *os.File, quiet bool) bool {
	switch d {
	case displayLive:
		return true
	case displayPlain:
		return false
	}
	if quiet || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(out)
}

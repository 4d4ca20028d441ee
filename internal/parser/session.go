package parser

import (
	"strconv"
	"strings"

	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

// Session holds facts about the emulator run that are not hardware,
// identity or settings.
type Session struct {
	// LastTimestamp is the last HH:MM:SS.mmm seen, empty if none.
	LastTimestamp string

	// Mods loaded for the game, in log order.
	Mods []report.Mod

	// Controllers lists distinct "Hid Configure:" entries in first-seen order.
	Controllers []string

	// AvailableRAM is the raw "Available N MB" figure, empty if absent.
	AvailableRAM string
}

// ExtractSession scans body for timestamps, mods, controllers and memory.
func ExtractSession(body string) Session {
	var s Session

	if all := timestampPattern.FindAllString(body, -1); len(all) > 0 {
		s.LastTimestamp = all[len(all)-1]
	}

	for _, m := range modPattern.FindAllStringSubmatch(body, -1) {
		kind := "RomFS"
		if m[2] == "[E]" {
			kind = "ExeFS"
		}
		s.Mods = append(s.Mods, report.Mod{Name: m[1], Kind: kind})
	}

	seen := make(map[string]struct{})
	for _, m := range controllerPattern.FindAllStringSubmatch(body, -1) {
		entry := strings.TrimRight(m[1], "\r")
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		s.Controllers = append(s.Controllers, entry)
	}

	if m := availableRAMPattern.FindStringSubmatch(body); m != nil {
		s.AvailableRAM = m[1]
	}
	return s
}

// RAMMegabytes returns the memory figure used for the low memory check:
// the "Available N MB" value when logged, otherwise the first integer of
// the hardware RAM field. raw is the figure exactly as it appeared.
func RAMMegabytes(s Session, ramField string) (raw string, mb int, ok bool) {
	raw = s.AvailableRAM
	if raw == "" && ramField != report.Unknown {
		raw = ramNumberPattern.FindString(ramField)
	}
	if raw == "" {
		return "", 0, false
	}
	mb, err := strconv.Atoi(raw)
	if err != nil {
		return "", 0, false
	}
	return raw, mb, true
}

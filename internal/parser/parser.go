// Package parser extracts structured information from Ryujinx log text.
//
// Every extractor is a pure function over the log body. A pattern that
// does not match leaves its field at report.Unknown and is reported as a
// *report.FieldError; extraction never stops early.
package parser

import (
	"regexp"
	"strings"

	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

// TrimToLogBody returns text starting at its first HH:MM:SS.mmm timestamp.
// Anything before it (truncation headers, multipart boundaries) is dropped.
// Returns report.ErrNoTimestampFound when the text has no timestamp.
func TrimToLogBody(text string) (string, error) {
	loc := timestampPattern.FindStringIndex(text)
	if loc == nil {
		return "", report.ErrNoTimestampFound
	}
	return text[loc[0]:], nil
}

// ExtractHardware reads CPU, GPU, RAM and OS from the first matching line of each.
func ExtractHardware(body string) (report.HardwareInfo, []error) {
	hw := report.NewHardwareInfo()
	var misses []error

	fields := []struct {
		name string
		dst  *string
		find func(string) (string, bool)
	}{
		{"cpu", &hw.CPU, firstCapture(cpuPattern)},
		{"gpu", &hw.GPU, firstCapture(gpuPattern)},
		{"ram", &hw.RAM, firstCapture(ramPattern)},
		{"os", &hw.OS, firstCapture(osPattern)},
	}
	for _, f := range fields {
		if v, ok := f.find(body); ok {
			*f.dst = v
			continue
		}
		misses = append(misses, &report.FieldError{Field: f.name})
	}
	return hw, misses
}

// ExtractEmulator reads the emulator version, firmware and enabled logs.
//
// Version and firmware are taken from the last line carrying their marker,
// because both may be logged again later in a session. The enabled log
// categories use the first match.
func ExtractEmulator(body string) (report.EmulatorInfo, []error) {
	emu := report.NewEmulatorInfo()
	var misses []error

	if v, ok := lastLineToken(body, versionMarker); ok {
		emu.Version = v
	} else {
		misses = append(misses, &report.FieldError{Field: "version"})
	}
	if v, ok := lastLineToken(body, firmwareMarker); ok {
		emu.Firmware = v
	} else {
		misses = append(misses, &report.FieldError{Field: "firmware"})
	}
	if v, ok := firstCapture(logsEnabledPattern)(body); ok {
		emu.LogsEnabled = v
	} else {
		misses = append(misses, &report.FieldError{Field: "logs_enabled"})
	}
	return emu, misses
}

// ExtractGameName returns the loaded application name without its
// " [64-bit]" / " [32-bit]" suffix.
func ExtractGameName(body string) (string, error) {
	name, ok := firstCapture(gameNamePattern)(body)
	if !ok {
		return report.Unknown, &report.FieldError{Field: "game_name"}
	}
	return bitnessSuffixPattern.ReplaceAllString(name, ""), nil
}

// firstCapture returns a finder yielding the right-trimmed first capture
// group of the pattern's first match. An empty value is a miss.
func firstCapture(p *regexp.Regexp) func(string) (string, bool) {
	return func(body string) (string, bool) {
		match := p.FindStringSubmatch(body)
		if match == nil {
			return "", false
		}
		v := strings.TrimRightFunc(match[1], isSpace)
		return v, v != ""
	}
}

// lastLineToken returns the final whitespace-delimited token of the last
// line containing marker.
func lastLineToken(body, marker string) (string, bool) {
	var token string
	found := false
	for _, line := range splitLines(body) {
		if !strings.Contains(line, marker) {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			token = fields[len(fields)-1]
			found = true
		}
	}
	return token, found
}

// splitLines splits on '\n' and drops a trailing '\r' from each line.
func splitLines(body string) []string {
	if body == "" {
		return nil
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

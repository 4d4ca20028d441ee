// Package report defines the value types produced by a Ryujinx log analysis.
package report

import (
	"fmt"
	"strings"
)

// Unknown is the default value of every extracted field.
const Unknown = "Unknown"

// Sentinels used when a report section has nothing to show.
const (
	NoErrorsFound = "No errors found in log"
	NoModsFound   = "No mods found"
)

// EmptyLogHelp tells users how to produce a useful log.
const EmptyLogHelp = "In Logging settings, ensure `Enable Logging to File` is checked. " +
	"Ensure the default logs are enabled: `Info`, `Warning`, `Error`, `Guest` and `Stub`. " +
	"Start a game, play until the issue occurs and upload the latest log file."

// DefaultLogs lists the log categories Ryujinx enables out of the box.
var DefaultLogs = []string{"Info", "Warning", "Error", "Guest", "Stub"}

// Channel is the kind of support channel a log was posted to.
type Channel int

const (
	// ChannelOther is any channel without version policy.
	ChannelOther Channel = iota
	// ChannelGeneral is a user support channel.
	ChannelGeneral
	// ChannelPRTesting is the pull-request build testing channel.
	ChannelPRTesting
)

var channelNames = [...]string{
	ChannelOther:     "other",
	ChannelGeneral:   "general",
	ChannelPRTesting: "pr-testing",
}

func (c Channel) String() string {
	if c < ChannelOther || c > ChannelPRTesting {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel converts "general", "pr-testing" or "other" into a Channel.
func ParseChannel(name string) (Channel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range channelNames {
		if n == name {
			return Channel(i), nil
		}
	}
	return ChannelOther, fmt.Errorf("unknown channel %q (valid: general, pr-testing, other)", name)
}

// HardwareInfo describes the host machine.
type HardwareInfo struct {
	CPU string `json:"cpu"`
	GPU string `json:"gpu"`
	RAM string `json:"ram"`
	OS  string `json:"os"`
}

// NewHardwareInfo returns a HardwareInfo with every field Unknown.
func NewHardwareInfo() HardwareInfo {
	return HardwareInfo{CPU: Unknown, GPU: Unknown, RAM: Unknown, OS: Unknown}
}

// EmulatorInfo identifies the emulator build and firmware.
type EmulatorInfo struct {
	Version  string `json:"version"`
	Firmware string `json:"firmware"`
	// LogsEnabled is the raw comma separated category list, empty when absent.
	LogsEnabled string `json:"logs_enabled,omitempty"`
}

// NewEmulatorInfo returns an EmulatorInfo with Unknown version and firmware.
func NewEmulatorInfo() EmulatorInfo {
	return EmulatorInfo{Version: Unknown, Firmware: Unknown}
}

// EnabledLogs splits LogsEnabled into a set of category names.
// It returns nil when the category list was not found.
func (e EmulatorInfo) EnabledLogs() map[string]struct{} {
	raw := strings.ReplaceAll(strings.TrimSpace(e.LogsEnabled), " ", "")
	if raw == "" {
		return nil
	}
	set := make(map[string]struct{})
	for _, name := range strings.Split(raw, ",") {
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// Mod is a game modification loaded by the emulator.
type Mod struct {
	Name string `json:"name"`
	// Kind is "ExeFS" or "RomFS".
	Kind string `json:"kind"`
}

func (m Mod) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Kind)
}

// Report is the result of analysing one log. A Report is assembled once
// and not modified afterwards; its slices are owned by the receiver.
type Report struct {
	Hardware HardwareInfo `json:"hardware"`
	Emulator EmulatorInfo `json:"emulator"`
	GameName string       `json:"game_name"`
	Settings Settings     `json:"settings"`

	// ErrorSnippet holds the first two lines of the last error block,
	// or NoErrorsFound.
	ErrorSnippet string `json:"error_snippet"`

	Mods  []Mod  `json:"mods,omitempty"`
	Notes []Note `json:"notes"`

	// Recovered lists the conditions the analysis degraded around.
	Recovered []error `json:"-"`
}

// New returns a report with every field at its default.
func New() Report {
	return Report{
		Hardware:     NewHardwareInfo(),
		Emulator:     NewEmulatorInfo(),
		GameName:     Unknown,
		Settings:     NewSettings(),
		ErrorSnippet: NoErrorsFound,
	}
}

// HasErrors reports whether an error snippet was found.
func (r Report) HasErrors() bool {
	return r.ErrorSnippet != NoErrorsFound
}

// GameBooted reports whether a game was loaded during the session.
func (r Report) GameBooted() bool {
	return r.GameName != Unknown
}

// IsEmpty reports whether the log shows neither a game boot nor errors.
func (r Report) IsEmpty() bool {
	return !r.GameBooted() && !r.HasErrors()
}

// ModsSummary lists the mods one per line, or returns NoModsFound.
func (r Report) ModsSummary() string {
	if len(r.Mods) == 0 {
		return NoModsFound
	}
	lines := make([]string, len(r.Mods))
	for i, m := range r.Mods {
		lines[i] = m.String()
	}
	return strings.Join(lines, "\n")
}

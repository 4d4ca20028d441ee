package parser

import "regexp"

// Markers searched as plain substrings.
const (
	// errorMarker tags an error level line: "00:00:01.234 |E| ..."
	errorMarker = "|E|"

	versionMarker  = "Ryujinx Version:"
	firmwareMarker = "Firmware Version:"

	settingMarker = "LogValueChange: "
)

// Compiled regex patterns for field extraction. A field value never
// continues onto the next line.
var (
	// Matches: "12:34:56.789"
	timestampPattern = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3}`)

	// Matches: "CPU: AMD Ryzen 5 3600 ; RAM: ..."
	// Captures: (1) value up to ';' or line end
	cpuPattern = regexp.MustCompile(`CPU:[ \t]([^;\n\r]*)`)

	// Matches: "RAM: Total 16284 MB ; Available 10873 MB"
	// Captures: (1) value up to ';' or line end, including "Total"
	ramPattern = regexp.MustCompile(`RAM:[ \t]([^;\n\r]*)`)

	// Matches: "Operating System: Microsoft Windows 10.0.19045 (X64)"
	osPattern = regexp.MustCompile(`Operating System:[ \t]([^;\n\r]*)`)

	// Matches: "PrintGpuInformation: NVIDIA GeForce RTX 3070 (525.89.02)"
	gpuPattern = regexp.MustCompile(`PrintGpuInformation:[ \t]([^;\n\r]*)`)

	// Matches: "Logs Enabled: Debug, Info, Warning, Error, Guest, Stub"
	logsEnabledPattern = regexp.MustCompile(`Logs Enabled:[ \t]([^;\n\r]*)`)

	// Matches: "Loader LoadNca: Application Loaded: Super Mario Odyssey v1.3.0 [0100000000010000] [64-bit]"
	gameNamePattern = regexp.MustCompile(`Loader LoadNca: Application Loaded:[ \t]([^;\n\r]*)`)

	// Matches a trailing " [64-bit]" or " [32-bit]".
	bitnessSuffixPattern = regexp.MustCompile(`\s\[(64|32)-bit\]$`)

	// Matches: "Found mod 'Disable Dynamic Resolution' [E]"
	// Captures: (1) mod name, (2) bracketed location
	modPattern = regexp.MustCompile(`Found mod\s'(.+?)'\s(\[.+?\])`)

	// Matches: "Hid Configure: ProController : Player1"
	controllerPattern = regexp.MustCompile(`Hid Configure: ([^\r\n]+)`)

	// Matches: "Available 10873 MB"
	availableRAMPattern = regexp.MustCompile(`Available\s(\d+)\sMB`)

	// Matches the first integer of a RAM field: "Total 4096 MB" -> "4096"
	ramNumberPattern = regexp.MustCompile(`\d+`)
)

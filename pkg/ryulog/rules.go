package ryulog

import (
	"sort"
	"strings"

	"github.com/ryulog/ryulog-go/internal/parser"
	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
	"github.com/ryulog/ryulog-go/pkg/ryulog/signature"
)

// lowRAMThresholdMB is the memory figure below which a warning is raised.
const lowRAMThresholdMB = 8000

// Note texts raised by the rule set.
const (
	noteMacOS           = "macOS is currently unsupported"
	noteIntelGPU        = "Intel iGPUs are known to have driver issues, consider using a discrete GPU"
	noteFirmwareMissing = "Nintendo Switch firmware not found"
	noteDebugLogs       = "Debug logs enabled will have a negative impact on performance"
	noteLogDisabled     = "%s log is not enabled"
	noteDefaultLogs     = "Default logs enabled"
	noteAnisotropic     = "Anisotropic filtering not set to `Auto` can cause graphical issues"
	noteDummyAudio      = "Dummy audio backend, consider changing to SDL2 or OpenAL"
	notePPTC            = "PPTC cache should be enabled"
	noteShaderCache     = "Shader cache should be enabled"
	noteExpandRAM       = "`Expand DRAM size to 6GB` should only be enabled for 4K mods"
	noteSoftwareMemory  = "`Software` setting in Memory Manager Mode will give slower performance than the default setting of `Host unchecked`"
	noteIgnoreServices  = "`Ignore Missing Services` being enabled can cause instability"
	noteVSync           = "V-Sync disabled can cause instability like games running faster than intended or longer load times"
	notePRBuild         = "PR build logs should be posted in the PR testing channel"
	noteCustomBuild     = "Custom builds are not officially supported"
	noteLowRAM          = "Less than 8GB RAM available (%s MB)"
	noteElapsed         = "Time elapsed in log: `%s`"
	noteNoController    = "No controller information found"
)

// Raw setting values some rules look for.
const (
	softwarePageTable    = "SoftwarePageTable"
	dummyAudioBackend    = "Dummy"
	anisotropicAutomatic = "Auto"
)

// state is everything the rules may look at. It is built once per
// analysis and never modified by a rule.
type state struct {
	bodyFound  bool
	channel    report.Channel
	hardware   report.HardwareInfo
	emulator   report.EmulatorInfo
	gameName   string
	settings   report.Settings
	signatures []signature.Match
	session    parser.Session
}

// rule turns state into zero or more notes.
type rule struct {
	name string
	eval func(s *state) []report.Note
}

// rules is the fixed rule set, evaluated in order. Each rule is pure and
// stays silent when a field it depends on is Unknown.
var rules = []rule{
	{"signatures", signatureRule},
	{"elapsed_time", elapsedTimeRule},
	{"controllers", controllerRule},
	{"low_ram", lowRAMRule},
	{"macos", macOSRule},
	{"intel_gpu", intelGPURule},
	{"logs", logsRule},
	{"firmware", firmwareRule},
	{"anisotropic_filtering", settingRule(report.AnisotropicFiltering, notAuto, report.Warning, noteAnisotropic)},
	{"audio_backend", settingRule(report.AudioBackend, equals(dummyAudioBackend), report.Warning, noteDummyAudio)},
	{"pptc", settingRule(report.PPTC, equals("Disabled"), report.Blocking, notePPTC)},
	{"shader_cache", settingRule(report.ShaderCache, equals("Disabled"), report.Blocking, noteShaderCache)},
	{"expand_ram", settingRule(report.ExpandRAM, equals("Enabled"), report.Warning, noteExpandRAM)},
	{"memory_manager", settingRule(report.MemoryManager, equals(softwarePageTable), report.Warning, noteSoftwareMemory)},
	{"ignore_missing_services", settingRule(report.IgnoreMissingServices, equals("Enabled"), report.Warning, noteIgnoreServices)},
	{"vsync", settingRule(report.VSync, equals("Disabled"), report.Warning, noteVSync)},
	{"build_channel", buildChannelRule},
}

// evaluate runs every rule and returns the notes sorted for display.
func evaluate(s *state) []report.Note {
	var notes []report.Note
	for _, r := range rules {
		notes = append(notes, r.eval(s)...)
	}
	report.SortNotes(notes)
	return notes
}

func one(sev report.Severity, text string) []report.Note {
	return []report.Note{report.NewNote(sev, text)}
}

func signatureRule(s *state) []report.Note {
	var notes []report.Note
	for _, m := range s.signatures {
		notes = append(notes, report.NewNote(m.Severity, m.Note))
	}
	return notes
}

func elapsedTimeRule(s *state) []report.Note {
	if s.session.LastTimestamp == "" {
		return nil
	}
	return []report.Note{report.NewNotef(report.Info, noteElapsed, s.session.LastTimestamp)}
}

func controllerRule(s *state) []report.Note {
	if len(s.session.Controllers) == 0 {
		// A crash before a game loads logs no controllers; only flag it
		// once a game was running.
		if s.gameName != report.Unknown {
			return one(report.Warning, noteNoController)
		}
		return nil
	}
	notes := make([]report.Note, 0, len(s.session.Controllers))
	for _, c := range s.session.Controllers {
		notes = append(notes, report.NewNote(report.Info, c))
	}
	return notes
}

// lowRAMRule warns when memory is under lowRAMThresholdMB. The checked
// and echoed figure is "Available N MB" when the log has one, otherwise
// the Total figure of the RAM field.
func lowRAMRule(s *state) []report.Note {
	raw, mb, ok := parser.RAMMegabytes(s.session, s.hardware.RAM)
	if !ok || mb >= lowRAMThresholdMB {
		return nil
	}
	return []report.Note{report.NewNotef(report.Warning, noteLowRAM, raw)}
}

func macOSRule(s *state) []report.Note {
	if strings.Contains(s.hardware.OS, "Darwin") {
		return one(report.Critical, noteMacOS)
	}
	return nil
}

func intelGPURule(s *state) []report.Note {
	if !strings.Contains(s.hardware.GPU, "Intel") {
		return nil
	}
	if strings.Contains(s.hardware.OS, "Darwin") || strings.Contains(s.hardware.OS, "Windows") {
		return one(report.Warning, noteIntelGPU)
	}
	return nil
}

func logsRule(s *state) []report.Note {
	enabled := s.emulator.EnabledLogs()
	if enabled == nil {
		return nil
	}
	var notes []report.Note
	if _, ok := enabled["Debug"]; ok {
		notes = append(notes, report.NewNote(report.Warning, noteDebugLogs))
	}
	var disabled []string
	for _, name := range report.DefaultLogs {
		if _, ok := enabled[name]; !ok {
			disabled = append(disabled, name)
		}
	}
	if len(disabled) == 0 {
		return append(notes, report.NewNote(report.Success, noteDefaultLogs))
	}
	sort.Strings(disabled)
	for _, name := range disabled {
		notes = append(notes, report.NewNotef(report.Warning, noteLogDisabled, name))
	}
	return notes
}

func firmwareRule(s *state) []report.Note {
	if s.bodyFound && s.emulator.Firmware == report.Unknown {
		return one(report.Critical, noteFirmwareMissing)
	}
	return nil
}

func equals(want string) func(string) bool {
	return func(v string) bool { return v == want }
}

func notAuto(v string) bool {
	return v != anisotropicAutomatic
}

// settingRule raises a note when a known setting value satisfies pred.
func settingRule(name report.SettingName, pred func(string) bool, sev report.Severity, text string) func(*state) []report.Note {
	return func(s *state) []report.Note {
		v := s.settings.Get(name)
		if v == report.Unknown || !pred(v) {
			return nil
		}
		return one(sev, text)
	}
}

func buildChannelRule(s *state) []report.Note {
	if s.channel != report.ChannelGeneral {
		return nil
	}
	switch parser.ClassifyVersion(s.emulator.Version) {
	case parser.BuildPullRequest:
		return one(report.Warning, notePRBuild)
	case parser.BuildCustom:
		return one(report.Warning, noteCustomBuild)
	}
	return nil
}

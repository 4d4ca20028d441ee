package parser

import (
	"regexp"
	"strings"

	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

// valueMapper turns a raw log token into its display value.
// ok is false when the token has no mapping.
type valueMapper func(token string) (display string, ok bool)

// settingSpec binds a setting to the internal name Ryujinx logs it under.
type settingSpec struct {
	name     report.SettingName
	internal string
	mapValue valueMapper
	pattern  *regexp.Regexp
}

// settingSpecs is ordered as settings are listed in reports.
var settingSpecs = []settingSpec{
	newSettingSpec(report.AudioBackend, "AudioBackend", passthrough),
	newSettingSpec(report.Docked, "EnableDockedMode", boolMapper("Docked", "Handheld")),
	newSettingSpec(report.ExpandRAM, "ExpandRam", boolMapper("Enabled", "Disabled")),
	newSettingSpec(report.IgnoreMissingServices, "IgnoreMissingServices", boolMapper("Enabled", "Disabled")),
	newSettingSpec(report.MemoryManager, "MemoryManagerMode", passthrough),
	newSettingSpec(report.PPTC, "EnablePtc", boolMapper("Enabled", "Disabled")),
	newSettingSpec(report.ShaderCache, "EnableShaderCache", boolMapper("Enabled", "Disabled")),
	newSettingSpec(report.VSync, "EnableVsync", boolMapper("Enabled", "Disabled")),
	newSettingSpec(report.ResolutionScale, "ResScale", tableMapper(map[string]string{
		"-1": "Custom",
		"1":  "Native (720p/1080p)",
		"2":  "2x (1440p/2160p)",
		"3":  "3x (2160p/3240p)",
		"4":  "4x (2880p/4320p)",
	})),
	newSettingSpec(report.AnisotropicFiltering, "MaxAnisotropy", tableMapper(map[string]string{
		"-1": "Auto",
		"2":  "2x",
		"4":  "4x",
		"8":  "8x",
		"16": "16x",
	})),
	newSettingSpec(report.AspectRatio, "AspectRatio", tableMapper(map[string]string{
		"Fixed4x3":   "4:3",
		"Fixed16x9":  "16:9",
		"Fixed16x10": "16:10",
		"Fixed21x9":  "21:9",
		"Fixed32x9":  "32:9",
		"Stretched":  "Stretch to Fit Window",
	})),
}

func newSettingSpec(name report.SettingName, internal string, m valueMapper) settingSpec {
	return settingSpec{
		name:     name,
		internal: internal,
		mapValue: m,
		// The trailing \s keeps "EnableVsync" from matching a longer name.
		pattern: regexp.MustCompile(regexp.QuoteMeta(settingMarker+internal) + `\s`),
	}
}

func passthrough(token string) (string, bool) {
	return token, true
}

// boolMapper maps "True" to onTrue and any other token to otherwise.
func boolMapper(onTrue, otherwise string) valueMapper {
	return func(token string) (string, bool) {
		if token == "True" {
			return onTrue, true
		}
		return otherwise, true
	}
}

// tableMapper maps tokens by exact match.
func tableMapper(table map[string]string) valueMapper {
	return func(token string) (string, bool) {
		v, ok := table[token]
		return v, ok
	}
}

// InternalSettingName returns the name Ryujinx uses in LogValueChange lines.
func InternalSettingName(name report.SettingName) (string, bool) {
	for _, s := range settingSpecs {
		if s.name == name {
			return s.internal, true
		}
	}
	return "", false
}

// ExtractSettings walks every LogValueChange line of each setting in
// order and keeps the last token that maps to a display value.
//
// A setting without any line stays Unknown and yields a *report.FieldError.
// When the final token has no mapping, the setting keeps the last value
// that did map (Unknown if none did) and a *report.SettingError wrapping
// report.ErrUnmappedSettingValue is recorded. A failure for one setting
// never affects the others.
func ExtractSettings(body string) (report.Settings, []error) {
	settings := report.NewSettings()
	var misses []error

	lines := splitLines(body)
	for _, spec := range settingSpecs {
		tokens := settingTokens(lines, spec)
		if len(tokens) == 0 {
			misses = append(misses, &report.FieldError{Field: string(spec.name)})
			continue
		}
		field := settings.Field(spec.name)
		for _, token := range tokens {
			if display, ok := spec.mapValue(token); ok {
				*field = display
			}
		}
		last := tokens[len(tokens)-1]
		if _, ok := spec.mapValue(last); !ok {
			misses = append(misses, &report.SettingError{
				Setting: spec.name,
				Token:   last,
				Err:     report.ErrUnmappedSettingValue,
			})
		}
	}
	return settings, misses
}

// settingTokens returns the logged tokens for spec in log order.
func settingTokens(lines []string, spec settingSpec) []string {
	var tokens []string
	for _, line := range lines {
		if !strings.Contains(line, settingMarker) || !spec.pattern.MatchString(line) {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			tokens = append(tokens, fields[len(fields)-1])
		}
	}
	return tokens
}

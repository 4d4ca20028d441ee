package parser

import (
	"regexp"

	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

// BuildKind classifies an emulator version string.
type BuildKind int

const (
	// BuildUnknown means the version was not found in the log.
	BuildUnknown BuildKind = iota
	// BuildMainline is an official release, e.g. "1.1.1234".
	BuildMainline
	// BuildPullRequest is a PR test build, e.g. "1.1.0+a1b2c3d".
	BuildPullRequest
	// BuildLDN is a local wireless build, e.g. "1.1.0-ldn2.5".
	BuildLDN
	// BuildCustom is anything else.
	BuildCustom
)

var (
	mainlineVersionPattern = regexp.MustCompile(`^\d\.\d\.\d{4}$`)
	prVersionPattern       = regexp.MustCompile(`^\d\.\d\.\d\+[a-f0-9]{7}$`)
	ldnVersionPattern      = regexp.MustCompile(`^\d\.\d\.\d-ldn\d\.\d$`)
)

// ClassifyVersion reports which release channel produced version.
func ClassifyVersion(version string) BuildKind {
	switch {
	case version == "" || version == report.Unknown:
		return BuildUnknown
	case mainlineVersionPattern.MatchString(version):
		return BuildMainline
	case prVersionPattern.MatchString(version):
		return BuildPullRequest
	case ldnVersionPattern.MatchString(version):
		return BuildLDN
	}
	return BuildCustom
}

func (k BuildKind) String() string {
	switch k {
	case BuildMainline:
		return "mainline"
	case BuildPullRequest:
		return "pr"
	case BuildLDN:
		return "ldn"
	case BuildCustom:
		return "custom"
	}
	return "unknown"
}

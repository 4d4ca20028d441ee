package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/ryulog/ryulog-go/pkg/ryulog"
	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"json":     true,
	"pretty":   true,
	"markdown": true,
}

// renderWidth is the word wrap used when rendering markdown.
const renderWidth = 100

// settingLabels orders the settings for display.
var settingLabels = []struct {
	name  report.SettingName
	label string
}{
	{report.AudioBackend, "Audio Backend"},
	{report.Docked, "Console Mode"},
	{report.PPTC, "PPTC Cache"},
	{report.ShaderCache, "Shader Cache"},
	{report.VSync, "V-Sync"},
	{report.ResolutionScale, "Resolution Scale"},
	{report.AnisotropicFiltering, "Anisotropic Filtering"},
	{report.AspectRatio, "Aspect Ratio"},
	{report.MemoryManager, "Memory Manager"},
	{report.ExpandRAM, "Expand DRAM"},
	{report.IgnoreMissingServices, "Ignore Missing Services"},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	severityStyles = map[report.Severity]lipgloss.Style{
		report.Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		report.Blocking: lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		report.Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")),
		report.Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		report.Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
	}
)

// outputOptions controls how a report is written.
type outputOptions struct {
	// File is the analysed file name, shown in headers. May be empty.
	File string
	// Render passes markdown output through a terminal renderer.
	Render bool
}

// OutputReport writes a report in the specified format to the writer.
func OutputReport(format string, r ryulog.Report, out io.Writer, opts outputOptions) error {
	switch format {
	case "json":
		return OutputJSON(r, out, opts)
	case "pretty":
		return OutputPretty(r, out, opts)
	case "markdown":
		md := Markdown(r, opts)
		if opts.Render {
			rendered, err := renderMarkdown(md)
			if err != nil {
				return err
			}
			md = rendered
		}
		_, err := io.WriteString(out, md)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// jsonReport is one JSON line of output.
type jsonReport struct {
	File string `json:"file,omitempty"`
	ryulog.Report
	Recovered []string `json:"recovered,omitempty"`
}

// OutputJSON writes a report as a single JSON line.
func OutputJSON(r ryulog.Report, out io.Writer, opts outputOptions) error {
	v := jsonReport{File: opts.File, Report: r}
	for _, err := range r.Recovered {
		v.Recovered = append(v.Recovered, err.Error())
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// jsonDuplicate is the JSON line written in place of a skipped duplicate.
type jsonDuplicate struct {
	File        string `json:"file"`
	DuplicateOf string `json:"duplicate_of"`
}

// OutputDuplicate notes that path was skipped because first is the same log.
func OutputDuplicate(format, path, first string, out io.Writer) error {
	if format == "json" {
		data, err := json.Marshal(jsonDuplicate{File: path, DuplicateOf: first})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err := fmt.Fprintf(out, "%s: already analyzed as %s\n", path, first)
	return err
}

// OutputPretty writes a report as styled terminal sections.
func OutputPretty(r ryulog.Report, out io.Writer, opts outputOptions) error {
	var sections []string

	title := "Ryujinx log analysis"
	if opts.File != "" {
		title += ": " + opts.File
	}
	sections = append(sections, titleStyle.Render(title))

	if r.IsEmpty() {
		sections = append(sections, boxStyle.Render(report.EmptyLogHelp))
	}

	sections = append(sections,
		box("Emulator", [][2]string{
			{"Version", r.Emulator.Version},
			{"Firmware", r.Emulator.Firmware},
			{"Logs", orUnknown(r.Emulator.LogsEnabled)},
		}),
		box("Hardware", [][2]string{
			{"CPU", r.Hardware.CPU},
			{"GPU", r.Hardware.GPU},
			{"RAM", r.Hardware.RAM},
			{"OS", r.Hardware.OS},
		}),
		box("Game", [][2]string{
			{"Name", r.GameName},
			{"Mods", r.ModsSummary()},
		}),
	)

	settings := make([][2]string, 0, len(settingLabels))
	for _, s := range settingLabels {
		settings = append(settings, [2]string{s.label, r.Settings.Get(s.name)})
	}
	sections = append(sections,
		box("Settings", settings),
		boxStyle.Render(headingStyle.Render("Latest Error")+"\n"+r.ErrorSnippet),
	)

	if len(r.Notes) > 0 {
		lines := []string{headingStyle.Render("Notes")}
		for _, n := range r.Notes {
			lines = append(lines, severityStyles[n.Severity].Render(n.String()))
		}
		sections = append(sections, boxStyle.Render(strings.Join(lines, "\n")))
	}

	_, err := fmt.Fprintln(out, lipgloss.JoinVertical(lipgloss.Left, sections...))
	return err
}

func box(heading string, rows [][2]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, headingStyle.Render(heading))
	for _, row := range rows {
		value := strings.ReplaceAll(row[1], "\n", "\n  ")
		lines = append(lines, labelStyle.Render(row[0]+":")+" "+value)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func orUnknown(s string) string {
	if s == "" {
		return report.Unknown
	}
	return s
}

// Markdown formats a report as a markdown document. Critical and
// blocking notes are bold.
func Markdown(r ryulog.Report, opts outputOptions) string {
	var b strings.Builder

	b.WriteString("# Ryujinx log analysis\n\n")
	if opts.File != "" {
		fmt.Fprintf(&b, "`%s`\n\n", opts.File)
	}
	if r.IsEmpty() {
		fmt.Fprintf(&b, "> %s\n\n", report.EmptyLogHelp)
	}

	b.WriteString("## Emulator Info\n\n")
	fmt.Fprintf(&b, "- **Version:** %s\n", r.Emulator.Version)
	fmt.Fprintf(&b, "- **Firmware:** %s\n", r.Emulator.Firmware)
	fmt.Fprintf(&b, "- **Logs enabled:** %s\n\n", orUnknown(r.Emulator.LogsEnabled))

	b.WriteString("## System Info\n\n")
	fmt.Fprintf(&b, "- **CPU:** %s\n", r.Hardware.CPU)
	fmt.Fprintf(&b, "- **GPU:** %s\n", r.Hardware.GPU)
	fmt.Fprintf(&b, "- **RAM:** %s\n", r.Hardware.RAM)
	fmt.Fprintf(&b, "- **OS:** %s\n\n", r.Hardware.OS)

	b.WriteString("## Game Info\n\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", r.GameName)
	if len(r.Mods) == 0 {
		fmt.Fprintf(&b, "- **Mods:** %s\n\n", report.NoModsFound)
	} else {
		b.WriteString("- **Mods:**\n")
		for _, m := range r.Mods {
			fmt.Fprintf(&b, "  - %s\n", m)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Settings\n\n")
	b.WriteString("| Setting | Value |\n|---|---|\n")
	for _, s := range settingLabels {
		fmt.Fprintf(&b, "| %s | %s |\n", s.label, r.Settings.Get(s.name))
	}
	b.WriteString("\n")

	b.WriteString("## Latest Error Snippet\n\n")
	fmt.Fprintf(&b, "```\n%s\n```\n", r.ErrorSnippet)

	if len(r.Notes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, n := range r.Notes {
			if n.Severity <= report.Blocking {
				fmt.Fprintf(&b, "- **%s**\n", n)
			} else {
				fmt.Fprintf(&b, "- %s\n", n)
			}
		}
	}
	return b.String()
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

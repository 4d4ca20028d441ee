package ryulog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/ryulog/ryulog-go/internal/parser"
	"github.com/ryulog/ryulog-go/internal/safefile"
	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

// Re-exported report types so most callers need a single import.
type (
	Report       = report.Report
	Note         = report.Note
	Severity     = report.Severity
	Channel      = report.Channel
	HardwareInfo = report.HardwareInfo
	EmulatorInfo = report.EmulatorInfo
	Settings     = report.Settings
	Mod          = report.Mod
)

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Analyze extracts hardware, emulator, settings and error information from
// a Ryujinx log and evaluates the diagnostic rules over it.
//
// Missing or garbled sections never fail the call: affected fields keep
// report.Unknown and the reason is appended to Report.Recovered. The only
// errors returned are invalid options and, with WithStrict(true),
// report.ErrNoTimestampFound (the best-effort report is still returned).
//
// Example:
//
//	r, err := ryulog.Analyze(text, ryulog.WithChannel(report.ChannelGeneral))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, n := range r.Notes {
//	    fmt.Println(n)
//	}
func Analyze(text string, opts ...Option) (Report, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return report.Report{}, fmt.Errorf("invalid options: %w", err)
	}
	return analyze(text, cfg)
}

// AnalyzeFile reads the head and tail of a regular file and analyzes it.
// Returns ErrInvalidEncoding when the bytes read are not valid UTF-8.
func AnalyzeFile(path string, opts ...Option) (Report, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return report.Report{}, fmt.Errorf("invalid options: %w", err)
	}
	data, err := safefile.ReadHeadTail(path, cfg.headBytes, cfg.tailBytes)
	if err != nil {
		return report.Report{}, fmt.Errorf("reading log: %w", err)
	}
	if !utf8.Valid(data) {
		return report.Report{}, ErrInvalidEncoding
	}
	return analyze(string(data), cfg)
}

func analyze(text string, cfg *config) (Report, error) {
	log := cfg.logger
	if log == nil {
		log = discardLogger
	}

	r := report.New()
	body, err := parser.TrimToLogBody(text)
	if err != nil {
		log.Debug("no log body", "error", err)
		r.Recovered = append(r.Recovered, err)
		r.Notes = evaluate(&state{
			channel:  cfg.channel,
			hardware: r.Hardware,
			emulator: r.Emulator,
			gameName: r.GameName,
			settings: r.Settings,
		})
		if cfg.strict {
			return r, err
		}
		return r, nil
	}

	var misses []error
	hw, errs := parser.ExtractHardware(body)
	misses = append(misses, errs...)
	emu, errs := parser.ExtractEmulator(body)
	misses = append(misses, errs...)
	settings, errs := parser.ExtractSettings(body)
	misses = append(misses, errs...)
	game, err := parser.ExtractGameName(body)
	if err != nil {
		misses = append(misses, err)
	}

	blocks := parser.GroupErrorBlocks(body)
	snippet, err := parser.PrimarySnippet(blocks)
	if err != nil {
		misses = append(misses, err)
	}
	session := parser.ExtractSession(body)

	for _, miss := range misses {
		logRecovered(log, miss)
	}

	r.Hardware = hw
	r.Emulator = emu
	r.GameName = game
	r.Settings = settings
	r.ErrorSnippet = snippet
	r.Mods = session.Mods
	r.Recovered = misses
	r.Notes = evaluate(&state{
		bodyFound:  true,
		channel:    cfg.channel,
		hardware:   hw,
		emulator:   emu,
		gameName:   game,
		settings:   settings,
		signatures: cfg.signatures.Match(parser.BlockTexts(blocks)),
		session:    session,
	})
	log.Debug("analysis complete",
		"notes", len(r.Notes),
		"error_blocks", len(blocks),
		"recovered", len(r.Recovered),
	)
	return r, nil
}

func logRecovered(log *slog.Logger, err error) {
	var settingErr *report.SettingError
	var fieldErr *report.FieldError
	switch {
	case errors.As(err, &settingErr):
		log.Debug("unmapped setting value", "setting", settingErr.Setting, "token", settingErr.Token)
	case errors.As(err, &fieldErr):
		log.Debug("field not found", "field", fieldErr.Field)
	default:
		log.Debug("recovered", "error", err)
	}
}

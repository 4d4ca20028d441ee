// Package ryulog analyzes Ryujinx emulator log files.
//
// This package allows you to:
//   - Extract hardware, emulator, game and settings information from a log
//   - Find the last error and known fault signatures in it
//   - Get a list of severity-ranked notes about likely problems
//   - Watch a running emulator's log and get a fresh report as it grows
//
// # Basic Usage
//
// To analyze log text already in memory:
//
//	r, err := ryulog.Analyze(text, ryulog.WithChannel(report.ChannelGeneral))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(r.GameName, r.Emulator.Version)
//	for _, n := range r.Notes {
//	    fmt.Println(n) // glyph followed by text, most severe first
//	}
//
// To analyze a file on disk, reading only its head and tail:
//
//	r, err := ryulog.AnalyzeFile("Ryujinx_1.1.1234_2024-01-15_23-59-59.log")
//
// Analysis is best-effort. A section that is missing or cannot be mapped
// leaves its field at report.Unknown and adds an entry to Report.Recovered;
// rules never fire on Unknown values.
//
// # Watching a Live Log
//
//	w, err := ryulog.NewWatcher(ryulog.WithQuietPeriod(3 * time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	reports, errs, err := w.Watch(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    select {
//	    case r, ok := <-reports:
//	        if !ok {
//	            return
//	        }
//	        fmt.Println(r.ErrorSnippet)
//	    case err, ok := <-errs:
//	        if !ok {
//	            return
//	        }
//	        log.Printf("error: %v", err)
//	    }
//	}
//
// # Fault Signatures
//
// Error blocks are searched with the built-in signatures. Add more from a
// YAML file with the [signature] subpackage:
//
//	set, err := signature.NewSetFromFile("signatures.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := ryulog.Analyze(text, ryulog.WithSignatures(set))
//
// # Disclaimer
//
// This is an unofficial tool and is not affiliated with the Ryujinx project.
package ryulog

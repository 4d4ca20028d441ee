package parser

import (
	"os"
	"strings"
	"testing"
)

func loadBenchBody(b *testing.B) string {
	b.Helper()
	data, err := os.ReadFile("testdata/session.log")
	if err != nil {
		b.Fatal(err)
	}
	// Roughly the size of a head+tail download.
	text := strings.Repeat(string(data), 20)
	body, err := TrimToLogBody(text)
	if err != nil {
		b.Fatal(err)
	}
	return body
}

func BenchmarkTrimToLogBody(b *testing.B) {
	text := strings.Repeat("x", 30000) + "00:00:00.000 |I| start"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = TrimToLogBody(text)
	}
}

func BenchmarkExtractHardware(b *testing.B) {
	body := loadBenchBody(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ExtractHardware(body)
	}
}

func BenchmarkExtractSettings(b *testing.B) {
	body := loadBenchBody(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ExtractSettings(body)
	}
}

func BenchmarkGroupErrorBlocks(b *testing.B) {
	body := loadBenchBody(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GroupErrorBlocks(body)
	}
}

// FuzzExtract checks that no extractor panics and that defaults hold when
// there is no log body.
func FuzzExtract(f *testing.F) {
	f.Add("00:00:00.000 |I| Application PrintSystemInfo: Ryujinx Version: 1.1.1234")
	f.Add("12:00:00.000 CPU: Ryzen 5; RAM: Total 16000 MB; Operating System: Windows")
	f.Add("00:00:00.000 |E| boom\n    at Foo()\n\n")
	f.Add("LogValueChange: ResScale set to: 99")
	f.Add("")
	f.Add(string([]byte{0xff, 0xfe, 0xfd}))
	f.Add("00:00:00.000 Found mod '' []")

	f.Fuzz(func(t *testing.T, text string) {
		body, err := TrimToLogBody(text)
		if err != nil && body != "" {
			t.Errorf("TrimToLogBody() returned body %q with error %v", body, err)
		}
		hw, _ := ExtractHardware(body)
		_, _ = ExtractEmulator(body)
		_, _ = ExtractGameName(body)
		_, _ = ExtractSettings(body)
		_ = ExtractSession(body)
		_, _ = PrimarySnippet(GroupErrorBlocks(body))

		if err != nil && hw.CPU != "Unknown" {
			t.Errorf("CPU = %q extracted without a log body", hw.CPU)
		}
	})
}

package safefile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Ryujinx_1.1.1234_2024-01-15_23-59-59.log")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadHeadTail_SmallFile(t *testing.T) {
	content := []byte("00:00:00.000 |I| Application Print: hello\n")
	path := writeFile(t, content)

	got, err := ReadHeadTail(path, DefaultHeadBytes, DefaultTailBytes)
	if err != nil {
		t.Fatalf("ReadHeadTail() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("ReadHeadTail() = %q, want %q", got, content)
	}
}

func TestReadHeadTail_HeadAndTail(t *testing.T) {
	content := []byte("HEAD" + strings.Repeat("x", 100) + "TAIL")
	path := writeFile(t, content)

	got, err := ReadHeadTail(path, 4, 4)
	if err != nil {
		t.Fatalf("ReadHeadTail() error = %v", err)
	}
	if want := "HEAD\nTAIL"; string(got) != want {
		t.Errorf("ReadHeadTail() = %q, want %q", got, want)
	}
}

func TestReadHeadTail_ExactFit(t *testing.T) {
	content := []byte("abcdefgh")
	path := writeFile(t, content)

	got, err := ReadHeadTail(path, 4, 4)
	if err != nil {
		t.Fatalf("ReadHeadTail() error = %v", err)
	}
	if string(got) != "abcdefgh" {
		t.Errorf("ReadHeadTail() = %q, want whole file", got)
	}
}

func TestReadHeadTail_OnlyHead(t *testing.T) {
	path := writeFile(t, []byte("0123456789"))

	got, err := ReadHeadTail(path, 3, 0)
	if err != nil {
		t.Fatalf("ReadHeadTail() error = %v", err)
	}
	if string(got) != "012" {
		t.Errorf("ReadHeadTail() = %q, want %q", got, "012")
	}
}

func TestReadHeadTail_DoesNotSplitRunes(t *testing.T) {
	// "é" is two bytes; both cuts land in the middle of one.
	content := []byte("aé" + strings.Repeat("-", 50) + "éb")
	path := writeFile(t, content)

	got, err := ReadHeadTail(path, 2, 2)
	if err != nil {
		t.Fatalf("ReadHeadTail() error = %v", err)
	}
	if !utf8.Valid(got) {
		t.Fatalf("ReadHeadTail() returned invalid UTF-8: %q", got)
	}
	if want := "a\nb"; string(got) != want {
		t.Errorf("ReadHeadTail() = %q, want %q", got, want)
	}
}

func TestReadHeadTail_InvalidWindow(t *testing.T) {
	path := writeFile(t, []byte("data"))
	if _, err := ReadHeadTail(path, -1, 10); err == nil {
		t.Error("ReadHeadTail() expected error for negative head")
	}
}

func TestReadHeadTail_RejectsDirectory(t *testing.T) {
	_, err := ReadHeadTail(t.TempDir(), 10, 10)
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("ReadHeadTail() error = %v, want ErrNotRegularFile", err)
	}
}

func TestTrimPartial(t *testing.T) {
	euro := []byte("€") // 3 bytes
	tests := []struct {
		name string
		fn   func([]byte) []byte
		in   []byte
		want []byte
	}{
		{"suffix complete", trimPartialSuffix, append([]byte("a"), euro...), append([]byte("a"), euro...)},
		{"suffix cut after one byte", trimPartialSuffix, append([]byte("a"), euro[:1]...), []byte("a")},
		{"suffix cut after two bytes", trimPartialSuffix, append([]byte("a"), euro[:2]...), []byte("a")},
		{"suffix ascii", trimPartialSuffix, []byte("abc"), []byte("abc")},
		{"prefix complete", trimPartialPrefix, append(euro, 'a'), append(euro, 'a')},
		{"prefix cut", trimPartialPrefix, append(euro[1:], 'a'), []byte("a")},
		{"prefix only continuation", trimPartialPrefix, euro[1:], nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(append([]byte(nil), tt.in...))
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

func TestGroupErrorBlocks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []ErrorBlock
	}{
		{
			name: "head with continuations",
			body: strings.Join([]string{
				"00:00:01.000 |E| Gpu Error: boom",
				"    at Foo()",
				"\tat Bar()",
				"",
				"00:00:02.000 |I| unrelated",
			}, "\n"),
			want: []ErrorBlock{
				{Lines: []string{"00:00:01.000 |E| Gpu Error: boom", "    at Foo()", "\tat Bar()"}},
			},
		},
		{
			name: "unrelated line does not close block",
			body: strings.Join([]string{
				"00:00:01.000 |E| first",
				"00:00:01.500 |I| info",
				"    late continuation",
			}, "\n"),
			want: []ErrorBlock{
				{Lines: []string{"00:00:01.000 |E| first", "    late continuation"}},
			},
		},
		{
			name: "indented lines before any error are dropped",
			body: "    orphan\n00:00:01.000 |E| head",
			want: []ErrorBlock{
				{Lines: []string{"00:00:01.000 |E| head"}},
			},
		},
		{
			name: "multiple blocks in order",
			body: "00:00:01.000 |E| one\n  a\n00:00:02.000 |E| two\r\n  b\r\n",
			want: []ErrorBlock{
				{Lines: []string{"00:00:01.000 |E| one", "  a"}},
				{Lines: []string{"00:00:02.000 |E| two", "  b"}},
			},
		},
		{
			name: "no errors",
			body: "00:00:01.000 |I| fine\n  indented",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupErrorBlocks(tt.body)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GroupErrorBlocks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrimarySnippet(t *testing.T) {
	body := strings.Join([]string{
		"00:00:01.000 |E| Application Unhandled exception",
		"    at Ryujinx.Main()",
		"    at Ryujinx.Program()",
		"",
		"00:00:02.000 |I| Application Exit",
	}, "\n")

	got, err := PrimarySnippet(GroupErrorBlocks(body))
	if err != nil {
		t.Fatalf("PrimarySnippet() error = %v", err)
	}
	want := "00:00:01.000 |E| Application Unhandled exception\n    at Ryujinx.Main()"
	if got != want {
		t.Errorf("PrimarySnippet() = %q, want %q", got, want)
	}
}

func TestPrimarySnippet_LastBlockWins(t *testing.T) {
	got, err := PrimarySnippet(GroupErrorBlocks(readSession(t)))
	if err != nil {
		t.Fatalf("PrimarySnippet() error = %v", err)
	}
	want := "00:05:12.345 |E| Application Unhandled exception caught: System.InvalidOperationException: Bad state\n" +
		"    at Ryujinx.Graphics.Gpu.Shader.ShaderCache.Initialize()"
	if got != want {
		t.Errorf("PrimarySnippet() = %q, want %q", got, want)
	}
}

func TestPrimarySnippet_SingleLine(t *testing.T) {
	got, err := PrimarySnippet([]ErrorBlock{{Lines: []string{"00:00:01.000 |E| alone"}}})
	if err != nil {
		t.Fatalf("PrimarySnippet() error = %v", err)
	}
	if got != "00:00:01.000 |E| alone" {
		t.Errorf("PrimarySnippet() = %q", got)
	}
}

func TestPrimarySnippet_Empty(t *testing.T) {
	got, err := PrimarySnippet(nil)
	if err != nil {
		t.Fatalf("PrimarySnippet() error = %v", err)
	}
	if got != report.NoErrorsFound {
		t.Errorf("PrimarySnippet() = %q, want %q", got, report.NoErrorsFound)
	}
}

func TestPrimarySnippet_Malformed(t *testing.T) {
	blocks := []ErrorBlock{{Lines: []string{"    not a head"}}}

	got, err := PrimarySnippet(blocks)
	if !errors.Is(err, report.ErrMalformedErrorBlock) {
		t.Errorf("PrimarySnippet() error = %v, want ErrMalformedErrorBlock", err)
	}
	if got != report.NoErrorsFound {
		t.Errorf("PrimarySnippet() = %q, want %q", got, report.NoErrorsFound)
	}
}

func TestBlockTexts(t *testing.T) {
	blocks := []ErrorBlock{
		{Lines: []string{"h1", " c1"}},
		{Lines: []string{"h2"}},
	}
	want := []string{"h1\n c1", "h2"}
	if diff := cmp.Diff(want, BlockTexts(blocks)); diff != "" {
		t.Errorf("BlockTexts() mismatch (-want +got):\n%s", diff)
	}
}

package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ryulog/ryulog-go/pkg/ryulog/report"
)

// snippetLines is how many lines of the last error block form the snippet.
const snippetLines = 2

// ErrorBlock is an error head line followed by its indented continuation lines.
type ErrorBlock struct {
	Lines []string
}

// Head returns the first line of the block.
func (b ErrorBlock) Head() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return b.Lines[0]
}

// Text joins the block's lines with newlines.
func (b ErrorBlock) Text() string {
	return strings.Join(b.Lines, "\n")
}

// GroupErrorBlocks splits body into error blocks in source order.
//
// A line containing "|E|" opens a new block. While a block is open, lines
// starting with whitespace are appended to it. Blank lines are skipped.
// Any other line is ignored and does not close the open block.
func GroupErrorBlocks(body string) []ErrorBlock {
	var blocks []ErrorBlock
	for _, line := range splitLines(body) {
		if line == "" {
			continue
		}
		if strings.Contains(line, errorMarker) {
			blocks = append(blocks, ErrorBlock{Lines: []string{line}})
			continue
		}
		if len(blocks) > 0 && startsWithSpace(line) {
			last := &blocks[len(blocks)-1]
			last.Lines = append(last.Lines, line)
		}
	}
	return blocks
}

// PrimarySnippet returns the first two lines of the last block.
// With no blocks it returns report.NoErrorsFound. If the last block does
// not start with an error head it returns report.NoErrorsFound together
// with report.ErrMalformedErrorBlock.
func PrimarySnippet(blocks []ErrorBlock) (string, error) {
	if len(blocks) == 0 {
		return report.NoErrorsFound, nil
	}
	last := blocks[len(blocks)-1]
	if !strings.Contains(last.Head(), errorMarker) {
		return report.NoErrorsFound, report.ErrMalformedErrorBlock
	}
	n := min(len(last.Lines), snippetLines)
	return strings.Join(last.Lines[:n], "\n"), nil
}

// BlockTexts returns the joined text of every block.
func BlockTexts(blocks []ErrorBlock) []string {
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text()
	}
	return texts
}

func startsWithSpace(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return isSpace(r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

package ryulog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineBuffer_UnderCap(t *testing.T) {
	b := newLineBuffer(100)
	b.Add("one")
	b.Add("two")
	assert.Equal(t, "one\ntwo\n", b.String())
	assert.Equal(t, 8, b.Len())
}

func TestLineBuffer_KeepsHeadAndRecentTail(t *testing.T) {
	b := newLineBuffer(20)
	for _, l := range []string{"h1", "h2", "h3", "m1", "m2", "m3", "t1", "t2", "t3"} {
		b.Add(l)
	}
	got := b.String()

	assert.True(t, strings.HasPrefix(got, "h1\nh2\nh3\n"), "head kept: %q", got)
	assert.True(t, strings.HasSuffix(got, "t2\nt3\n"), "recent tail kept: %q", got)
	assert.NotContains(t, got, "m1")
	assert.LessOrEqual(t, b.Len(), 20)
}

func TestLineBuffer_OversizedLine(t *testing.T) {
	b := newLineBuffer(10)
	long := strings.Repeat("x", 50)
	b.Add(long)
	assert.Contains(t, b.String(), long)

	b.Add("next")
	assert.NotContains(t, b.String(), long)
	assert.Contains(t, b.String(), "next")
}

func TestLineBuffer_Reset(t *testing.T) {
	b := newLineBuffer(10)
	b.Add("something long enough")
	b.Reset()
	assert.Zero(t, b.Len())
	assert.Empty(t, b.String())

	b.Add("a")
	assert.Equal(t, "a\n", b.String())
}

package recent

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys[V any](l *List[V]) []string {
	var out []string
	for _, e := range l.Entries() {
		out = append(out, e.Key)
	}
	return out
}

func TestList_FIFOEviction(t *testing.T) {
	l := New[int](DefaultCapacity)
	for i := 1; i <= 7; i++ {
		require.True(t, l.Add(fmt.Sprintf("log%d", i), i))
	}

	assert.Equal(t, DefaultCapacity, l.Len())
	assert.Equal(t, []string{"log3", "log4", "log5", "log6", "log7"}, keys(l))

	_, ok := l.Lookup("log1")
	assert.False(t, ok, "oldest entries must be evicted")
	v, ok := l.Lookup("log7")
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestList_DuplicateKeepsFirst(t *testing.T) {
	l := New[string](3)
	require.True(t, l.Add("a", "first"))
	assert.False(t, l.Add("a", "second"))

	v, ok := l.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, l.Len())
}

func TestList_LookupDoesNotRefresh(t *testing.T) {
	l := New[int](2)
	l.Add("a", 1)
	l.Add("b", 2)
	_, _ = l.Lookup("a")
	l.Add("c", 3)

	assert.Equal(t, []string{"b", "c"}, keys(l))
}

func TestList_DefaultCapacity(t *testing.T) {
	l := New[int](0)
	for i := 0; i < 10; i++ {
		l.Add(fmt.Sprint(i), i)
	}
	assert.Equal(t, DefaultCapacity, l.Len())
}

func TestList_EntriesIsCopy(t *testing.T) {
	l := New[int](2)
	l.Add("a", 1)
	entries := l.Entries()
	entries[0].Key = "changed"
	assert.Equal(t, []string{"a"}, keys(l))
}

func TestList_Concurrent(t *testing.T) {
	l := New[int](DefaultCapacity)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Add(fmt.Sprint(i), i)
			_, _ = l.Lookup(fmt.Sprint(i))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, DefaultCapacity, l.Len())
}

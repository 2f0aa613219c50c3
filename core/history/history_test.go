package history

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleStore_WriteTo() {
	h := New(3)
	h.Record("ls")
	h.Record("pwd")
	h.Record("echo hi")
	h.Record("date")

	h.WriteTo(os.Stdout)

	// Output:     1  pwd
	//     2  echo hi
	//     3  date
}

func TestStore(t *testing.T) {
	h := New(10)
	h.Record("ls")
	h.Record("pwd")
	h.Record("echo hi")

	assert.Equal(t, 3, h.Count())

	for i, want := range []string{"ls", "pwd", "echo hi"} {
		got, ok := h.Lookup(i)
		assert.True(t, ok, "index %d", i)
		assert.Equal(t, want, got)
	}

	_, ok := h.Lookup(3)
	assert.False(t, ok)
	_, ok = h.Lookup(-1)
	assert.False(t, ok)

	last, ok := h.Last()
	assert.True(t, ok)
	assert.Equal(t, "echo hi", last)
}

func TestStore_empty(t *testing.T) {
	h := New(0)

	assert.Equal(t, 0, h.Count())
	_, ok := h.Last()
	assert.False(t, ok)
	assert.Empty(t, h.Entries())
}

func TestStore_rolling(t *testing.T) {
	h := New(2)
	for i := 0; i < 5; i++ {
		h.Record(fmt.Sprintf("cmd%d", i))
	}

	assert.Equal(t, 5, h.Count())
	assert.Equal(t, []Entry{{3, "cmd3"}, {4, "cmd4"}}, h.Entries())

	_, ok := h.Lookup(2)
	assert.False(t, ok, "evicted entries can't be looked up")

	got, ok := h.Lookup(4)
	assert.True(t, ok)
	assert.Equal(t, "cmd4", got)
}

func TestStore_Clear(t *testing.T) {
	h := New(5)
	h.Record("a")
	h.Record("b")
	h.Clear()

	assert.Empty(t, h.Entries())
	_, ok := h.Last()
	assert.False(t, ok)

	h.Record("c")
	got, ok := h.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "c", got)
}

func TestStore_WriteTo(t *testing.T) {
	h := New(5)
	h.Record("ls")
	h.Record("pwd")

	buf := &bytes.Buffer{}
	n, err := h.WriteTo(buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "    0  ls\n    1  pwd\n", buf.String())
}

func TestStore_Clone(t *testing.T) {
	h := New(2)
	h.Record("ls")
	h.Record("pwd")

	clone := h.Clone()
	clone.Record("date")
	clone.Clear()

	assert.Equal(t, 2, h.Count())
	assert.Equal(t, []Entry{{0, "ls"}, {1, "pwd"}}, h.Entries())
	assert.Equal(t, 3, clone.Count())
	assert.Empty(t, clone.Entries())
}

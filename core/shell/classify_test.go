package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleClassify() {
	c, _ := Classify([]string{"cat", "<", "in.txt", "1>", "out.txt"})
	fmt.Println(c.Route, c.RedirectIndex)

	c, _ = Classify([]string{"echo", "hello", "|", "wc", "-c"})
	fmt.Println(c.Route, c.PipeIndex)

	// Output: redirect 1
	// pipe 2
}

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		args    []string
		want    Classification
		wantErr error
	}{
		"empty": {
			args: nil,
			want: Classification{Route: RouteSimple, PipeIndex: -1, RedirectIndex: -1},
		},
		"simple": {
			args: []string{"ls", "-l"},
			want: Classification{Route: RouteSimple, PipeIndex: -1, RedirectIndex: -1},
		},
		"builtin": {
			args: []string{"cd", "/tmp"},
			want: Classification{Route: RouteSimple, PipeIndex: -1, RedirectIndex: -1},
		},
		"pipe": {
			args: []string{"echo", "hello", "|", "wc", "-c"},
			want: Classification{Route: RoutePipe, PipeIndex: 2, RedirectIndex: -1},
		},
		"redirect-first-operator-wins": {
			args: []string{"sort", "2>", "err", "<", "in", "1>", "out"},
			want: Classification{Route: RouteRedirect, PipeIndex: -1, RedirectIndex: 1},
		},
		"glued-operators-are-words": {
			args: []string{"echo", "a|b", ">out", "2>&1"},
			want: Classification{Route: RouteSimple, PipeIndex: -1, RedirectIndex: -1},
		},
		"bare-greater-than-is-a-word": {
			args: []string{"echo", "hi", ">", "out"},
			want: Classification{Route: RouteSimple, PipeIndex: -1, RedirectIndex: -1},
		},
		"second-pipe": {
			args:    []string{"a", "|", "b", "|", "c"},
			wantErr: ErrMultiplePipes,
		},
		"pipe-and-redirect": {
			args:    []string{"cat", "<", "in", "|", "wc"},
			wantErr: ErrPipeWithRedirect,
		},
		"redirect-after-pipe": {
			args:    []string{"cat", "|", "wc", "1>", "out"},
			wantErr: ErrPipeWithRedirect,
		},
		"leading-pipe": {
			args:    []string{"|", "wc"},
			wantErr: ErrEmptyPipeSide,
		},
		"trailing-pipe": {
			args:    []string{"ls", "|"},
			wantErr: ErrEmptyPipeSide,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, err := Classify(tc.args)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitPipe(t *testing.T) {
	args := []string{"echo", "hello", "|", "wc", "-c"}
	left, right := SplitPipe(args, 2)

	assert.Equal(t, []string{"echo", "hello"}, left)
	assert.Equal(t, []string{"wc", "-c"}, right)

	left[0] = "changed"
	assert.Equal(t, "echo", args[0], "sides are copies")
}

func TestIsRecall(t *testing.T) {
	cases := map[string]bool{
		"!!":   true,
		"!0":   true,
		"!12":  true,
		"!":    false,
		"!x":   false,
		"!1a":  false,
		"!!!":  false,
		"ls":   false,
		"1":    false,
		"!-1":  false,
		"!!ls": false,
	}

	for tok, want := range cases {
		t.Run(tok, func(t *testing.T) {
			assert.Equal(t, want, IsRecall(tok))
		})
	}
}

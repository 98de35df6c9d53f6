package player

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/bao/internal/game/core"
	"github.com/mitchelldurbincs/bao/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHuman(input string) (*HumanSelector, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewHumanSelector(bufio.NewReader(strings.NewReader(input)), out, testutil.NopLogger()), out
}

func TestHumanSelector_ParsesIndex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "5\n", 5},
		{"surrounding whitespace", "  12 \r\n", 12},
		{"out of range still returned", "42\n", 42},
		{"no trailing newline", "3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, out := newHuman(tt.input)

			idx, err := h.SelectBowl(context.Background(), BoardView{PlayerID: 1})
			require.NoError(t, err)
			assert.Equal(t, tt.want, idx)
			assert.Empty(t, out.String())
		})
	}
}

func TestHumanSelector_RepromptsOnGarbage(t *testing.T) {
	h, out := newHuman("abc\n\n-4\n7\n")

	idx, err := h.SelectBowl(context.Background(), BoardView{PlayerID: 2})
	require.NoError(t, err)
	assert.Equal(t, 7, idx)
	assert.Equal(t, strings.Repeat(InvalidNumberMessage+"\n", 3), out.String())
}

func TestHumanSelector_EOF(t *testing.T) {
	h, _ := newHuman("nope\n")

	_, err := h.SelectBowl(context.Background(), BoardView{PlayerID: 1})
	assert.ErrorIs(t, err, io.EOF)
}

func TestHumanSelector_SharedInput(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("4\n9\n"))
	p1 := NewHumanSelector(in, io.Discard, testutil.NopLogger())
	p2 := NewHumanSelector(in, io.Discard, testutil.NopLogger())

	a, err := p1.SelectBowl(context.Background(), BoardView{PlayerID: 1})
	require.NoError(t, err)
	b, err := p2.SelectBowl(context.Background(), BoardView{PlayerID: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, a)
	assert.Equal(t, 9, b)
}

func TestHumanSelector_CancelledContext(t *testing.T) {
	h, _ := newHuman("1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.SelectBowl(ctx, BoardView{Own: core.NewBowls()})
	assert.ErrorIs(t, err, context.Canceled)
}

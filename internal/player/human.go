package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// InvalidNumberMessage is printed when a line cannot be parsed as a bowl index.
const InvalidNumberMessage = "Please enter a valid number!"

// HumanSelector reads bowl indices, one per line.
type HumanSelector struct {
	in     *bufio.Reader
	out    io.Writer
	logger zerolog.Logger
}

// NewHumanSelector creates a selector reading from in and writing feedback to out.
func NewHumanSelector(in *bufio.Reader, out io.Writer, logger zerolog.Logger) *HumanSelector {
	return &HumanSelector{
		in:     in,
		out:    out,
		logger: logger.With().Str("component", "HumanSelector").Logger(),
	}
}

// SelectBowl blocks until a non-negative integer is entered. Text that does
// not parse is answered with InvalidNumberMessage and the next line is read.
// The range and stone count are not checked here. End of input is returned as
// an error wrapping io.EOF.
func (h *HumanSelector) SelectBowl(ctx context.Context, view BoardView) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return -1, err
		}

		line, err := h.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return -1, fmt.Errorf("read bowl index for player %d: %w", view.PlayerID, err)
		}

		idx, perr := strconv.Atoi(strings.TrimSpace(line))
		if perr != nil || idx < 0 {
			h.logger.Debug().Str("input", strings.TrimSpace(line)).Msg("Unparseable bowl index")
			fmt.Fprintln(h.out, InvalidNumberMessage)
			continue
		}
		return idx, nil
	}
}

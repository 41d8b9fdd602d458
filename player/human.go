package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tetraptych/synapsen/game"
)

// Human reads 1-based move indices from a line-based input, re-prompting on
// anything invalid. Only the information visible to the player is shown.
type Human struct {
	id  game.PlayerID
	in  *bufio.Scanner
	out io.Writer
}

// NewHuman builds a human player reading from in and prompting on out.
func NewHuman(id game.PlayerID, in io.Reader, out io.Writer) *Human {
	return &Human{
		id:  id,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// SelectMove shows the visible state and available moves, then blocks until
// a valid selection is entered.
func (h *Human) SelectMove(state game.State) (game.Move, error) {
	moves := state.GetMoves()
	if len(moves) == 0 {
		return game.Move{}, errors.New("no moves available: the hand is over")
	}
	fmt.Fprintln(h.out, h.Survey(state))

	for {
		fmt.Fprintf(h.out, "Enter your move (1 to %d): ", len(moves))
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return game.Move{}, err
			}
			return game.Move{}, io.EOF
		}
		index, err := strconv.Atoi(strings.TrimSpace(h.in.Text()))
		if err != nil || index < 1 || index > len(moves) {
			fmt.Fprintf(h.out, "Index must be between 1 and %d!\n", len(moves))
			continue
		}
		return moves[index-1], nil
	}
}

// Survey renders everything the player is allowed to see: the state from
// their side plus the available moves, flagging moves that would win the
// current trick.
func (h *Human) Survey(state game.State) string {
	var b strings.Builder
	gs, ok := state.(*game.GameState)
	if ok {
		b.WriteString(gs.String())
	}
	b.WriteString("\nAvailable Moves:")
	trick := []game.Play(nil)
	if ok {
		trick = gs.CurrentTrick()
	}
	for i, m := range state.GetMoves() {
		marker := ""
		if ok && len(trick) > 0 {
			completed := append(append([]game.Play(nil), trick...), game.Play{Player: h.id, Card: m.Card})
			if gs.TrickWinner(completed) == h.id {
				marker = " (W)"
			}
		}
		fmt.Fprintf(&b, "\n\t%d: %s%s", i+1, m, marker)
	}
	return b.String()
}

package player

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/tetraptych/synapsen/game"
)

func TestHumanSelectMove(t *testing.T) {
	newState := func() *game.GameState {
		return game.NewGameState(rand.New(rand.NewSource(1)))
	}

	t.Run("picks the move by its 1-based index", func(t *testing.T) {
		state := newState()
		var out bytes.Buffer
		h := NewHuman(1, strings.NewReader("3\n"), &out)

		m, err := h.SelectMove(state)
		require.NoError(t, err)
		require.Equal(t, state.GetMoves()[2], m)
		require.Contains(t, out.String(), "Enter your move (1 to 10): ")
	})

	t.Run("re-prompts until the input is valid", func(t *testing.T) {
		state := newState()
		var out bytes.Buffer
		h := NewHuman(1, strings.NewReader("0\neleven\n42\n1\n"), &out)

		m, err := h.SelectMove(state)
		require.NoError(t, err)
		require.Equal(t, state.GetMoves()[0], m)
		require.Equal(t, 3, strings.Count(out.String(), "Index must be between 1 and 10!"))
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		state := newState()
		var out bytes.Buffer
		h := NewHuman(1, strings.NewReader("  2 \n"), &out)

		m, err := h.SelectMove(state)
		require.NoError(t, err)
		require.Equal(t, state.GetMoves()[1], m)
	})

	t.Run("reports end of input", func(t *testing.T) {
		state := newState()
		h := NewHuman(1, strings.NewReader(""), io.Discard)

		_, err := h.SelectMove(state)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("errors on a finished hand", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		state := game.NewGameState(rng)
		for {
			moves := state.GetMoves()
			if len(moves) == 0 {
				break
			}
			state.DoMove(moves[rng.Intn(len(moves))])
		}

		h := NewHuman(1, strings.NewReader("1\n"), io.Discard)
		_, err := h.SelectMove(state)
		require.Error(t, err)
	})
}

func TestHumanSurvey(t *testing.T) {
	state := game.NewGameState(rand.New(rand.NewSource(1)))
	h := NewHuman(1, strings.NewReader(""), io.Discard)

	survey := h.Survey(state)
	require.Contains(t, survey, "Available Moves:")
	require.Equal(t, len(state.GetMoves()), strings.Count(survey, "\n\t"), "one line per move")
	require.Contains(t, survey, "10: ", "all ten opening moves are listed")
}

func TestHumanSurveyMarksWinningMoves(t *testing.T) {
	// Walk into a trick so the follower sees winner markers.
	state := game.NewGameState(rand.New(rand.NewSource(3)))
	state.DoMove(state.GetMoves()[0])

	h := NewHuman(2, strings.NewReader(""), io.Discard)
	survey := h.Survey(state)

	var wins int
	for _, m := range state.GetMoves() {
		trick := append(state.CurrentTrick(), game.Play{Player: 2, Card: m.Card})
		if state.TrickWinner(trick) == 2 {
			wins++
		}
	}
	require.Equal(t, wins, strings.Count(survey, " (W)"))
}

package player

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/tetraptych/synapsen/game"
	"github.com/tetraptych/synapsen/searcher"
)

// Player selects moves when asked by the game loop. SelectMove must return
// an element of state.GetMoves() and must not mutate state.
type Player interface {
	SelectMove(state game.State) (game.Move, error)
}

// Difficulty maps to an iteration budget for the search, with the top tier
// additionally searching omnisciently.
type Difficulty int

const (
	Trivial Difficulty = iota
	Easy
	Medium
	Hard
	Insane
)

// Iterations returns the search budget for the difficulty.
func (d Difficulty) Iterations() int {
	switch d {
	case Trivial:
		return 1
	case Easy:
		return 500
	case Medium:
		return 1500
	case Hard, Insane:
		return 5000
	default:
		return 1
	}
}

// Omniscient reports whether the difficulty searches with true hidden
// information visible.
func (d Difficulty) Omniscient() bool {
	return d == Insane
}

func (d Difficulty) String() string {
	switch d {
	case Trivial:
		return "trivial"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Insane:
		return "insane"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts a difficulty name as accepted on the command line.
func ParseDifficulty(name string) (Difficulty, error) {
	for _, d := range []Difficulty{Trivial, Easy, Medium, Hard, Insane} {
		if d.String() == name {
			return d, nil
		}
	}
	return Trivial, fmt.Errorf("unknown difficulty %q", name)
}

// Computer plays moves found by ISMCTS with a fixed iteration budget.
type Computer struct {
	id     game.PlayerID
	search *searcher.ISMCTS
}

// NewComputer builds a computer player from explicit search parameters.
func NewComputer(id game.PlayerID, iterations int, strategy searcher.Strategy, omniscient bool, rng *rand.Rand) *Computer {
	options := []searcher.Option{
		searcher.WithIterations(iterations),
		searcher.WithStrategy(strategy),
		searcher.WithMetrics(),
	}
	if omniscient {
		options = append(options, searcher.WithOmniscience())
	}
	return &Computer{
		id:     id,
		search: searcher.NewISMCTS(rng, options...),
	}
}

// NewComputerForDifficulty builds a computer player from the difficulty
// table.
func NewComputerForDifficulty(id game.PlayerID, difficulty Difficulty, strategy searcher.Strategy, rng *rand.Rand) *Computer {
	return NewComputer(id, difficulty.Iterations(), strategy, difficulty.Omniscient(), rng)
}

// SelectMove runs a full search and returns the best move found.
func (c *Computer) SelectMove(state game.State) (game.Move, error) {
	move, err := c.search.FindNextMove(state)
	if err != nil {
		return game.Move{}, err
	}
	metric := c.search.LastSearchMetric()
	log.Debug().
		Int("player", int(c.id)).
		Int("iterations", metric.Iterations).
		Dur("duration", metric.Duration).
		Int("treeNodes", metric.TreeNodes).
		Int("rolloutMoves", metric.RolloutMoves).
		Stringer("move", move).
		Msg("search complete")
	return move, nil
}

// RootStats exposes the statistics of the last search's root children.
func (c *Computer) RootStats() []searcher.ChildStat {
	return c.search.RootStats()
}

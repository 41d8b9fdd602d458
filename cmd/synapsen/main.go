package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/tetraptych/synapsen/game"
	"github.com/tetraptych/synapsen/gamemaster"
	"github.com/tetraptych/synapsen/player"
	"github.com/tetraptych/synapsen/searcher"
)

func main() {
	gameType := flag.String("game", "human-computer", "seats, e.g. human-computer or computer-computer")
	difficultyName := flag.String("difficulty", "medium", "computer strength: trivial, easy, medium, hard or insane")
	strategyName := flag.String("strategy", "id", "computer valuation strategy: id, win, at-least-2, at-least-3, deny-2 or deny-3")
	seed := flag.Uint64("seed", 0, "random seed (0 seeds from the clock)")
	verbose := flag.Bool("verbose", false, "log search statistics")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(*seed))

	difficulty, err := player.ParseDifficulty(*difficultyName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -difficulty")
	}
	strategy, err := searcher.ParseStrategy(*strategyName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -strategy")
	}

	state := game.NewGameState(rng)
	players, err := playersFromGameType(*gameType, difficulty, strategy, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -game")
	}

	output := termenv.NewOutput(os.Stdout)
	allComputers := true
	for _, p := range players {
		if _, ok := p.(*player.Human); ok {
			allComputers = false
		}
	}

	engine := gamemaster.NewLocalEngine(state, players[0], players[1])
	for state.Winner() == game.NoPlayer {
		if allComputers {
			fmt.Println(renderState(output, state))
		}
		mover := state.PlayerToMove()
		move, err := players[mover-1].SelectMove(state)
		if err != nil {
			log.Fatal().Err(err).Msg("move selection failed")
		}
		if err := engine.Apply(mover, move); err != nil {
			log.Fatal().Err(err).Msg("move rejected")
		}
		fmt.Printf("Player %d played %s!\n\n", mover, move)
	}

	winner := state.Winner()
	result := state.GetResult(winner)
	fmt.Printf("Player %d wins %.0f game point(s)!\n", winner, result)
}

// playersFromGameType turns strings like "human-computer" into two seated
// players.
func playersFromGameType(gameType string, difficulty player.Difficulty, strategy searcher.Strategy, rng *rand.Rand) ([]player.Player, error) {
	seats := strings.Split(gameType, "-")
	if len(seats) != game.NumPlayers {
		return nil, fmt.Errorf("game type %q must have exactly %d seats", gameType, game.NumPlayers)
	}
	players := make([]player.Player, len(seats))
	for i, seat := range seats {
		id := game.PlayerID(i + 1)
		switch strings.ToLower(seat) {
		case "human":
			players[i] = player.NewHuman(id, os.Stdin, os.Stdout)
		case "computer":
			players[i] = player.NewComputerForDifficulty(id, difficulty, strategy, rng)
		default:
			return nil, fmt.Errorf("unknown seat %q", seat)
		}
	}
	return players, nil
}

// renderState colors the red suits in the plain state rendering.
func renderState(output *termenv.Output, state *game.GameState) string {
	rendered := state.String()
	for _, suit := range []string{game.Hearts.String(), game.Diamonds.String()} {
		colored := output.String(suit).Foreground(termenv.ANSIRed).String()
		rendered = strings.ReplaceAll(rendered, suit, colored)
	}
	return rendered
}

package game

import "golang.org/x/exp/rand"

// PlayerID identifies a player. Players are numbered 1 and 2; NoPlayer
// marks the absence of a player (no winner yet, talon not closed by anyone).
type PlayerID int

// NoPlayer is the zero PlayerID.
const NoPlayer PlayerID = 0

// NumPlayers is the number of players in a game.
const NumPlayers = 2

// NextPlayer returns the player to the left of p.
func NextPlayer(p PlayerID) PlayerID {
	return (p % NumPlayers) + 1
}

// State is the contract the search engine and the game loop consume. All
// mutating operations take the state's own randomness from the explicit rng
// argument so that seeded games replay move for move.
type State interface {
	// PlayerToMove returns the player whose turn it is.
	PlayerToMove() PlayerID
	// Clone returns an independent deep copy with no randomization.
	Clone() State
	// CloneAndRandomize returns a deep copy in which everything the
	// observer could not legitimately know is re-randomized.
	CloneAndRandomize(observer PlayerID, rng *rand.Rand) State
	// GetMoves returns every legal move, or nil when the game is over.
	GetMoves() []Move
	// DoMove applies a legal move in place.
	DoMove(Move)
	// GetResult returns the signed game-point result from player's viewpoint.
	// Only meaningful on terminal states.
	GetResult(player PlayerID) float64
	// Winner returns the winning player, or NoPlayer while in progress.
	Winner() PlayerID
	// TalonClosed reports whether the drawing phase has ended.
	TalonClosed() bool
	// TalonClosedBy returns who closed the talon, or NoPlayer if nobody
	// did (the talon may still have closed by running out of cards).
	TalonClosedBy() PlayerID
}

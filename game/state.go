package game

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

const (
	handSize      = 5
	winningPoints = 66
)

// Play is a single card played into the current trick.
type Play struct {
	Player PlayerID
	Card   Card
}

// GameState is the authoritative record of one hand of Schnapsen. It is
// mutated in place by DoMove; searches work on copies produced by Clone or
// CloneAndRandomize. Per-player slices are indexed by PlayerID with slot 0
// unused.
type GameState struct {
	playerToMove      PlayerID
	hands             [][]Card
	marriagesRevealed [][]Card
	knownEmptySuits   [][]Suit
	discards          []Card
	currentTrick      []Play
	deck              []Card
	faceUpCard        Card
	trumpSuit         Suit
	talonClosed       bool
	whoClosedTalon    PlayerID
	pointsTaken       []int
	stakes            []int
	winner            PlayerID
}

// NewGameState deals a fresh hand using the given randomness source.
func NewGameState(rng *rand.Rand) *GameState {
	s := &GameState{
		hands:             make([][]Card, NumPlayers+1),
		marriagesRevealed: make([][]Card, NumPlayers+1),
		knownEmptySuits:   make([][]Suit, NumPlayers+1),
		pointsTaken:       make([]int, NumPlayers+1),
		stakes:            make([]int, NumPlayers+1),
	}
	s.Deal(rng)
	return s
}

// Deal resets the state for a new hand: shuffle the deck, deal five cards to
// each player and turn the bottom card face up to fix the trump suit.
func (s *GameState) Deal(rng *rand.Rand) {
	s.playerToMove = 1
	s.discards = nil
	s.currentTrick = nil
	s.talonClosed = false
	s.whoClosedTalon = NoPlayer
	s.winner = NoPlayer

	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	for p := PlayerID(1); p <= NumPlayers; p++ {
		s.hands[p] = append([]Card(nil), deck[:handSize]...)
		deck = deck[handSize:]
		s.marriagesRevealed[p] = nil
		s.knownEmptySuits[p] = nil
		s.pointsTaken[p] = 0
	}
	s.deck = deck
	s.faceUpCard = deck[len(deck)-1]
	s.trumpSuit = s.faceUpCard.Suit
	s.recomputeStakes()
}

// PlayerToMove returns the player whose turn it is.
func (s *GameState) PlayerToMove() PlayerID { return s.playerToMove }

// Winner returns the winning player, or NoPlayer while the hand is running.
func (s *GameState) Winner() PlayerID { return s.winner }

// TalonClosed reports whether the drawing phase has ended.
func (s *GameState) TalonClosed() bool { return s.talonClosed }

// TalonClosedBy returns who closed the talon, or NoPlayer if it either is
// still open or closed itself by running out of cards.
func (s *GameState) TalonClosedBy() PlayerID { return s.whoClosedTalon }

// TrumpSuit returns the trump suit for this hand.
func (s *GameState) TrumpSuit() Suit { return s.trumpSuit }

// FaceUpCard returns the card at the bottom of the draw pile.
func (s *GameState) FaceUpCard() Card { return s.faceUpCard }

// Hand returns a copy of the given player's hand.
func (s *GameState) Hand(p PlayerID) []Card {
	return append([]Card(nil), s.hands[p]...)
}

// CurrentTrick returns a copy of the plays made in the trick so far.
func (s *GameState) CurrentTrick() []Play {
	return append([]Play(nil), s.currentTrick...)
}

// PointsTaken returns the trick and marriage points p has scored this hand.
func (s *GameState) PointsTaken(p PlayerID) int { return s.pointsTaken[p] }

// Stake returns the game points p stands to win.
func (s *GameState) Stake(p PlayerID) int { return s.stakes[p] }

// CardsLeft returns the number of cards remaining in the draw pile.
func (s *GameState) CardsLeft() int { return len(s.deck) }

// KnownEmptySuits returns the suits p is known to be out of.
func (s *GameState) KnownEmptySuits(p PlayerID) []Suit {
	return append([]Suit(nil), s.knownEmptySuits[p]...)
}

// Clone returns an independent deep copy with no randomization.
func (s *GameState) Clone() State { return s.clone() }

func (s *GameState) clone() *GameState {
	st := &GameState{
		playerToMove:      s.playerToMove,
		hands:             make([][]Card, NumPlayers+1),
		marriagesRevealed: make([][]Card, NumPlayers+1),
		knownEmptySuits:   make([][]Suit, NumPlayers+1),
		discards:          append([]Card(nil), s.discards...),
		currentTrick:      append([]Play(nil), s.currentTrick...),
		deck:              append([]Card(nil), s.deck...),
		faceUpCard:        s.faceUpCard,
		trumpSuit:         s.trumpSuit,
		talonClosed:       s.talonClosed,
		whoClosedTalon:    s.whoClosedTalon,
		pointsTaken:       append([]int(nil), s.pointsTaken...),
		stakes:            append([]int(nil), s.stakes...),
		winner:            s.winner,
	}
	for p := PlayerID(1); p <= NumPlayers; p++ {
		st.hands[p] = append([]Card(nil), s.hands[p]...)
		st.marriagesRevealed[p] = append([]Card(nil), s.marriagesRevealed[p]...)
		st.knownEmptySuits[p] = append([]Suit(nil), s.knownEmptySuits[p]...)
	}
	return st
}

// CloneAndRandomize returns a deep copy in which every card the observer has
// not legitimately seen is freshly re-randomized, subject to what the
// observer knows: its own hand, past tricks, the current trick, the face-up
// card, the opponent's revealed marriage cards and any suits the opponent is
// known to be out of.
func (s *GameState) CloneAndRandomize(observer PlayerID, rng *rand.Rand) State {
	st := s.clone()
	opponent := NextPlayer(observer)

	inTrick := func(c Card) bool {
		for _, p := range st.currentTrick {
			if p.Card == c {
				return true
			}
		}
		return false
	}

	seen := make(map[Card]struct{}, DeckSize)
	for _, c := range st.hands[observer] {
		seen[c] = struct{}{}
	}
	for _, c := range st.discards {
		seen[c] = struct{}{}
	}
	for _, p := range st.currentTrick {
		seen[p.Card] = struct{}{}
	}
	seen[st.faceUpCard] = struct{}{}
	for _, c := range st.marriagesRevealed[opponent] {
		if !inTrick(c) {
			seen[c] = struct{}{}
		}
	}
	for _, suit := range st.knownEmptySuits[opponent] {
		for rank := Ten; rank <= King; rank++ {
			seen[Card{Rank: rank, Suit: suit}] = struct{}{}
		}
	}

	unseen := make([]Card, 0, DeckSize-len(seen))
	for _, c := range NewDeck() {
		if _, ok := seen[c]; !ok {
			unseen = append(unseen, c)
		}
	}
	if len(seen)+len(unseen) != DeckSize {
		panic(fmt.Sprintf("game: determinization accounts for %d cards, want %d", len(seen)+len(unseen), DeckSize))
	}
	rng.Shuffle(len(unseen), func(i, j int) { unseen[i], unseen[j] = unseen[j], unseen[i] })

	// Rebuild the opponent's hand around its forced inclusions: revealed
	// marriage cards, and the face-up card once the draw pile is gone and
	// nothing else accounts for it.
	hand := append([]Card(nil), st.marriagesRevealed[opponent]...)
	if len(st.deck) == 0 &&
		!containsCard(st.hands[observer], st.faceUpCard) &&
		!containsCard(st.discards, st.faceUpCard) &&
		!inTrick(st.faceUpCard) &&
		!containsCard(hand, st.faceUpCard) {
		hand = append(hand, st.faceUpCard)
	}
	need := len(st.hands[opponent]) - len(hand)
	if need < 0 || need > len(unseen) {
		panic(fmt.Sprintf("game: determinization needs %d cards for the opponent, have %d unseen", need, len(unseen)))
	}
	hand = append(hand, unseen[:need]...)
	unseen = unseen[need:]
	st.hands[opponent] = hand

	// The rest becomes the draw pile, with the face-up card back on the
	// bottom where it is drawn last.
	st.deck = unseen
	if len(st.deck) != 0 {
		st.deck = append(st.deck, st.faceUpCard)
	}
	return st
}

// GetMoves returns every legal move for the player on turn, or nil once the
// hand has a winner.
func (s *GameState) GetMoves() []Move {
	if s.winner != NoPlayer {
		return nil
	}
	hand := s.hands[s.playerToMove]

	switch {
	case s.talonClosed && len(s.currentTrick) == 0:
		// Leading with the talon closed: any card, marriages allowed,
		// no closing.
		moves := make([]Move, 0, len(hand))
		for _, c := range hand {
			moves = append(moves, Move{Card: c, MarriagePoints: s.marriageValue(c, hand)})
		}
		return moves
	case s.talonClosed:
		return s.strictFollowMoves(hand)
	case len(s.currentTrick) == 0:
		// Leading with the talon open: every card both with and without
		// closing the talon first.
		open := make([]Move, 0, len(hand))
		closing := make([]Move, 0, len(hand))
		for _, c := range hand {
			points := s.marriageValue(c, hand)
			open = append(open, Move{Card: c, MarriagePoints: points})
			closing = append(closing, Move{Card: c, CloseTalon: true, MarriagePoints: points})
		}
		return append(open, closing...)
	default:
		// Following with the talon open: any card, no marriages, no closing.
		moves := make([]Move, 0, len(hand))
		for _, c := range hand {
			moves = append(moves, Move{Card: c})
		}
		return moves
	}
}

// strictFollowMoves applies the closed-talon following rules: beat the lead
// card in its suit if possible, otherwise follow suit, otherwise trump,
// otherwise anything.
func (s *GameState) strictFollowMoves(hand []Card) []Move {
	leadCard := s.currentTrick[0].Card
	var sameSuit, beating, trumps []Card
	for _, c := range hand {
		if c.Suit == leadCard.Suit {
			sameSuit = append(sameSuit, c)
			if c.Score() > leadCard.Score() {
				beating = append(beating, c)
			}
		}
		if c.Suit == s.trumpSuit {
			trumps = append(trumps, c)
		}
	}

	playable := hand
	switch {
	case len(beating) > 0:
		playable = beating
	case len(sameSuit) > 0:
		playable = sameSuit
	case len(trumps) > 0:
		playable = trumps
	}

	moves := make([]Move, 0, len(playable))
	for _, c := range playable {
		moves = append(moves, Move{Card: c})
	}
	return moves
}

func (s *GameState) marriageValue(c Card, hand []Card) int {
	partner, ok := c.MarriagePartner()
	if !ok || !containsCard(hand, partner) {
		return 0
	}
	if c.Suit == s.trumpSuit {
		return 40
	}
	return 20
}

// DoMove applies a move in place. Applying a move whose card the player on
// turn does not hold, or any move on a finished hand, is a defect and panics.
func (s *GameState) DoMove(m Move) {
	if s.winner != NoPlayer {
		panic("game: move applied to a finished hand")
	}
	mover := s.playerToMove
	if !containsCard(s.hands[mover], m.Card) {
		panic(fmt.Sprintf("game: player %d does not hold %v", mover, m.Card))
	}

	// Until a closure fixes them, the stakes track the current score.
	if s.whoClosedTalon == NoPlayer {
		s.recomputeStakes()
	}

	if m.CloseTalon {
		s.talonClosed = true
		s.whoClosedTalon = mover
		s.fixStakesForClosure(mover)
	}

	if m.MarriagePoints != 0 {
		partner, ok := m.Card.MarriagePartner()
		if !ok {
			panic(fmt.Sprintf("game: %v cannot declare a marriage", m.Card))
		}
		s.pointsTaken[mover] += m.MarriagePoints
		s.marriagesRevealed[mover] = appendCardOnce(s.marriagesRevealed[mover], partner)
		// The declaration alone can end the hand; the card stays unplayed.
		if s.pointsTaken[mover] >= winningPoints {
			s.winner = mover
			return
		}
	}

	s.currentTrick = append(s.currentTrick, Play{Player: mover, Card: m.Card})
	s.hands[mover] = removeCard(s.hands[mover], m.Card)
	s.marriagesRevealed[mover] = removeCardIfPresent(s.marriagesRevealed[mover], m.Card)

	// A closed-talon discard leaks information: failing to follow suit
	// means the follower is out of the lead suit, and out of trump too if
	// no trump hit the table.
	if s.talonClosed && len(s.currentTrick) == 2 {
		leadSuit := s.currentTrick[0].Card.Suit
		followSuit := s.currentTrick[1].Card.Suit
		if leadSuit != followSuit {
			s.knownEmptySuits[mover] = appendSuitOnce(s.knownEmptySuits[mover], leadSuit)
			if leadSuit != s.trumpSuit && followSuit != s.trumpSuit {
				s.knownEmptySuits[mover] = appendSuitOnce(s.knownEmptySuits[mover], s.trumpSuit)
			}
		}
	}

	s.playerToMove = NextPlayer(s.playerToMove)

	if len(s.currentTrick) == 2 {
		s.resolveTrick()
	}
}

func (s *GameState) resolveTrick() {
	trickWinner := s.TrickWinner(s.currentTrick)
	for _, p := range s.currentTrick {
		s.pointsTaken[trickWinner] += p.Card.Score()
		s.discards = append(s.discards, p.Card)
	}
	s.currentTrick = nil
	s.playerToMove = trickWinner

	if !s.talonClosed {
		// Winner draws the top card, the loser the next.
		s.hands[trickWinner] = append(s.hands[trickWinner], s.deck[0])
		s.hands[NextPlayer(trickWinner)] = append(s.hands[NextPlayer(trickWinner)], s.deck[1])
		s.deck = s.deck[2:]
		if len(s.deck) == 0 {
			s.talonClosed = true
		}
	} else if len(s.hands[s.playerToMove]) == 0 && s.pointsTaken[trickWinner] < winningPoints {
		// Hand played out with nobody at 66: a closer loses, otherwise
		// the last trick decides.
		if s.whoClosedTalon != NoPlayer {
			s.winner = NextPlayer(s.whoClosedTalon)
		} else {
			s.winner = trickWinner
		}
	}

	if s.winner == NoPlayer && s.pointsTaken[trickWinner] >= winningPoints {
		s.winner = trickWinner
	}
}

// TrickWinner resolves a completed trick. Plays that followed the lead suit
// rank by score ascending, trump plays rank after all of them; the last play
// in that ordering wins.
func (s *GameState) TrickWinner(trick []Play) PlayerID {
	leadSuit := trick[0].Card.Suit
	var ordered []Play
	for _, p := range trick {
		if p.Card.Suit == leadSuit {
			ordered = append(ordered, p)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Card.Score() < ordered[j].Card.Score()
	})
	var trumps []Play
	for _, p := range trick {
		if p.Card.Suit == s.trumpSuit {
			trumps = append(trumps, p)
		}
	}
	sort.SliceStable(trumps, func(i, j int) bool {
		return trumps[i].Card.Score() < trumps[j].Card.Score()
	})
	ordered = append(ordered, trumps...)
	return ordered[len(ordered)-1].Player
}

// GetResult returns the signed game-point result from player's viewpoint.
// A closer wins its recorded stake only by reaching 66; failing that, the
// opponent's stake is awarded instead. Without a closure the first player
// at 66 wins its stake, and if nobody got there the player on turn takes a
// nominal point.
func (s *GameState) GetResult(player PlayerID) float64 {
	if s.whoClosedTalon != NoPlayer {
		closer := s.whoClosedTalon
		if s.pointsTaken[closer] >= winningPoints {
			return signedStake(s.stakes[closer], player == closer)
		}
		opponent := NextPlayer(closer)
		return signedStake(s.stakes[opponent], player == opponent)
	}
	for p := PlayerID(1); p <= NumPlayers; p++ {
		if s.pointsTaken[p] >= winningPoints {
			return signedStake(s.stakes[p], player == p)
		}
	}
	return signedStake(1, player == s.playerToMove)
}

func signedStake(stake int, won bool) float64 {
	if won {
		return float64(stake)
	}
	return -float64(stake)
}

// stakeForLoserPoints is the game-point table keyed by the loser's score:
// under 33 points concedes 3, under 66 concedes 2.
func stakeForLoserPoints(points int) int {
	if points < 33 {
		return 3
	}
	return 2
}

func (s *GameState) recomputeStakes() {
	for p := PlayerID(1); p <= NumPlayers; p++ {
		s.stakes[p] = stakeForLoserPoints(s.pointsTaken[NextPlayer(p)])
	}
}

func (s *GameState) fixStakesForClosure(closer PlayerID) {
	opponent := NextPlayer(closer)
	s.stakes[closer] = stakeForLoserPoints(s.pointsTaken[opponent])
	// A failed closer never concedes more than 2 game points.
	concession := stakeForLoserPoints(s.pointsTaken[closer])
	if concession > 2 {
		concession = 2
	}
	s.stakes[opponent] = concession
}

func containsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

func removeCard(cards []Card, c Card) []Card {
	for i, x := range cards {
		if x == c {
			return append(cards[:i], cards[i+1:]...)
		}
	}
	panic(fmt.Sprintf("game: card %v not present", c))
}

func removeCardIfPresent(cards []Card, c Card) []Card {
	for i, x := range cards {
		if x == c {
			return append(cards[:i], cards[i+1:]...)
		}
	}
	return cards
}

func appendCardOnce(cards []Card, c Card) []Card {
	if containsCard(cards, c) {
		return cards
	}
	return append(cards, c)
}

func appendSuitOnce(suits []Suit, s Suit) []Suit {
	for _, x := range suits {
		if x == s {
			return suits
		}
	}
	return append(suits, s)
}

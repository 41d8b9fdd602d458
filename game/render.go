package game

import (
	"fmt"
	"strings"
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

func (m Move) String() string {
	var b strings.Builder
	if m.CloseTalon {
		b.WriteString("Close + ")
	}
	switch m.MarriagePoints {
	case 20:
		b.WriteString("Marriage + ")
	case 40:
		b.WriteString("Royal Marriage + ")
	}
	b.WriteString(m.Card.String())
	return b.String()
}

func (s *GameState) String() string {
	var b strings.Builder
	switch {
	case s.whoClosedTalon != NoPlayer:
		fmt.Fprintf(&b, "P%d closed talon!", s.whoClosedTalon)
	case s.talonClosed:
		b.WriteString("Talon exhausted!")
	default:
		b.WriteString("Talon open")
	}
	fmt.Fprintf(&b, " | P%d: %s", s.playerToMove, joinCards(s.hands[s.playerToMove]))
	fmt.Fprintf(&b, " | pointsTaken: P1: %d, P2: %d", s.pointsTaken[1], s.pointsTaken[2])
	fmt.Fprintf(&b, " | Trump suit: %s", s.trumpSuit)
	fmt.Fprintf(&b, " | Face-up card: %s", s.faceUpCard)
	b.WriteString(" | Trick: [")
	plays := make([]string, len(s.currentTrick))
	for i, p := range s.currentTrick {
		plays[i] = fmt.Sprintf("%d:%s", p.Player, p.Card)
	}
	b.WriteString(strings.Join(plays, ", "))
	b.WriteString("]")
	fmt.Fprintf(&b, " | Cards left: %d", len(s.deck))
	for p := PlayerID(1); p <= NumPlayers; p++ {
		if len(s.knownEmptySuits[p]) > 0 {
			fmt.Fprintf(&b, " | P%d out of: %s", p, joinSuits(s.knownEmptySuits[p]))
		}
	}
	return b.String()
}

func joinCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func joinSuits(suits []Suit) string {
	parts := make([]string, len(suits))
	for i, s := range suits {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
